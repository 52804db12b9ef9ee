package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio-api/internal/models"
)

// PostFilter narrows blog listings. Zero values mean "no filter".
type PostFilter struct {
	Status   string
	Category string
	Tag      string
	Featured *bool
}

// PostStore defines persistence operations for blog posts.
type PostStore interface {
	Create(ctx context.Context, p *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, lp ListParams, f PostFilter) ([]models.Post, Pagination, error)
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// MongoPostStore implements PostStore on a Mongo collection.
type MongoPostStore struct {
	col *mongo.Collection
}

// NewMongoPostStore creates the store and ensures the slug unique index.
func NewMongoPostStore(db *mongo.Database) *MongoPostStore {
	col := db.Collection("posts")
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return &MongoPostStore{col: col}
}

func (f PostFilter) query() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Tag != "" {
		q["tags"] = f.Tag
	}
	if f.Featured != nil {
		q["featured"] = *f.Featured
	}
	return q
}

func (s *MongoPostStore) Create(ctx context.Context, p *models.Post) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (s *MongoPostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var p models.Post
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *MongoPostStore) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var p models.Post
	if err := s.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *MongoPostStore) List(ctx context.Context, lp ListParams, f PostFilter) ([]models.Post, Pagination, error) {
	lp.Normalize()
	q := f.query()
	if lp.Search != "" {
		q["$or"] = searchClause(lp.Search, "title", "excerpt", "content", "tags")
	}
	total, err := s.col.CountDocuments(ctx, q)
	if err != nil {
		return nil, Pagination{}, err
	}
	cur, err := s.col.Find(ctx, q, lp.FindOpts())
	if err != nil {
		return nil, Pagination{}, err
	}
	defer cur.Close(ctx)
	out := []models.Post{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, Pagination{}, err
	}
	return out, NewPagination(lp.Page, lp.Limit, total), nil
}

func (s *MongoPostStore) Update(ctx context.Context, p *models.Post) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPostStore) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPostStore) IncrementViews(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	_, err = s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

func (s *MongoPostStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countByStatus(ctx, s.col)
}
