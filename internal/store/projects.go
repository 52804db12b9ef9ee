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

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Status     string
	Technology string
	Featured   *bool
	// NotArchived hides archived projects regardless of Status; used by the
	// public listing.
	NotArchived bool
}

// ProjectStore defines persistence operations for portfolio projects.
type ProjectStore interface {
	Create(ctx context.Context, p *models.Project) error
	GetByID(ctx context.Context, id string) (*models.Project, error)
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	List(ctx context.Context, lp ListParams, f ProjectFilter) ([]models.Project, Pagination, error)
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// MongoProjectStore implements ProjectStore on a Mongo collection.
type MongoProjectStore struct {
	col *mongo.Collection
}

func NewMongoProjectStore(db *mongo.Database) *MongoProjectStore {
	col := db.Collection("projects")
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "order", Value: 1}}},
	})
	return &MongoProjectStore{col: col}
}

func (f ProjectFilter) query() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Technology != "" {
		q["technologies"] = f.Technology
	}
	if f.Featured != nil {
		q["featured"] = *f.Featured
	}
	if f.NotArchived && f.Status == "" {
		q["status"] = bson.M{"$ne": models.ProjectStatusArchived}
	}
	return q
}

func (s *MongoProjectStore) Create(ctx context.Context, p *models.Project) error {
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

func (s *MongoProjectStore) GetByID(ctx context.Context, id string) (*models.Project, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var p models.Project
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *MongoProjectStore) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var p models.Project
	if err := s.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *MongoProjectStore) List(ctx context.Context, lp ListParams, f ProjectFilter) ([]models.Project, Pagination, error) {
	lp.Normalize()
	q := f.query()
	if lp.Search != "" {
		q["$or"] = searchClause(lp.Search, "title", "description", "technologies")
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
	out := []models.Project{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, Pagination{}, err
	}
	return out, NewPagination(lp.Page, lp.Limit, total), nil
}

func (s *MongoProjectStore) Update(ctx context.Context, p *models.Project) error {
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

func (s *MongoProjectStore) Delete(ctx context.Context, id string) error {
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

func (s *MongoProjectStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countByStatus(ctx, s.col)
}
