package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"portfolio-api/internal/models"
)

// ContactFilter narrows contact-message listings. Priority is independent of
// status and both can be combined.
type ContactFilter struct {
	Status   string
	Priority string
}

// ContactStore defines persistence operations for contact messages.
type ContactStore interface {
	Create(ctx context.Context, c *models.Contact) error
	GetByID(ctx context.Context, id string) (*models.Contact, error)
	List(ctx context.Context, lp ListParams, f ContactFilter) ([]models.Contact, Pagination, error)
	Update(ctx context.Context, c *models.Contact) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// MongoContactStore implements ContactStore on a Mongo collection.
type MongoContactStore struct {
	col *mongo.Collection
}

func NewMongoContactStore(db *mongo.Database) *MongoContactStore {
	col := db.Collection("contacts")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "priority", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return &MongoContactStore{col: col}
}

func (f ContactFilter) query() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Priority != "" {
		q["priority"] = f.Priority
	}
	return q
}

func (s *MongoContactStore) Create(ctx context.Context, c *models.Contact) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

func (s *MongoContactStore) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var c models.Contact
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *MongoContactStore) List(ctx context.Context, lp ListParams, f ContactFilter) ([]models.Contact, Pagination, error) {
	lp.Normalize()
	q := f.query()
	if lp.Search != "" {
		q["$or"] = searchClause(lp.Search, "name", "email", "subject", "message")
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
	out := []models.Contact{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, Pagination{}, err
	}
	return out, NewPagination(lp.Page, lp.Limit, total), nil
}

func (s *MongoContactStore) Update(ctx context.Context, c *models.Contact) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoContactStore) Delete(ctx context.Context, id string) error {
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

func (s *MongoContactStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countByStatus(ctx, s.col)
}
