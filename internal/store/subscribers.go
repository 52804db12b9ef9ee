package store

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio-api/internal/models"
)

// SubscriberFilter narrows newsletter listings.
type SubscriberFilter struct {
	Status string
}

// SubscriberStore defines persistence operations for newsletter subscribers.
// Email lookups are case-insensitive: addresses are stored lowercased.
type SubscriberStore interface {
	Create(ctx context.Context, sub *models.Subscriber) error
	GetByID(ctx context.Context, id string) (*models.Subscriber, error)
	GetByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	List(ctx context.Context, lp ListParams, f SubscriberFilter) ([]models.Subscriber, Pagination, error)
	Update(ctx context.Context, sub *models.Subscriber) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// MongoSubscriberStore implements SubscriberStore on a Mongo collection.
type MongoSubscriberStore struct {
	col *mongo.Collection
}

func NewMongoSubscriberStore(db *mongo.Database) *MongoSubscriberStore {
	col := db.Collection("subscribers")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true),
	})
	return &MongoSubscriberStore{col: col}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *MongoSubscriberStore) Create(ctx context.Context, sub *models.Subscriber) error {
	now := time.Now().UTC()
	sub.Email = normalizeEmail(sub.Email)
	sub.CreatedAt = now
	sub.UpdatedAt = now
	if sub.SubscribedAt.IsZero() {
		sub.SubscribedAt = now
	}
	res, err := s.col.InsertOne(ctx, sub)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		sub.ID = oid
	}
	return nil
}

func (s *MongoSubscriberStore) GetByID(ctx context.Context, id string) (*models.Subscriber, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var sub models.Subscriber
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (s *MongoSubscriberStore) GetByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	var sub models.Subscriber
	if err := s.col.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (s *MongoSubscriberStore) List(ctx context.Context, lp ListParams, f SubscriberFilter) ([]models.Subscriber, Pagination, error) {
	lp.Normalize()
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if lp.Search != "" {
		q["$or"] = searchClause(lp.Search, "email", "name")
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
	out := []models.Subscriber{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, Pagination{}, err
	}
	return out, NewPagination(lp.Page, lp.Limit, total), nil
}

func (s *MongoSubscriberStore) Update(ctx context.Context, sub *models.Subscriber) error {
	sub.Email = normalizeEmail(sub.Email)
	sub.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": sub.ID}, sub)
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

func (s *MongoSubscriberStore) Delete(ctx context.Context, id string) error {
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

func (s *MongoSubscriberStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countByStatus(ctx, s.col)
}
