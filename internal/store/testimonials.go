package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"portfolio-api/internal/models"
)

// TestimonialFilter narrows testimonial listings.
type TestimonialFilter struct {
	Status   string
	Rating   int // exact match when 1..5, ignored otherwise
	Featured *bool
}

// TestimonialStore defines persistence operations for testimonials.
type TestimonialStore interface {
	Create(ctx context.Context, t *models.Testimonial) error
	GetByID(ctx context.Context, id string) (*models.Testimonial, error)
	List(ctx context.Context, lp ListParams, f TestimonialFilter) ([]models.Testimonial, Pagination, error)
	Update(ctx context.Context, t *models.Testimonial) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// MongoTestimonialStore implements TestimonialStore on a Mongo collection.
type MongoTestimonialStore struct {
	col *mongo.Collection
}

func NewMongoTestimonialStore(db *mongo.Database) *MongoTestimonialStore {
	col := db.Collection("testimonials")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return &MongoTestimonialStore{col: col}
}

func (f TestimonialFilter) query() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Rating >= 1 && f.Rating <= 5 {
		q["rating"] = f.Rating
	}
	if f.Featured != nil {
		q["featured"] = *f.Featured
	}
	return q
}

func (s *MongoTestimonialStore) Create(ctx context.Context, t *models.Testimonial) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return nil
}

func (s *MongoTestimonialStore) GetByID(ctx context.Context, id string) (*models.Testimonial, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var t models.Testimonial
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *MongoTestimonialStore) List(ctx context.Context, lp ListParams, f TestimonialFilter) ([]models.Testimonial, Pagination, error) {
	lp.Normalize()
	q := f.query()
	if lp.Search != "" {
		q["$or"] = searchClause(lp.Search, "name", "company", "content")
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
	out := []models.Testimonial{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, Pagination{}, err
	}
	return out, NewPagination(lp.Page, lp.Limit, total), nil
}

func (s *MongoTestimonialStore) Update(ctx context.Context, t *models.Testimonial) error {
	t.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoTestimonialStore) Delete(ctx context.Context, id string) error {
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

func (s *MongoTestimonialStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countByStatus(ctx, s.col)
}
