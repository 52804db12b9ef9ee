package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"portfolio-api/internal/models"
)

// Period is a half-open [Start, End) time range for analytics queries.
type Period struct {
	Start time.Time
	End   time.Time
}

// ParsePeriod resolves a named period (7d/30d/90d/1y) or an explicit
// start/end pair (RFC 3339 or YYYY-MM-DD). Explicit bounds win when both are
// valid; otherwise the named period applies, defaulting to 30d.
func ParsePeriod(name, startStr, endStr string) Period {
	now := time.Now().UTC()
	if startStr != "" && endStr != "" {
		start, err1 := parseTime(startStr)
		end, err2 := parseTime(endStr)
		if err1 == nil && err2 == nil && end.After(start) {
			return Period{Start: start, End: end}
		}
	}
	var d time.Duration
	switch name {
	case "7d":
		d = 7 * 24 * time.Hour
	case "90d":
		d = 90 * 24 * time.Hour
	case "1y":
		d = 365 * 24 * time.Hour
	default:
		d = 30 * 24 * time.Hour
	}
	return Period{Start: now.Add(-d), End: now}
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Overview holds the headline analytics counters. Bounce rate is the share
// of sessions with exactly one page-view event, as a percentage of unique
// visitors.
type Overview struct {
	TotalEvents    int64   `json:"totalEvents"`
	UniqueVisitors int64   `json:"uniqueVisitors"`
	PageViews      int64   `json:"pageViews"`
	BounceRate     float64 `json:"bounceRate"`
}

// CountRow is one grouped-count result (top pages, referrers, devices...).
type CountRow struct {
	Label string `json:"label" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// SeriesPoint is one day of the daily time series.
type SeriesPoint struct {
	Date  string `json:"date" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// Breakdown fields accepted by AnalyticsStore.Breakdown.
const (
	BreakdownDevice  = "device"
	BreakdownBrowser = "browser"
	BreakdownCountry = "country"
)

const breakdownLimit = 10

// AnalyticsStore records events (append-only) and answers the read-only
// aggregation queries behind the admin dashboard.
type AnalyticsStore interface {
	Record(ctx context.Context, e *models.Event) error
	Overview(ctx context.Context, p Period) (*Overview, error)
	TopPages(ctx context.Context, p Period) ([]CountRow, error)
	TopReferrers(ctx context.Context, p Period) ([]CountRow, error)
	Breakdown(ctx context.Context, p Period, field string) ([]CountRow, error)
	DailySeries(ctx context.Context, p Period) ([]SeriesPoint, error)
	TotalEvents(ctx context.Context) (int64, error)
}

// MongoAnalyticsStore implements AnalyticsStore on a Mongo collection.
type MongoAnalyticsStore struct {
	col *mongo.Collection
}

func NewMongoAnalyticsStore(db *mongo.Database) *MongoAnalyticsStore {
	col := db.Collection("events")
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "type", Value: 1}}},
	})
	return &MongoAnalyticsStore{col: col}
}

func (s *MongoAnalyticsStore) Record(ctx context.Context, e *models.Event) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	res, err := s.col.InsertOne(ctx, e)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = oid
	}
	return nil
}

func (p Period) match() bson.M {
	return bson.M{"timestamp": bson.M{"$gte": p.Start, "$lt": p.End}}
}

func (s *MongoAnalyticsStore) Overview(ctx context.Context, p Period) (*Overview, error) {
	total, err := s.col.CountDocuments(ctx, p.match())
	if err != nil {
		return nil, err
	}
	pageViews, err := s.col.CountDocuments(ctx, bson.M{
		"timestamp": bson.M{"$gte": p.Start, "$lt": p.End},
		"type":      models.EventTypePageView,
	})
	if err != nil {
		return nil, err
	}
	unique, err := s.distinctSessions(ctx, p.match())
	if err != nil {
		return nil, err
	}
	bounced, err := s.singleViewSessions(ctx, p)
	if err != nil {
		return nil, err
	}
	ov := &Overview{TotalEvents: total, UniqueVisitors: unique, PageViews: pageViews}
	if unique > 0 {
		ov.BounceRate = float64(bounced) / float64(unique) * 100
	}
	return ov, nil
}

func (s *MongoAnalyticsStore) distinctSessions(ctx context.Context, match bson.M) (int64, error) {
	cur, err := s.col.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$sessionId"}}},
		bson.D{{Key: "$count", Value: "count"}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)
	return decodeCount(ctx, cur)
}

// singleViewSessions counts sessions with exactly one page_view in the period.
func (s *MongoAnalyticsStore) singleViewSessions(ctx context.Context, p Period) (int64, error) {
	cur, err := s.col.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"timestamp": bson.M{"$gte": p.Start, "$lt": p.End},
			"type":      models.EventTypePageView,
		}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$sessionId", "views": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$match", Value: bson.M{"views": 1}}},
		bson.D{{Key: "$count", Value: "count"}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)
	return decodeCount(ctx, cur)
}

func decodeCount(ctx context.Context, cur *mongo.Cursor) (int64, error) {
	if cur.Next(ctx) {
		var row struct {
			Count int64 `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
		return row.Count, nil
	}
	return 0, cur.Err()
}

func (s *MongoAnalyticsStore) groupedCount(ctx context.Context, match bson.M, field string) ([]CountRow, error) {
	cur, err := s.col.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
		bson.D{{Key: "$limit", Value: breakdownLimit}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []CountRow{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoAnalyticsStore) TopPages(ctx context.Context, p Period) ([]CountRow, error) {
	match := p.match()
	match["type"] = models.EventTypePageView
	return s.groupedCount(ctx, match, "path")
}

func (s *MongoAnalyticsStore) TopReferrers(ctx context.Context, p Period) ([]CountRow, error) {
	match := p.match()
	match["referrer"] = bson.M{"$nin": bson.A{"", nil}}
	return s.groupedCount(ctx, match, "referrer")
}

func (s *MongoAnalyticsStore) Breakdown(ctx context.Context, p Period, field string) ([]CountRow, error) {
	match := p.match()
	match[field] = bson.M{"$nin": bson.A{"", nil}}
	return s.groupedCount(ctx, match, field)
}

func (s *MongoAnalyticsStore) DailySeries(ctx context.Context, p Period) ([]SeriesPoint, error) {
	cur, err := s.col.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: p.match()}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$timestamp"}},
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []SeriesPoint{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoAnalyticsStore) TotalEvents(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}
