// Package store implements MongoDB persistence for every portfolio resource,
// plus in-memory implementations used by tests and as a fallback when no
// database is reachable.
package store

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams carries the pagination/sort/search portion shared by every
// listing endpoint. Resource-specific filters are passed separately.
type ListParams struct {
	Page   int
	Limit  int
	Sort   string
	Order  string // "asc" | "desc"
	Search string
}

// Normalize clamps page and limit into their allowed ranges and fills in
// defaults (sort createdAt, order desc).
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Sort == "" {
		p.Sort = "createdAt"
	}
	if p.Order != "asc" {
		p.Order = "desc"
	}
	p.Search = strings.TrimSpace(p.Search)
}

// Skip returns the number of documents to skip for the current page.
func (p *ListParams) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// SortDir returns the Mongo sort direction for the configured order.
func (p *ListParams) SortDir() int {
	if p.Order == "asc" {
		return 1
	}
	return -1
}

// FindOpts builds the Find options (sort, skip, limit) for a normalized
// ListParams.
func (p *ListParams) FindOpts() *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: p.Sort, Value: p.SortDir()}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))
}

// Pagination is the descriptor returned alongside every listing.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	NextPage    *int  `json:"nextPage"`
	PrevPage    *int  `json:"prevPage"`
}

// NewPagination computes the descriptor for a page/limit/total triple.
// A page beyond totalPages is not an error; the descriptor still reflects
// the true totals.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	p := Pagination{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
	if p.HasNextPage {
		n := page + 1
		p.NextPage = &n
	}
	if p.HasPrevPage {
		n := page - 1
		p.PrevPage = &n
	}
	return p
}

// searchClause builds a case-insensitive substring match across the given
// fields, suitable for assignment to a query's $or key. The term is quoted so
// user input is never interpreted as a pattern.
func searchClause(term string, fields ...string) []bson.M {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	or := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: re})
	}
	return or
}

// containsFold reports whether s contains term, case-insensitively. Used by
// the in-memory stores to mirror regexSearch.
func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

// parseID converts a hex id into an ObjectID, mapping malformed input to
// ErrNotFound so handlers never surface a 500 for a bad id.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// countByStatus groups a collection by its status field. Used by the admin
// dashboard counters.
func countByStatus(ctx context.Context, col *mongo.Collection) (map[string]int64, error) {
	cur, err := col.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := map[string]int64{}
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.ID] = row.Count
	}
	return out, cur.Err()
}
