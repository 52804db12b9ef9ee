package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-api/internal/models"
)

// MemoryPostStore is an in-memory PostStore used by tests and as a fallback
// when MongoDB is unreachable.
type MemoryPostStore struct {
	mu    sync.RWMutex
	items map[string]*models.Post
}

func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{items: make(map[string]*models.Post)}
}

func (s *MemoryPostStore) Create(ctx context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.Slug == p.Slug {
			return ErrDuplicate
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	s.items[p.ID.Hex()] = &cp
	return nil
}

func (s *MemoryPostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryPostStore) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.items {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryPostStore) List(ctx context.Context, lp ListParams, f PostFilter) ([]models.Post, Pagination, error) {
	lp.Normalize()
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Post{}
	for _, p := range s.items {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Tag != "" && !containsString(p.Tags, f.Tag) {
			continue
		}
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		if lp.Search != "" && !postMatches(p, lp.Search) {
			continue
		}
		matched = append(matched, *p)
	}

	sortPosts(matched, lp)
	total := int64(len(matched))
	return pageOf(matched, lp), NewPagination(lp.Page, lp.Limit, total), nil
}

func (s *MemoryPostStore) Update(ctx context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[p.ID.Hex()]; !ok {
		return ErrNotFound
	}
	for id, existing := range s.items {
		if existing.Slug == p.Slug && id != p.ID.Hex() {
			return ErrDuplicate
		}
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	s.items[p.ID.Hex()] = &cp
	return nil
}

func (s *MemoryPostStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryPostStore) IncrementViews(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return ErrNotFound
	}
	p.Views++
	return nil
}

func (s *MemoryPostStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[string]int64{}
	for _, p := range s.items {
		out[p.Status]++
	}
	return out, nil
}

func postMatches(p *models.Post, term string) bool {
	if containsFold(p.Title, term) || containsFold(p.Excerpt, term) || containsFold(p.Content, term) {
		return true
	}
	for _, tag := range p.Tags {
		if containsFold(tag, term) {
			return true
		}
	}
	return false
}

func sortPosts(items []models.Post, lp ListParams) {
	asc := lp.Order == "asc"
	sort.SliceStable(items, func(i, j int) bool {
		var less bool
		switch lp.Sort {
		case "title":
			less = strings.ToLower(items[i].Title) < strings.ToLower(items[j].Title)
		case "views":
			less = items[i].Views < items[j].Views
		case "likes":
			less = items[i].Likes < items[j].Likes
		case "updatedAt":
			less = items[i].UpdatedAt.Before(items[j].UpdatedAt)
		default:
			less = items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})
}

// pageOf slices a sorted result set to the requested page. A page beyond the
// end returns an empty slice.
func pageOf[T any](items []T, lp ListParams) []T {
	start := int(lp.Skip())
	if start >= len(items) {
		return []T{}
	}
	end := start + lp.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
