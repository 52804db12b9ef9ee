package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-api/internal/models"
)

// MemoryContactStore is an in-memory ContactStore.
type MemoryContactStore struct {
	mu    sync.RWMutex
	items map[string]*models.Contact
}

func NewMemoryContactStore() *MemoryContactStore {
	return &MemoryContactStore{items: make(map[string]*models.Contact)}
}

func (s *MemoryContactStore) Create(ctx context.Context, c *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := *c
	s.items[c.ID.Hex()] = &cp
	return nil
}

func (s *MemoryContactStore) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.items[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryContactStore) List(ctx context.Context, lp ListParams, f ContactFilter) ([]models.Contact, Pagination, error) {
	lp.Normalize()
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Contact{}
	for _, c := range s.items {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Priority != "" && c.Priority != f.Priority {
			continue
		}
		if lp.Search != "" && !containsFold(c.Name, lp.Search) && !containsFold(c.Email, lp.Search) &&
			!containsFold(c.Subject, lp.Search) && !containsFold(c.Message, lp.Search) {
			continue
		}
		matched = append(matched, *c)
	}

	asc := lp.Order == "asc"
	sort.SliceStable(matched, func(i, j int) bool {
		var less bool
		switch lp.Sort {
		case "updatedAt":
			less = matched[i].UpdatedAt.Before(matched[j].UpdatedAt)
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	return pageOf(matched, lp), NewPagination(lp.Page, lp.Limit, total), nil
}

func (s *MemoryContactStore) Update(ctx context.Context, c *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[c.ID.Hex()]; !ok {
		return ErrNotFound
	}
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	s.items[c.ID.Hex()] = &cp
	return nil
}

func (s *MemoryContactStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryContactStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[string]int64{}
	for _, c := range s.items {
		out[c.Status]++
	}
	return out, nil
}
