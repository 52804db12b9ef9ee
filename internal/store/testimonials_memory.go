package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-api/internal/models"
)

// MemoryTestimonialStore is an in-memory TestimonialStore.
type MemoryTestimonialStore struct {
	mu    sync.RWMutex
	items map[string]*models.Testimonial
}

func NewMemoryTestimonialStore() *MemoryTestimonialStore {
	return &MemoryTestimonialStore{items: make(map[string]*models.Testimonial)}
}

func (s *MemoryTestimonialStore) Create(ctx context.Context, t *models.Testimonial) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	cp := *t
	s.items[t.ID.Hex()] = &cp
	return nil
}

func (s *MemoryTestimonialStore) GetByID(ctx context.Context, id string) (*models.Testimonial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.items[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryTestimonialStore) List(ctx context.Context, lp ListParams, f TestimonialFilter) ([]models.Testimonial, Pagination, error) {
	lp.Normalize()
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Testimonial{}
	for _, t := range s.items {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Rating >= 1 && f.Rating <= 5 && t.Rating != f.Rating {
			continue
		}
		if f.Featured != nil && t.Featured != *f.Featured {
			continue
		}
		if lp.Search != "" && !containsFold(t.Name, lp.Search) && !containsFold(t.Company, lp.Search) && !containsFold(t.Content, lp.Search) {
			continue
		}
		matched = append(matched, *t)
	}

	asc := lp.Order == "asc"
	sort.SliceStable(matched, func(i, j int) bool {
		var less bool
		switch lp.Sort {
		case "rating":
			less = matched[i].Rating < matched[j].Rating
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

func (s *MemoryTestimonialStore) Update(ctx context.Context, t *models.Testimonial) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[t.ID.Hex()]; !ok {
		return ErrNotFound
	}
	t.UpdatedAt = time.Now().UTC()
	cp := *t
	s.items[t.ID.Hex()] = &cp
	return nil
}

func (s *MemoryTestimonialStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryTestimonialStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[string]int64{}
	for _, t := range s.items {
		out[t.Status]++
	}
	return out, nil
}
