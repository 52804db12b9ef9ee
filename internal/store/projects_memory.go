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

// MemoryProjectStore is an in-memory ProjectStore.
type MemoryProjectStore struct {
	mu    sync.RWMutex
	items map[string]*models.Project
}

func NewMemoryProjectStore() *MemoryProjectStore {
	return &MemoryProjectStore{items: make(map[string]*models.Project)}
}

func (s *MemoryProjectStore) Create(ctx context.Context, p *models.Project) error {
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

func (s *MemoryProjectStore) GetByID(ctx context.Context, id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryProjectStore) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
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

func (s *MemoryProjectStore) List(ctx context.Context, lp ListParams, f ProjectFilter) ([]models.Project, Pagination, error) {
	lp.Normalize()
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Project{}
	for _, p := range s.items {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Technology != "" && !containsString(p.Technologies, f.Technology) {
			continue
		}
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		if f.NotArchived && p.Status == models.ProjectStatusArchived {
			continue
		}
		if lp.Search != "" && !projectMatches(p, lp.Search) {
			continue
		}
		matched = append(matched, *p)
	}

	asc := lp.Order == "asc"
	sort.SliceStable(matched, func(i, j int) bool {
		var less bool
		switch lp.Sort {
		case "title":
			less = strings.ToLower(matched[i].Title) < strings.ToLower(matched[j].Title)
		case "order":
			less = matched[i].Order < matched[j].Order
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

func (s *MemoryProjectStore) Update(ctx context.Context, p *models.Project) error {
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

func (s *MemoryProjectStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryProjectStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[string]int64{}
	for _, p := range s.items {
		out[p.Status]++
	}
	return out, nil
}

func projectMatches(p *models.Project, term string) bool {
	if containsFold(p.Title, term) || containsFold(p.Description, term) {
		return true
	}
	for _, tech := range p.Technologies {
		if containsFold(tech, term) {
			return true
		}
	}
	return false
}
