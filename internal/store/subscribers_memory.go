package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-api/internal/models"
)

// MemorySubscriberStore is an in-memory SubscriberStore.
type MemorySubscriberStore struct {
	mu    sync.RWMutex
	items map[string]*models.Subscriber
}

func NewMemorySubscriberStore() *MemorySubscriberStore {
	return &MemorySubscriberStore{items: make(map[string]*models.Subscriber)}
}

func (s *MemorySubscriberStore) Create(ctx context.Context, sub *models.Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub.Email = normalizeEmail(sub.Email)
	for _, existing := range s.items {
		if existing.Email == sub.Email {
			return ErrDuplicate
		}
	}
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	if sub.SubscribedAt.IsZero() {
		sub.SubscribedAt = now
	}
	cp := *sub
	s.items[sub.ID.Hex()] = &cp
	return nil
}

func (s *MemorySubscriberStore) GetByID(ctx context.Context, id string) (*models.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sub, ok := s.items[id]; ok {
		cp := *sub
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (s *MemorySubscriberStore) GetByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email = normalizeEmail(email)
	for _, sub := range s.items {
		if sub.Email == email {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemorySubscriberStore) List(ctx context.Context, lp ListParams, f SubscriberFilter) ([]models.Subscriber, Pagination, error) {
	lp.Normalize()
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Subscriber{}
	for _, sub := range s.items {
		if f.Status != "" && sub.Status != f.Status {
			continue
		}
		if lp.Search != "" && !containsFold(sub.Email, lp.Search) && !containsFold(sub.Name, lp.Search) {
			continue
		}
		matched = append(matched, *sub)
	}

	asc := lp.Order == "asc"
	sort.SliceStable(matched, func(i, j int) bool {
		var less bool
		switch lp.Sort {
		case "email":
			less = matched[i].Email < matched[j].Email
		case "subscribedAt":
			less = matched[i].SubscribedAt.Before(matched[j].SubscribedAt)
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

func (s *MemorySubscriberStore) Update(ctx context.Context, sub *models.Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[sub.ID.Hex()]; !ok {
		return ErrNotFound
	}
	sub.Email = normalizeEmail(sub.Email)
	for id, existing := range s.items {
		if existing.Email == sub.Email && id != sub.ID.Hex() {
			return ErrDuplicate
		}
	}
	sub.UpdatedAt = time.Now().UTC()
	cp := *sub
	s.items[sub.ID.Hex()] = &cp
	return nil
}

func (s *MemorySubscriberStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemorySubscriberStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[string]int64{}
	for _, sub := range s.items {
		out[sub.Status]++
	}
	return out, nil
}
