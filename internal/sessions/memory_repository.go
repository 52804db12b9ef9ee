package sessions

import (
	"context"
	"sync"
)

// MemoryRepository keeps sessions in process memory. It backs development
// setups that run without Redis or Mongo; sessions do not survive restarts.
type MemoryRepository struct {
	mu      sync.Mutex
	byToken map[string]*Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byToken: map[string]*Session{}}
}

func (r *MemoryRepository) Create(ctx context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.byToken[s.RefreshToken] = &cp
	return nil
}

func (r *MemoryRepository) GetByRefresh(ctx context.Context, refresh string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byToken[refresh]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *MemoryRepository) DeleteByRefresh(ctx context.Context, refresh string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byToken, refresh)
	return nil
}

func (r *MemoryRepository) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, s := range r.byToken {
		if s.UserID == userID {
			delete(r.byToken, token)
		}
	}
	return nil
}
