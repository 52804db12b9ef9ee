package sessions

import (
	"context"
	"testing"
	"time"
)

// fake repo for testing
type fakeRepo struct {
	store map[string]*Session
}

func (f *fakeRepo) Create(ctx context.Context, s *Session) error {
	if f.store == nil {
		f.store = map[string]*Session{}
	}
	f.store[s.RefreshToken] = s
	return nil
}

func (f *fakeRepo) GetByRefresh(ctx context.Context, refresh string) (*Session, error) {
	s, ok := f.store[refresh]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (f *fakeRepo) DeleteByRefresh(ctx context.Context, refresh string) error {
	delete(f.store, refresh)
	return nil
}

func (f *fakeRepo) DeleteByUser(ctx context.Context, userID string) error {
	for k, s := range f.store {
		if s.UserID == userID {
			delete(f.store, k)
		}
	}
	return nil
}

func TestCreateAndValidateSession(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	r, err := svc.CreateSession(ctx, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if r == "" {
		t.Fatalf("expected refresh token")
	}

	sess, err := svc.ValidateRefresh(ctx, r)
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if sess == nil || sess.UserID != "user-1" {
		t.Fatalf("unexpected session: %v", sess)
	}

	if err := svc.DeleteRefresh(ctx, r); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	sess2, _ := svc.ValidateRefresh(ctx, r)
	if sess2 != nil {
		t.Fatalf("expected session removed")
	}
}

func TestValidateRefresh_ExpiredDropped(t *testing.T) {
	repo := &fakeRepo{store: map[string]*Session{
		"old": {RefreshToken: "old", UserID: "user-1", ExpiresAt: time.Now().UTC().Add(-time.Minute)},
	}}
	svc := NewService(repo)

	sess, err := svc.ValidateRefresh(context.Background(), "old")
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected expired session to be rejected")
	}
	if _, ok := repo.store["old"]; ok {
		t.Fatalf("expected expired session to be deleted")
	}
}

func TestRevokeUser(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	r1, _ := svc.CreateSession(ctx, "user-1", time.Hour)
	r2, _ := svc.CreateSession(ctx, "user-1", time.Hour)
	r3, _ := svc.CreateSession(ctx, "user-2", time.Hour)

	if err := svc.RevokeUser(ctx, "user-1"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	for _, r := range []string{r1, r2} {
		if sess, _ := svc.ValidateRefresh(ctx, r); sess != nil {
			t.Fatalf("expected %s revoked", r)
		}
	}
	if sess, _ := svc.ValidateRefresh(ctx, r3); sess == nil {
		t.Fatalf("expected user-2 session to survive")
	}
}
