package users

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"portfolio-api/internal/models"
	"portfolio-api/internal/store"
	"portfolio-api/pkg/logger"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike, so callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service encapsulates account business logic on top of a UserStore.
type Service struct {
	store store.UserStore
}

func NewService(s store.UserStore) *Service {
	return &Service{store: s}
}

// Authenticate verifies an email/password pair and records the login time.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.Status != models.UserStatusActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	now := time.Now().UTC()
	u.LastLoginAt = &now
	if err := s.store.Update(ctx, u); err != nil {
		logger.Warnf("users: failed to record login time for %s: %v", u.Email, err)
	}
	return u, nil
}

// GetByID loads a single account.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetByID(ctx, id)
}

// ChangePassword re-hashes and stores a new password after checking the
// current one.
func (s *Service) ChangePassword(ctx context.Context, id, current, next string) error {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.store.Update(ctx, u)
}

// EnsureAdmin creates the bootstrap admin account when no account with the
// given email exists yet. Safe to call on every startup.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" {
		logger.Debugf("users: admin bootstrap skipped, no credentials configured")
		return nil
	}
	_, err := s.store.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if name == "" {
		name = "Admin"
	}
	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         "admin",
		Status:       models.UserStatusActive,
	}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// concurrent startup created it first
			return nil
		}
		return err
	}
	logger.Infof("users: bootstrap admin account created for %s", email)
	return nil
}
