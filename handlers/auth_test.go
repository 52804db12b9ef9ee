package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"portfolio-api/internal/config"
	"portfolio-api/internal/models"
	"portfolio-api/internal/sessions"
	"portfolio-api/internal/store"
	"portfolio-api/internal/tokens"
	"portfolio-api/internal/users"
	"portfolio-api/pkg/middleware"
)

type authFixture struct {
	sessions *sessions.Service
	users    store.UserStore
	do       func(method, path string, body interface{}) *envelopeRecorder
	doAs     func(method, path, userID string, body interface{}) *envelopeRecorder
}

func setupAuth(t *testing.T) *authFixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{
		Secret:          "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	userStore := store.NewMemoryUserStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, userStore.Create(context.Background(), &models.User{
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Name:         "Admin",
		Role:         "admin",
		Status:       models.UserStatusActive,
	}))

	sessionsSvc := sessions.NewService(sessions.NewMemoryRepository())
	h := NewAuthHandler(cfg, users.NewService(userStore), sessionsSvc)

	r, public, admin := newTestRouter()
	h.Register(public, admin)

	f := &authFixture{sessions: sessionsSvc, users: userStore}
	f.do = func(method, path string, body interface{}) *envelopeRecorder {
		w := doJSON(t, r, method, path, body)
		return &envelopeRecorder{code: w.Code, env: decodeEnvelope(t, w)}
	}

	// a second router whose admin group pretends the middleware ran
	rAs := gin.New()
	publicAs := rAs.Group("/api")
	var currentUser string
	adminAs := rAs.Group("/api/admin")
	adminAs.Use(func(c *gin.Context) { c.Set(middleware.CtxUserID, currentUser) })
	h.Register(publicAs, adminAs)
	f.doAs = func(method, path, userID string, body interface{}) *envelopeRecorder {
		currentUser = userID
		w := doJSON(t, rAs, method, path, body)
		return &envelopeRecorder{code: w.Code, env: decodeEnvelope(t, w)}
	}
	return f
}

func (f *authFixture) login(t *testing.T) (access, refresh string) {
	t.Helper()
	res := f.do("POST", "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, res.code)
	var pair struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(res.env.Data, &pair))
	return pair.AccessToken, pair.RefreshToken
}

func (f *authFixture) refreshValid(t *testing.T, refresh string) bool {
	t.Helper()
	sess, err := f.sessions.ValidateRefresh(context.Background(), refresh)
	require.NoError(t, err)
	return sess != nil
}

func TestLoginReturnsTokenPair(t *testing.T) {
	f := setupAuth(t)

	res := f.do("POST", "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, res.code)

	var pair struct {
		AccessToken  string      `json:"accessToken"`
		RefreshToken string      `json:"refreshToken"`
		User         models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(res.env.Data, &pair))
	assert.NotEmpty(t, pair.AccessToken)
	assert.Len(t, pair.RefreshToken, 64)
	assert.Equal(t, "admin@example.com", pair.User.Email)

	claims, err := tokens.VerifyAccessToken("test-secret", pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, pair.User.ID.Hex(), claims.UserID)
}

func TestLoginWrongPasswordIs401(t *testing.T) {
	f := setupAuth(t)

	res := f.do("POST", "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, res.code)
	assert.Equal(t, "Invalid email or password", res.env.Message)

	// unknown email yields the same message
	res = f.do("POST", "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusUnauthorized, res.code)
	assert.Equal(t, "Invalid email or password", res.env.Message)
}

func TestRefreshRotatesToken(t *testing.T) {
	f := setupAuth(t)
	_, first := f.login(t)

	res := f.do("POST", "/api/auth/refresh", map[string]string{"refreshToken": first})
	require.Equal(t, http.StatusOK, res.code)
	var pair struct {
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(res.env.Data, &pair))
	assert.NotEqual(t, first, pair.RefreshToken)

	// the first token was single-use
	res = f.do("POST", "/api/auth/refresh", map[string]string{"refreshToken": first})
	assert.Equal(t, http.StatusUnauthorized, res.code)
}

func TestRefreshUnknownTokenIs401(t *testing.T) {
	f := setupAuth(t)

	res := f.do("POST", "/api/auth/refresh", map[string]string{"refreshToken": "nope"})
	require.Equal(t, http.StatusUnauthorized, res.code)
	assert.Equal(t, "Invalid or expired refresh token", res.env.Message)
}

func TestMeReturnsCurrentUser(t *testing.T) {
	f := setupAuth(t)

	u, err := f.users.GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)

	res := f.doAs("GET", "/api/admin/auth/me", u.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, res.code)
	var got models.User
	require.NoError(t, json.Unmarshal(res.env.Data, &got))
	assert.Equal(t, "admin@example.com", got.Email)
	assert.Empty(t, got.PasswordHash, "hash must never serialize")
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	f := setupAuth(t)
	_, refresh := f.login(t)
	require.True(t, f.refreshValid(t, refresh))

	u, err := f.users.GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)

	got := f.doAs("PUT", "/api/admin/auth/password", u.ID.Hex(), map[string]string{
		"currentPassword": "correct horse",
		"newPassword":     "battery staple",
	})
	require.Equal(t, http.StatusOK, got.code)
	assert.False(t, f.refreshValid(t, refresh), "outstanding sessions are revoked")

	// old password no longer works, new one does
	res := f.do("POST", "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "correct horse",
	})
	assert.Equal(t, http.StatusUnauthorized, res.code)
	res = f.do("POST", "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "battery staple",
	})
	assert.Equal(t, http.StatusOK, res.code)
}

func TestChangePasswordWrongCurrentIs401(t *testing.T) {
	f := setupAuth(t)

	u, err := f.users.GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)

	res := f.doAs("PUT", "/api/admin/auth/password", u.ID.Hex(), map[string]string{
		"currentPassword": "wrong",
		"newPassword":     "battery staple",
	})
	require.Equal(t, http.StatusUnauthorized, res.code)
	assert.Equal(t, "Current password is incorrect", res.env.Message)
}

func TestLogoutDeletesRefreshSession(t *testing.T) {
	f := setupAuth(t)
	_, refresh := f.login(t)

	u, err := f.users.GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	got := f.doAs("POST", "/api/admin/auth/logout", u.ID.Hex(), map[string]string{
		"refreshToken": refresh,
	})
	require.Equal(t, http.StatusOK, got.code)
	assert.False(t, f.refreshValid(t, refresh))
}
