package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/internal/config"
	"portfolio-api/internal/sessions"
	"portfolio-api/internal/tokens"
	"portfolio-api/internal/users"
	"portfolio-api/pkg/logger"
	"portfolio-api/pkg/middleware"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// AuthHandler serves login, token refresh and session management.
type AuthHandler struct {
	cfg         *config.Config
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
}

func NewAuthHandler(cfg *config.Config, u *users.Service, s *sessions.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u, sessionsSvc: s}
}

// Register mounts routes. Login and refresh are public; the rest requires an
// authenticated admin.
func (h *AuthHandler) Register(public, admin *gin.RouterGroup) {
	a := public.Group("/auth")
	a.POST("/login", h.Login)
	a.POST("/refresh", h.Refresh)

	p := admin.Group("/auth")
	p.POST("/logout", h.Logout)
	p.GET("/me", h.Me)
	p.PUT("/password", h.ChangePassword)
}

type tokenPair struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         interface{} `json:"user"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	u, err := h.usersSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		failErr(c, err, "User")
		return
	}

	refresh, err := h.sessionsSvc.CreateSession(c.Request.Context(), u.ID.Hex(), h.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		logger.Errorf("auth: failed to create session: %v", err)
		fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	access, err := tokens.GenerateAccessToken(h.cfg.JWT.Secret, u, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		logger.Errorf("auth: failed to sign access token: %v", err)
		fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	ok(c, http.StatusOK, tokenPair{AccessToken: access, RefreshToken: refresh, User: u})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "refreshToken is required")
		return
	}

	sess, err := h.sessionsSvc.ValidateRefresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		failErr(c, err, "Session")
		return
	}
	if sess == nil {
		fail(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	u, err := h.usersSvc.GetByID(c.Request.Context(), sess.UserID)
	if err != nil {
		fail(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	// rotate: old refresh token is single-use
	_ = h.sessionsSvc.DeleteRefresh(c.Request.Context(), req.RefreshToken)
	refresh, err := h.sessionsSvc.CreateSession(c.Request.Context(), u.ID.Hex(), h.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		logger.Errorf("auth: failed to rotate session: %v", err)
		fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	access, err := tokens.GenerateAccessToken(h.cfg.JWT.Secret, u, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		logger.Errorf("auth: failed to sign access token: %v", err)
		fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	ok(c, http.StatusOK, tokenPair{AccessToken: access, RefreshToken: refresh, User: u})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		_ = h.sessionsSvc.DeleteRefresh(c.Request.Context(), req.RefreshToken)
	}
	// revoke the presented access token for its remaining lifetime
	if raw := c.GetString("accessToken"); raw != "" {
		if err := sessions.BlacklistAccessToken(c.Request.Context(), raw, h.cfg.JWT.AccessTokenTTL); err != nil {
			logger.Warnf("auth: failed to blacklist access token: %v", err)
		}
	}
	okMessage(c, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.usersSvc.GetByID(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		failErr(c, err, "User")
		return
	}
	ok(c, http.StatusOK, u)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "currentPassword and newPassword (min 8 chars) are required")
		return
	}

	userID := c.GetString(middleware.CtxUserID)
	if err := h.usersSvc.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		failErr(c, err, "User")
		return
	}

	// force re-login everywhere else
	if err := h.sessionsSvc.RevokeUser(c.Request.Context(), userID); err != nil {
		logger.Warnf("auth: failed to revoke sessions after password change: %v", err)
	}
	okMessage(c, http.StatusOK, "Password updated", nil)
}
