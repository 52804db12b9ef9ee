package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-api/internal/sessions"
	"portfolio-api/internal/tokens"
)

// Context keys set by RequireAdmin.
const (
	CtxUserID = "userId"
	CtxClaims = "claims"
)

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": msg})
}

// RequireAdmin verifies a Bearer access token, rejects blacklisted tokens and
// admits only accounts with the admin role. On success the user id and claims
// are stored on the context.
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			unauthorized(c, "missing Authorization header")
			return
		}
		raw, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || raw == "" {
			unauthorized(c, "invalid Authorization header")
			return
		}

		black, err := sessions.IsAccessTokenBlacklisted(c.Request.Context(), raw)
		if err == nil && black {
			unauthorized(c, "token revoked")
			return
		}

		claims, err := tokens.VerifyAccessToken(secret, raw)
		if err != nil {
			unauthorized(c, "invalid token")
			return
		}
		if claims.Role != "admin" {
			unauthorized(c, "admin access required")
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxClaims, claims)
		c.Set("accessToken", raw)
		c.Next()
	}
}
