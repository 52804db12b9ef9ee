package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"portfolio-api/internal/models"
)

// Claims carried by an access token.
type Claims struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

var ErrInvalidToken = errors.New("invalid token")

// GenerateAccessToken creates a signed HS256 JWT for the user.
func GenerateAccessToken(secret string, u *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.ID.Hex(),
		"email": u.Email,
		"name":  u.Name,
		"role":  u.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// VerifyAccessToken parses and validates a token, returning its claims.
// Only HS256 is accepted.
func VerifyAccessToken(secret, tokenStr string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	c := &Claims{}
	c.UserID, _ = mc["sub"].(string)
	c.Email, _ = mc["email"].(string)
	c.Name, _ = mc["name"].(string)
	c.Role, _ = mc["role"].(string)
	if c.UserID == "" {
		return nil, ErrInvalidToken
	}
	return c, nil
}
