package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-api/internal/store"
)

// contextWithTimeout backs fire-and-forget work that must outlive the request
// context.
func contextWithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

// parseListParams reads the shared pagination/sort/search query parameters.
// Out-of-range values are clamped by Normalize, never rejected.
func parseListParams(c *gin.Context) store.ListParams {
	lp := store.ListParams{
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
		Search: c.Query("search"),
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		lp.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		lp.Limit = v
	}
	lp.Normalize()
	return lp
}

// parseIntQuery reads an optional integer query parameter.
func parseIntQuery(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Query(name))
}

// parseBool reads an optional boolean query parameter, nil when absent or
// unparseable.
func parseBool(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
