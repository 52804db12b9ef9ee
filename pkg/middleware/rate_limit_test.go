package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func limitedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/r", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r
}

// hit issues a request from the given remote address; the limiter store is
// package-level, so each test uses its own address
func hit(r *gin.Engine, addr string) int {
	req := httptest.NewRequest("GET", "/r", nil)
	req.RemoteAddr = addr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	r := limitedRouter(RateLimit(0.0001, 3))

	allowed := 0
	rejected := 0
	for i := 0; i < 10; i++ {
		switch hit(r, "10.1.0.1:1000") {
		case http.StatusOK:
			allowed++
		case http.StatusTooManyRequests:
			rejected++
		}
	}
	require.LessOrEqual(t, allowed, 3)
	require.Positive(t, rejected)
}

func TestRedisRateLimit_FixedWindow(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	r := limitedRouter(RedisRateLimit(client, 1, 0, time.Second))

	require.Equal(t, http.StatusOK, hit(r, "10.1.0.2:1000"))
	require.Equal(t, http.StatusTooManyRequests, hit(r, "10.1.0.2:1000"))

	// advance miniredis clock past the window TTL
	m.FastForward(2 * time.Second)
	require.Equal(t, http.StatusOK, hit(r, "10.1.0.2:1000"))
}

func TestRedisRateLimit_NilClientFallsBack(t *testing.T) {
	mw := RedisRateLimit(nil, 100, 100, time.Second)
	r := limitedRouter(mw)
	require.Equal(t, http.StatusOK, hit(r, "10.1.0.3:1000"))
}

func TestRedisRateLimit_FailsOpenOnRedisError(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	m.Close() // sever the connection

	r := limitedRouter(RedisRateLimit(client, 1, 0, time.Second))
	require.Equal(t, http.StatusOK, hit(r, "10.1.0.4:1000"))
}
