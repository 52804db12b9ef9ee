package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// newTestRouter returns an engine plus the public and admin groups handlers
// register on. The admin group carries no auth middleware here; the gate has
// its own tests.
func newTestRouter() (*gin.Engine, *gin.RouterGroup, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	public := r.Group("/api")
	admin := r.Group("/api/admin")
	return r, public, admin
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope mirrors Response with data left raw for per-test decoding.
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page        int   `json:"page"`
		Limit       int   `json:"limit"`
		Total       int64 `json:"total"`
		TotalPages  int   `json:"totalPages"`
		HasNextPage bool  `json:"hasNextPage"`
		HasPrevPage bool  `json:"hasPrevPage"`
	} `json:"pagination"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
