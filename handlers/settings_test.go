package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/models"
	"portfolio-api/internal/store"
)

func setupSettings(t *testing.T) func(string, string, interface{}) *envelopeRecorder {
	t.Helper()
	settings := store.NewMemorySettingsStore()

	r, public, admin := newTestRouter()
	NewSettingsHandler(settings).Register(public, admin)

	return func(method, path string, body interface{}) *envelopeRecorder {
		w := doJSON(t, r, method, path, body)
		return &envelopeRecorder{code: w.Code, env: decodeEnvelope(t, w)}
	}
}

func TestSettingsGetReturnsDefaultsOnFirstRead(t *testing.T) {
	do := setupSettings(t)

	res := do("GET", "/api/settings", nil)
	require.Equal(t, http.StatusOK, res.code)

	var got models.Settings
	require.NoError(t, json.Unmarshal(res.env.Data, &got))
	assert.Equal(t, "Portfolio", got.SiteName)
	assert.True(t, got.Features.Blog)
	assert.True(t, got.Features.Newsletter)
	assert.False(t, got.MaintenanceMode)
}

func TestSettingsUpdatePersists(t *testing.T) {
	do := setupSettings(t)

	res := do("PUT", "/api/admin/settings", map[string]interface{}{
		"siteName": "Jo Li Dev",
		"siteUrl":  "https://joli.dev",
		"social":   map[string]string{"github": "https://github.com/joli"},
		"features": map[string]bool{"blog": true, "projects": false},
	})
	require.Equal(t, http.StatusOK, res.code)

	res = do("GET", "/api/settings", nil)
	require.Equal(t, http.StatusOK, res.code)
	var got models.Settings
	require.NoError(t, json.Unmarshal(res.env.Data, &got))
	assert.Equal(t, "Jo Li Dev", got.SiteName)
	assert.Equal(t, "https://joli.dev", got.SiteURL)
	assert.Equal(t, "https://github.com/joli", got.Social.Github)
	assert.False(t, got.Features.Projects)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSettingsUpdateRequiresSiteName(t *testing.T) {
	do := setupSettings(t)

	res := do("PUT", "/api/admin/settings", map[string]interface{}{"siteUrl": "https://joli.dev"})
	require.Equal(t, http.StatusUnprocessableEntity, res.code)
	assert.Contains(t, res.env.Message, "siteName")
}

func TestSettingsResetRestoresDefaults(t *testing.T) {
	do := setupSettings(t)

	require.Equal(t, http.StatusOK, do("PUT", "/api/admin/settings", map[string]interface{}{
		"siteName":        "Changed",
		"maintenanceMode": true,
	}).code)

	res := do("POST", "/api/admin/settings/reset", nil)
	require.Equal(t, http.StatusOK, res.code)

	res = do("GET", "/api/settings", nil)
	var got models.Settings
	require.NoError(t, json.Unmarshal(res.env.Data, &got))
	assert.Equal(t, "Portfolio", got.SiteName)
	assert.False(t, got.MaintenanceMode)
	assert.True(t, got.Features.Testimonials)
}
