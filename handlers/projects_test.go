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

func setupProjects(t *testing.T) func(string, string, interface{}) *envelopeRecorder {
	t.Helper()
	projects := store.NewMemoryProjectStore()

	r, public, admin := newTestRouter()
	NewProjectsHandler(projects).Register(public, admin)

	return func(method, path string, body interface{}) *envelopeRecorder {
		w := doJSON(t, r, method, path, body)
		return &envelopeRecorder{code: w.Code, env: decodeEnvelope(t, w)}
	}
}

func validProjectBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":        title,
		"description":  "A project description that is long enough.",
		"technologies": []string{"go", "mongodb"},
		"status":       "completed",
	}
}

func TestProjectCreateDerivesSlug(t *testing.T) {
	do := setupProjects(t)

	res := do("POST", "/api/admin/projects", validProjectBody("Crème Brûlée Tracker"))
	require.Equal(t, http.StatusCreated, res.code)

	var created models.Project
	require.NoError(t, json.Unmarshal(res.env.Data, &created))
	assert.Equal(t, "creme-brulee-tracker", created.Slug)
}

func TestProjectDateOrderingValidated(t *testing.T) {
	do := setupProjects(t)

	body := validProjectBody("Dated Project")
	body["startDate"] = "2026-03-01T00:00:00Z"
	body["endDate"] = "2026-01-01T00:00:00Z"
	res := do("POST", "/api/admin/projects", body)
	require.Equal(t, http.StatusUnprocessableEntity, res.code)
	assert.Contains(t, res.env.Message, "endDate")

	body["endDate"] = "2026-06-01T00:00:00Z"
	res = do("POST", "/api/admin/projects", body)
	require.Equal(t, http.StatusCreated, res.code)

	var created models.Project
	require.NoError(t, json.Unmarshal(res.env.Data, &created))
	assert.Equal(t, 92, created.DurationDays())
}

func TestProjectPublicListHidesArchived(t *testing.T) {
	do := setupProjects(t)

	require.Equal(t, http.StatusCreated, do("POST", "/api/admin/projects", validProjectBody("Visible")).code)
	archived := validProjectBody("Old Thing")
	archived["status"] = "archived"
	require.Equal(t, http.StatusCreated, do("POST", "/api/admin/projects", archived).code)

	res := do("GET", "/api/projects", nil)
	require.Equal(t, http.StatusOK, res.code)
	var listed []models.Project
	require.NoError(t, json.Unmarshal(res.env.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "visible", listed[0].Slug)

	// archived slug is hidden from the public detail route too
	res = do("GET", "/api/projects/old-thing", nil)
	require.Equal(t, http.StatusNotFound, res.code)
}

func TestProjectPublicGetBySlug(t *testing.T) {
	do := setupProjects(t)

	require.Equal(t, http.StatusCreated, do("POST", "/api/admin/projects", validProjectBody("Side Project")).code)

	res := do("GET", "/api/projects/side-project", nil)
	require.Equal(t, http.StatusOK, res.code)
	var got models.Project
	require.NoError(t, json.Unmarshal(res.env.Data, &got))
	assert.Equal(t, "Side Project", got.Title)

	res = do("GET", "/api/projects/no-such-project", nil)
	require.Equal(t, http.StatusNotFound, res.code)
	assert.Equal(t, "Project not found", res.env.Message)
}

func TestProjectArchivedHiddenFromPublicSlug(t *testing.T) {
	do := setupProjects(t)

	res := do("POST", "/api/admin/projects", validProjectBody("Shelved"))
	require.Equal(t, http.StatusCreated, res.code)
	var created models.Project
	require.NoError(t, json.Unmarshal(res.env.Data, &created))

	body := validProjectBody("Shelved")
	body["status"] = "archived"
	require.Equal(t, http.StatusOK, do("PUT", "/api/admin/projects/"+created.ID.Hex(), body).code)

	res = do("GET", "/api/projects/shelved", nil)
	require.Equal(t, http.StatusNotFound, res.code)

	// still reachable through the admin route
	res = do("GET", "/api/admin/projects/"+created.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, res.code)
}

func TestProjectTechnologyFilter(t *testing.T) {
	do := setupProjects(t)

	a := validProjectBody("Go Service")
	a["technologies"] = []string{"go", "redis"}
	b := validProjectBody("Rust CLI")
	b["technologies"] = []string{"rust"}
	require.Equal(t, http.StatusCreated, do("POST", "/api/admin/projects", a).code)
	require.Equal(t, http.StatusCreated, do("POST", "/api/admin/projects", b).code)

	res := do("GET", "/api/projects?technology=go", nil)
	require.Equal(t, http.StatusOK, res.code)
	var listed []models.Project
	require.NoError(t, json.Unmarshal(res.env.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "go-service", listed[0].Slug)
}

func TestProjectUpdateInvalidURLRejected(t *testing.T) {
	do := setupProjects(t)

	res := do("POST", "/api/admin/projects", validProjectBody("URL Project"))
	require.Equal(t, http.StatusCreated, res.code)
	var created models.Project
	require.NoError(t, json.Unmarshal(res.env.Data, &created))

	body := validProjectBody("URL Project")
	body["githubUrl"] = "not a url"
	res = do("PUT", "/api/admin/projects/"+created.ID.Hex(), body)
	require.Equal(t, http.StatusUnprocessableEntity, res.code)
	assert.Contains(t, res.env.Message, "githubUrl")
}
