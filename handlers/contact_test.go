package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/config"
	"portfolio-api/internal/mailer"
	"portfolio-api/internal/models"
	"portfolio-api/internal/store"
)

func setupContact(t *testing.T) (*store.MemoryContactStore, *store.MemoryAnalyticsStore, func(string, string, interface{}) *envelopeRecorder) {
	t.Helper()
	contacts := store.NewMemoryContactStore()
	events := store.NewMemoryAnalyticsStore()
	mail := mailer.New(config.EmailConfig{SiteName: "Test Site", AdminEmail: "admin@example.com"})

	r, public, admin := newTestRouter()
	NewContactHandler(contacts, events, mail).Register(public, admin)

	do := func(method, path string, body interface{}) *envelopeRecorder {
		w := doJSON(t, r, method, path, body)
		return &envelopeRecorder{code: w.Code, env: decodeEnvelope(t, w)}
	}
	return contacts, events, do
}

type envelopeRecorder struct {
	code int
	env  envelope
}

func validContactBody() map[string]interface{} {
	return map[string]interface{}{
		"name":    "Jo Li",
		"email":   "jo@x.com",
		"subject": "Hello there",
		"message": "This message is exactly twenty!!",
	}
}

func TestContactSubmitAndAdminRead(t *testing.T) {
	contacts, _, do := setupContact(t)

	res := do("POST", "/api/contact", validContactBody())
	require.Equal(t, http.StatusCreated, res.code)
	require.True(t, res.env.Success)

	var created models.Contact
	require.NoError(t, json.Unmarshal(res.env.Data, &created))
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, models.ContactStatusNew, created.Status)
	assert.Equal(t, models.ContactPriorityMedium, created.Priority)

	// admin list shows the stored message
	res = do("GET", "/api/admin/contact", nil)
	require.Equal(t, http.StatusOK, res.code)
	var listed []models.Contact
	require.NoError(t, json.Unmarshal(res.env.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Jo Li", listed[0].Name)

	// reading flips new -> read
	res = do("GET", "/api/admin/contact/"+created.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, res.code)
	stored, err := contacts.GetByID(context.Background(), created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusRead, stored.Status)
}

func TestContactMessageLengthBoundary(t *testing.T) {
	_, _, do := setupContact(t)

	body := validContactBody()
	body["message"] = strings.Repeat("a", 19)
	res := do("POST", "/api/contact", body)
	require.Equal(t, http.StatusUnprocessableEntity, res.code)
	assert.False(t, res.env.Success)
	assert.Contains(t, res.env.Message, "at least 20")

	body["message"] = strings.Repeat("a", 20)
	res = do("POST", "/api/contact", body)
	require.Equal(t, http.StatusCreated, res.code)
}

func TestContactRecordsAnalyticsEvent(t *testing.T) {
	_, events, do := setupContact(t)

	res := do("POST", "/api/contact", validContactBody())
	require.Equal(t, http.StatusCreated, res.code)

	// the event insert runs on a background goroutine
	require.Eventually(t, func() bool {
		n, err := events.TotalEvents(context.Background())
		return err == nil && n == 1
	}, time.Second, 10*time.Millisecond)
}

func TestContactUpdateSetsRepliedAt(t *testing.T) {
	contacts, _, do := setupContact(t)

	msg := &models.Contact{Name: "A", Email: "a@b.c", Subject: "s", Message: strings.Repeat("m", 20), Status: models.ContactStatusNew, Priority: models.ContactPriorityLow}
	require.NoError(t, contacts.Create(context.Background(), msg))

	res := do("PUT", "/api/admin/contact/"+msg.ID.Hex(), map[string]string{"status": "replied", "priority": "high"})
	require.Equal(t, http.StatusOK, res.code)

	stored, err := contacts.GetByID(context.Background(), msg.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusReplied, stored.Status)
	assert.Equal(t, models.ContactPriorityHigh, stored.Priority)
	assert.NotNil(t, stored.RepliedAt)
}

func TestContactDeleteMissingIs404(t *testing.T) {
	_, _, do := setupContact(t)

	res := do("DELETE", "/api/admin/contact/ffffffffffffffffffffffff", nil)
	require.Equal(t, http.StatusNotFound, res.code)
	assert.Contains(t, res.env.Message, "not found")
}

func TestContactInvalidStatusRejected(t *testing.T) {
	contacts, _, do := setupContact(t)

	msg := &models.Contact{Name: "A", Email: "a@b.c", Subject: "s", Message: strings.Repeat("m", 20), Status: models.ContactStatusNew, Priority: models.ContactPriorityLow}
	require.NoError(t, contacts.Create(context.Background(), msg))

	res := do("PUT", "/api/admin/contact/"+msg.ID.Hex(), map[string]string{"status": "bogus"})
	require.Equal(t, http.StatusUnprocessableEntity, res.code)
}
