package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-api/internal/analytics"
	"portfolio-api/internal/models"
	"portfolio-api/internal/store"
	"portfolio-api/internal/validate"
	"portfolio-api/pkg/metrics"
)

type EventRequest struct {
	Type      string            `json:"type" validate:"required,oneof=page_view click download contact_form newsletter_signup email_sent"`
	Path      string            `json:"path" validate:"max=500"`
	Referrer  string            `json:"referrer" validate:"max=500"`
	SessionID string            `json:"sessionId" validate:"required,max=100"`
	Country   string            `json:"country" validate:"max=100"`
	Metadata  map[string]string `json:"metadata"`
}

// AnalyticsHandler records public events and serves the admin aggregates.
type AnalyticsHandler struct {
	events store.AnalyticsStore
}

func NewAnalyticsHandler(events store.AnalyticsStore) *AnalyticsHandler {
	return &AnalyticsHandler{events: events}
}

func (h *AnalyticsHandler) Register(public, admin *gin.RouterGroup) {
	public.POST("/analytics", h.Record)
	admin.GET("/analytics", h.Aggregates)
}

// Record appends one event. The device/browser/OS triple comes from the
// User-Agent header, not the body.
func (h *AnalyticsHandler) Record(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		failValidation(c, err)
		return
	}

	ua := analytics.ParseUserAgent(c.GetHeader("User-Agent"))
	e := &models.Event{
		Type:      req.Type,
		Path:      req.Path,
		Referrer:  req.Referrer,
		Device:    ua.Device,
		Browser:   ua.Browser,
		OS:        ua.OS,
		Country:   req.Country,
		SessionID: req.SessionID,
		Metadata:  req.Metadata,
		Timestamp: time.Now().UTC(),
	}
	if err := h.events.Record(c.Request.Context(), e); err != nil {
		failErr(c, err, "Event")
		return
	}
	metrics.EventsRecorded.WithLabelValues(e.Type).Inc()
	okMessage(c, http.StatusCreated, "Event recorded", gin.H{"id": e.ID})
}

type aggregatesResponse struct {
	Period       gin.H              `json:"period"`
	Overview     *store.Overview    `json:"overview"`
	TopPages     []store.CountRow   `json:"topPages"`
	TopReferrers []store.CountRow   `json:"topReferrers"`
	Devices      []store.CountRow   `json:"devices"`
	Browsers     []store.CountRow   `json:"browsers"`
	Countries    []store.CountRow   `json:"countries"`
	Daily        []store.SeriesPoint `json:"daily"`
}

// Aggregates runs the independent read-only aggregation queries for a period
// named 7d/30d/90d/1y or bounded by explicit start/end parameters.
func (h *AnalyticsHandler) Aggregates(c *gin.Context) {
	period := store.ParsePeriod(c.Query("period"), c.Query("start"), c.Query("end"))
	ctx := c.Request.Context()

	out := aggregatesResponse{
		Period: gin.H{"start": period.Start, "end": period.End},
	}
	var err error
	if out.Overview, err = h.events.Overview(ctx, period); err != nil {
		failErr(c, err, "Analytics")
		return
	}
	if out.TopPages, err = h.events.TopPages(ctx, period); err != nil {
		failErr(c, err, "Analytics")
		return
	}
	if out.TopReferrers, err = h.events.TopReferrers(ctx, period); err != nil {
		failErr(c, err, "Analytics")
		return
	}
	if out.Devices, err = h.events.Breakdown(ctx, period, store.BreakdownDevice); err != nil {
		failErr(c, err, "Analytics")
		return
	}
	if out.Browsers, err = h.events.Breakdown(ctx, period, store.BreakdownBrowser); err != nil {
		failErr(c, err, "Analytics")
		return
	}
	if out.Countries, err = h.events.Breakdown(ctx, period, store.BreakdownCountry); err != nil {
		failErr(c, err, "Analytics")
		return
	}
	if out.Daily, err = h.events.DailySeries(ctx, period); err != nil {
		failErr(c, err, "Analytics")
		return
	}

	ok(c, http.StatusOK, out)
}
