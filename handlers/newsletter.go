package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-api/internal/mailer"
	"portfolio-api/internal/models"
	"portfolio-api/internal/store"
	"portfolio-api/internal/validate"
	"portfolio-api/pkg/logger"
	"portfolio-api/pkg/metrics"
)

type SubscribeRequest struct {
	Email       string                        `json:"email" validate:"required,email"`
	Name        string                        `json:"name" validate:"max=100"`
	Preferences *models.SubscriberPreferences `json:"preferences"`
}

type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// NewsletterHandler serves public subscribe/unsubscribe and the admin
// subscriber list.
type NewsletterHandler struct {
	subscribers store.SubscriberStore
	events      store.AnalyticsStore
	mail        *mailer.Mailer
}

func NewNewsletterHandler(subs store.SubscriberStore, events store.AnalyticsStore, mail *mailer.Mailer) *NewsletterHandler {
	return &NewsletterHandler{subscribers: subs, events: events, mail: mail}
}

func (h *NewsletterHandler) Register(public, admin *gin.RouterGroup) {
	n := public.Group("/newsletter")
	n.POST("", h.Subscribe)
	n.POST("/unsubscribe", h.Unsubscribe)

	a := admin.Group("/newsletter")
	a.GET("", h.List)
	a.GET("/:id", h.Get)
	a.DELETE("/:id", h.Delete)
}

// Subscribe creates a subscriber, or reactivates an unsubscribed one in
// place. An already-active email is a 409.
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		failValidation(c, err)
		return
	}

	prefs := models.SubscriberPreferences{BlogUpdates: true, ProjectUpdates: true, Newsletter: true}
	if req.Preferences != nil {
		prefs = *req.Preferences
	}

	existing, err := h.subscribers.GetByEmail(c.Request.Context(), req.Email)
	switch {
	case err == nil && existing.Status == models.SubscriberStatusActive:
		fail(c, http.StatusConflict, "Email is already subscribed")
		return
	case err == nil:
		// previously unsubscribed or bounced: reactivate in place
		existing.Status = models.SubscriberStatusActive
		existing.UnsubscribedAt = nil
		existing.SubscribedAt = time.Now().UTC()
		if req.Name != "" {
			existing.Name = req.Name
		}
		existing.Preferences = prefs
		if err := h.subscribers.Update(c.Request.Context(), existing); err != nil {
			failErr(c, err, "Subscriber")
			return
		}
		h.afterSubscribe(c, existing)
		okMessage(c, http.StatusOK, "Subscription reactivated", existing)
		return
	case !errors.Is(err, store.ErrNotFound):
		failErr(c, err, "Subscriber")
		return
	}

	sub := &models.Subscriber{
		Email:       req.Email,
		Name:        req.Name,
		Status:      models.SubscriberStatusActive,
		Preferences: prefs,
	}
	if err := h.subscribers.Create(c.Request.Context(), sub); err != nil {
		failErr(c, err, "Subscriber")
		return
	}
	h.afterSubscribe(c, sub)
	okMessage(c, http.StatusCreated, "Subscribed", sub)
}

func (h *NewsletterHandler) afterSubscribe(c *gin.Context, sub *models.Subscriber) {
	h.mail.SendAsync(h.mail.NewsletterWelcome(sub))
	e := &models.Event{
		Type:      models.EventTypeNewsletterSignup,
		Path:      c.FullPath(),
		SessionID: c.GetHeader("X-Session-Id"),
		Timestamp: time.Now().UTC(),
	}
	go func() {
		ctx, cancel := contextWithTimeout(5 * time.Second)
		defer cancel()
		if err := h.events.Record(ctx, e); err != nil {
			logger.Warnf("newsletter: failed to record analytics event: %v", err)
			return
		}
		metrics.EventsRecorded.WithLabelValues(e.Type).Inc()
	}()
}

// Unsubscribe flips a subscriber to unsubscribed. Unknown emails return 404.
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		failValidation(c, err)
		return
	}

	sub, err := h.subscribers.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		failErr(c, err, "Subscriber")
		return
	}
	if sub.Status != models.SubscriberStatusUnsubscribed {
		now := time.Now().UTC()
		sub.Status = models.SubscriberStatusUnsubscribed
		sub.UnsubscribedAt = &now
		if err := h.subscribers.Update(c.Request.Context(), sub); err != nil {
			failErr(c, err, "Subscriber")
			return
		}
		h.mail.SendAsync(h.mail.UnsubscribeConfirm(sub))
	}
	okMessage(c, http.StatusOK, "Unsubscribed", nil)
}

func (h *NewsletterHandler) List(c *gin.Context) {
	lp := parseListParams(c)
	filter := store.SubscriberFilter{Status: c.Query("status")}
	items, pg, err := h.subscribers.List(c.Request.Context(), lp, filter)
	if err != nil {
		failErr(c, err, "Subscriber")
		return
	}
	okList(c, items, pg)
}

func (h *NewsletterHandler) Get(c *gin.Context) {
	sub, err := h.subscribers.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, "Subscriber")
		return
	}
	ok(c, http.StatusOK, sub)
}

func (h *NewsletterHandler) Delete(c *gin.Context) {
	if err := h.subscribers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err, "Subscriber")
		return
	}
	okMessage(c, http.StatusOK, "Subscriber deleted", nil)
}
