package handlers

import (
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

type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=30"`
	Subject string `json:"subject" validate:"required,min=3,max=200"`
	Message string `json:"message" validate:"required,min=20,max=5000"`
}

type ContactUpdateRequest struct {
	Status   string `json:"status" validate:"omitempty,oneof=new read replied archived"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	contacts store.ContactStore
	events   store.AnalyticsStore
	mail     *mailer.Mailer
}

func NewContactHandler(contacts store.ContactStore, events store.AnalyticsStore, mail *mailer.Mailer) *ContactHandler {
	return &ContactHandler{contacts: contacts, events: events, mail: mail}
}

func (h *ContactHandler) Register(public, admin *gin.RouterGroup) {
	public.POST("/contact", h.Submit)

	a := admin.Group("/contact")
	a.GET("", h.List)
	a.GET("/:id", h.Get)
	a.PUT("/:id", h.Update)
	a.DELETE("/:id", h.Delete)
}

// Submit stores a contact message and kicks off the notification emails and
// the analytics event, all best-effort.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		failValidation(c, err)
		return
	}

	msg := &models.Contact{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
		Message:  req.Message,
		Status:   models.ContactStatusNew,
		Priority: models.ContactPriorityMedium,
	}
	if err := h.contacts.Create(c.Request.Context(), msg); err != nil {
		failErr(c, err, "Contact message")
		return
	}

	h.mail.SendAsync(h.mail.ContactNotification(msg))
	h.mail.SendAsync(h.mail.ContactAutoReply(msg))
	h.recordEvent(c)

	okMessage(c, http.StatusCreated, "Message sent", msg)
}

func (h *ContactHandler) recordEvent(c *gin.Context) {
	e := &models.Event{
		Type:      models.EventTypeContactForm,
		Path:      c.FullPath(),
		SessionID: c.GetHeader("X-Session-Id"),
		Timestamp: time.Now().UTC(),
	}
	go func() {
		ctx, cancel := contextWithTimeout(5 * time.Second)
		defer cancel()
		if err := h.events.Record(ctx, e); err != nil {
			logger.Warnf("contact: failed to record analytics event: %v", err)
			return
		}
		metrics.EventsRecorded.WithLabelValues(e.Type).Inc()
	}()
}

func (h *ContactHandler) List(c *gin.Context) {
	lp := parseListParams(c)
	filter := store.ContactFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	items, pg, err := h.contacts.List(c.Request.Context(), lp, filter)
	if err != nil {
		failErr(c, err, "Contact message")
		return
	}
	okList(c, items, pg)
}

// Get returns one message and, when still new, flips it to read.
func (h *ContactHandler) Get(c *gin.Context) {
	msg, err := h.contacts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, "Contact message")
		return
	}
	if msg.Status == models.ContactStatusNew {
		msg.Status = models.ContactStatusRead
		if err := h.contacts.Update(c.Request.Context(), msg); err != nil {
			logger.Warnf("contact: failed to mark %s read: %v", c.Param("id"), err)
		}
	}
	ok(c, http.StatusOK, msg)
}

func (h *ContactHandler) Update(c *gin.Context) {
	var req ContactUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		failValidation(c, err)
		return
	}

	msg, err := h.contacts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, "Contact message")
		return
	}

	if req.Status != "" {
		if req.Status == models.ContactStatusReplied && msg.Status != models.ContactStatusReplied {
			now := time.Now().UTC()
			msg.RepliedAt = &now
		}
		msg.Status = req.Status
	}
	if req.Priority != "" {
		msg.Priority = req.Priority
	}

	if err := h.contacts.Update(c.Request.Context(), msg); err != nil {
		failErr(c, err, "Contact message")
		return
	}
	okMessage(c, http.StatusOK, "Contact message updated", msg)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err, "Contact message")
		return
	}
	okMessage(c, http.StatusOK, "Contact message deleted", nil)
}
