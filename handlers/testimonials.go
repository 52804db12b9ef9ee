package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-api/internal/mailer"
	"portfolio-api/internal/models"
	"portfolio-api/internal/store"
	"portfolio-api/internal/validate"
)

type TestimonialRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"max=100"`
	Company   string `json:"company" validate:"max=100"`
	Content   string `json:"content" validate:"required,min=10,max=2000"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
	ProjectID string `json:"projectId"`
}

type TestimonialUpdateRequest struct {
	TestimonialRequest
	Status   string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	Featured bool   `json:"featured"`
}

// TestimonialsHandler serves public testimonial submission/display and the
// admin moderation CRUD.
type TestimonialsHandler struct {
	testimonials store.TestimonialStore
	mail         *mailer.Mailer
}

func NewTestimonialsHandler(ts store.TestimonialStore, mail *mailer.Mailer) *TestimonialsHandler {
	return &TestimonialsHandler{testimonials: ts, mail: mail}
}

func (h *TestimonialsHandler) Register(public, admin *gin.RouterGroup) {
	t := public.Group("/testimonials")
	t.GET("", h.ListApproved)
	t.POST("", h.Submit)

	a := admin.Group("/testimonials")
	a.GET("", h.List)
	a.GET("/:id", h.Get)
	a.PUT("/:id", h.Update)
	a.DELETE("/:id", h.Delete)
}

// ListApproved is the public view: approved testimonials only.
func (h *TestimonialsHandler) ListApproved(c *gin.Context) {
	lp := parseListParams(c)
	filter := store.TestimonialFilter{
		Status:   models.TestimonialStatusApproved,
		Featured: parseBool(c, "featured"),
	}
	items, pg, err := h.testimonials.List(c.Request.Context(), lp, filter)
	if err != nil {
		failErr(c, err, "Testimonial")
		return
	}
	okList(c, items, pg)
}

// Submit accepts a public testimonial; it lands in pending for moderation.
func (h *TestimonialsHandler) Submit(c *gin.Context) {
	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		failValidation(c, err)
		return
	}

	ts := testimonialFromRequest(&req)
	ts.Status = models.TestimonialStatusPending
	if ts.AvatarURL == "" {
		ts.AvatarURL = defaultAvatarURL(ts.Name)
	}

	if err := h.testimonials.Create(c.Request.Context(), ts); err != nil {
		failErr(c, err, "Testimonial")
		return
	}

	h.mail.SendAsync(h.mail.TestimonialReceived(ts))
	okMessage(c, http.StatusCreated, "Testimonial submitted for review", ts)
}

func (h *TestimonialsHandler) List(c *gin.Context) {
	lp := parseListParams(c)
	filter := store.TestimonialFilter{
		Status:   c.Query("status"),
		Featured: parseBool(c, "featured"),
	}
	if v, err := parseIntQuery(c, "rating"); err == nil {
		filter.Rating = v
	}
	items, pg, err := h.testimonials.List(c.Request.Context(), lp, filter)
	if err != nil {
		failErr(c, err, "Testimonial")
		return
	}
	okList(c, items, pg)
}

func (h *TestimonialsHandler) Get(c *gin.Context) {
	ts, err := h.testimonials.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, "Testimonial")
		return
	}
	ok(c, http.StatusOK, ts)
}

func (h *TestimonialsHandler) Update(c *gin.Context) {
	var req TestimonialUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		failValidation(c, err)
		return
	}

	existing, err := h.testimonials.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, "Testimonial")
		return
	}

	existing.Name = req.Name
	existing.Email = req.Email
	existing.Role = req.Role
	existing.Company = req.Company
	existing.Content = req.Content
	existing.Rating = req.Rating
	existing.Featured = req.Featured
	if req.AvatarURL != "" {
		existing.AvatarURL = req.AvatarURL
	}
	if req.Status != "" {
		existing.Status = req.Status
	}
	if req.ProjectID != "" {
		if oid, err := primitive.ObjectIDFromHex(req.ProjectID); err == nil {
			existing.ProjectID = &oid
		}
	}

	if err := h.testimonials.Update(c.Request.Context(), existing); err != nil {
		failErr(c, err, "Testimonial")
		return
	}
	okMessage(c, http.StatusOK, "Testimonial updated", existing)
}

func (h *TestimonialsHandler) Delete(c *gin.Context) {
	if err := h.testimonials.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err, "Testimonial")
		return
	}
	okMessage(c, http.StatusOK, "Testimonial deleted", nil)
}

func testimonialFromRequest(req *TestimonialRequest) *models.Testimonial {
	ts := &models.Testimonial{
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		Company:   req.Company,
		Content:   req.Content,
		Rating:    req.Rating,
		AvatarURL: req.AvatarURL,
	}
	if req.ProjectID != "" {
		if oid, err := primitive.ObjectIDFromHex(req.ProjectID); err == nil {
			ts.ProjectID = &oid
		}
	}
	return ts
}

// defaultAvatarURL points at a deterministic generated avatar for the given
// name.
func defaultAvatarURL(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", url.QueryEscape(name))
}
