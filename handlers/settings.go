package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/internal/models"
	"portfolio-api/internal/store"
	"portfolio-api/internal/validate"
)

type SettingsRequest struct {
	SiteName        string                `json:"siteName" validate:"required,min=1,max=100"`
	SiteDescription string                `json:"siteDescription" validate:"max=500"`
	SiteURL         string                `json:"siteUrl" validate:"omitempty,url"`
	Social          models.SocialLinks    `json:"social"`
	SEO             models.SEODefaults    `json:"seo"`
	Features        models.FeatureToggles `json:"features"`
	MaintenanceMode bool                  `json:"maintenanceMode"`
}

// SettingsHandler serves the singleton site configuration. Reads are public;
// writes and resets are admin-only.
type SettingsHandler struct {
	settings store.SettingsStore
}

func NewSettingsHandler(settings store.SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Register(public, admin *gin.RouterGroup) {
	public.GET("/settings", h.Get)
	admin.PUT("/settings", h.Update)
	admin.POST("/settings/reset", h.Reset)
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.settings.Get(c.Request.Context())
	if err != nil {
		failErr(c, err, "Settings")
		return
	}
	ok(c, http.StatusOK, s)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		failValidation(c, err)
		return
	}

	s := &models.Settings{
		ID:              models.SettingsKey,
		SiteName:        req.SiteName,
		SiteDescription: req.SiteDescription,
		SiteURL:         req.SiteURL,
		Social:          req.Social,
		SEO:             req.SEO,
		Features:        req.Features,
		MaintenanceMode: req.MaintenanceMode,
	}
	if err := h.settings.Update(c.Request.Context(), s); err != nil {
		failErr(c, err, "Settings")
		return
	}
	okMessage(c, http.StatusOK, "Settings updated", s)
}

func (h *SettingsHandler) Reset(c *gin.Context) {
	s, err := h.settings.Reset(c.Request.Context())
	if err != nil {
		failErr(c, err, "Settings")
		return
	}
	okMessage(c, http.StatusOK, "Settings reset to defaults", s)
}
