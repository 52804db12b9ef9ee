package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-api/internal/models"
	"portfolio-api/internal/slug"
	"portfolio-api/internal/store"
	"portfolio-api/internal/validate"
)

type ProjectRequest struct {
	Title           string     `json:"title" validate:"required,min=3,max=200"`
	Description     string     `json:"description" validate:"required,min=10,max=1000"`
	LongDescription string     `json:"longDescription" validate:"max=10000"`
	Technologies    []string   `json:"technologies"`
	GithubURL       string     `json:"githubUrl" validate:"omitempty,url"`
	LiveURL         string     `json:"liveUrl" validate:"omitempty,url"`
	ImageURL        string     `json:"imageUrl" validate:"omitempty,url"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate" validate:"omitempty,gtefield=StartDate"`
	Status          string     `json:"status" validate:"omitempty,oneof=planning in-progress completed archived"`
	Featured        bool       `json:"featured"`
	Order           int        `json:"order" validate:"gte=0"`
}

// ProjectsHandler serves the public project list and the admin project CRUD.
type ProjectsHandler struct {
	projects store.ProjectStore
}

func NewProjectsHandler(projects store.ProjectStore) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

func (h *ProjectsHandler) Register(public, admin *gin.RouterGroup) {
	p := public.Group("/projects")
	p.GET("", h.ListPublic)
	p.GET("/:slug", h.GetBySlug)

	a := admin.Group("/projects")
	a.GET("", h.List)
	a.POST("", h.Create)
	a.GET("/:id", h.Get)
	a.PUT("/:id", h.Update)
	a.DELETE("/:id", h.Delete)
}

// ListPublic hides archived projects.
func (h *ProjectsHandler) ListPublic(c *gin.Context) {
	lp := parseListParams(c)
	status := c.Query("status")
	if status == models.ProjectStatusArchived {
		status = ""
	}
	filter := store.ProjectFilter{
		Status:      status,
		Technology:  c.Query("technology"),
		Featured:    parseBool(c, "featured"),
		NotArchived: true,
	}
	items, pg, err := h.projects.List(c.Request.Context(), lp, filter)
	if err != nil {
		failErr(c, err, "Project")
		return
	}
	okList(c, items, pg)
}

func (h *ProjectsHandler) GetBySlug(c *gin.Context) {
	p, err := h.projects.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil || p.Status == models.ProjectStatusArchived {
		fail(c, http.StatusNotFound, "Project not found")
		return
	}
	ok(c, http.StatusOK, p)
}

func (h *ProjectsHandler) List(c *gin.Context) {
	lp := parseListParams(c)
	filter := store.ProjectFilter{
		Status:     c.Query("status"),
		Technology: c.Query("technology"),
		Featured:   parseBool(c, "featured"),
	}
	items, pg, err := h.projects.List(c.Request.Context(), lp, filter)
	if err != nil {
		failErr(c, err, "Project")
		return
	}
	okList(c, items, pg)
}

func (h *ProjectsHandler) Get(c *gin.Context) {
	p, err := h.projects.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, "Project")
		return
	}
	ok(c, http.StatusOK, p)
}

func (h *ProjectsHandler) Create(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		failValidation(c, err)
		return
	}

	p := projectFromRequest(&req)
	p.Slug = slug.Make(req.Title)

	if err := h.projects.Create(c.Request.Context(), p); err != nil {
		failErr(c, err, "Project")
		return
	}
	okMessage(c, http.StatusCreated, "Project created", p)
}

func (h *ProjectsHandler) Update(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		failValidation(c, err)
		return
	}

	existing, err := h.projects.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, "Project")
		return
	}

	existing.Title = req.Title
	existing.Slug = slug.Make(req.Title)
	existing.Description = req.Description
	existing.LongDescription = req.LongDescription
	existing.Technologies = req.Technologies
	existing.GithubURL = req.GithubURL
	existing.LiveURL = req.LiveURL
	existing.ImageURL = req.ImageURL
	existing.StartDate = req.StartDate
	existing.EndDate = req.EndDate
	existing.Featured = req.Featured
	existing.Order = req.Order
	if req.Status != "" {
		existing.Status = req.Status
	}

	if err := h.projects.Update(c.Request.Context(), existing); err != nil {
		failErr(c, err, "Project")
		return
	}
	okMessage(c, http.StatusOK, "Project updated", existing)
}

func (h *ProjectsHandler) Delete(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err, "Project")
		return
	}
	okMessage(c, http.StatusOK, "Project deleted", nil)
}

func projectFromRequest(req *ProjectRequest) *models.Project {
	status := req.Status
	if status == "" {
		status = models.ProjectStatusPlanning
	}
	return &models.Project{
		Title:           req.Title,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Technologies:    req.Technologies,
		GithubURL:       req.GithubURL,
		LiveURL:         req.LiveURL,
		ImageURL:        req.ImageURL,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Status:          status,
		Featured:        req.Featured,
		Order:           req.Order,
	}
}
