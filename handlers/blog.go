package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-api/internal/models"
	"portfolio-api/internal/slug"
	"portfolio-api/internal/store"
	"portfolio-api/internal/validate"
	"portfolio-api/pkg/logger"
)

type PostRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Content     string   `json:"content" validate:"required,min=10"`
	Excerpt     string   `json:"excerpt" validate:"max=500"`
	CoverImage  string   `json:"coverImage" validate:"omitempty,url"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category" validate:"max=100"`
	Status      string   `json:"status" validate:"omitempty,oneof=draft published archived"`
	Featured    bool     `json:"featured"`
}

// BlogHandler serves the public blog pages and the admin post CRUD.
type BlogHandler struct {
	posts store.PostStore
}

func NewBlogHandler(posts store.PostStore) *BlogHandler {
	return &BlogHandler{posts: posts}
}

func (h *BlogHandler) Register(public, admin *gin.RouterGroup) {
	b := public.Group("/blog")
	b.GET("", h.ListPublished)
	b.GET("/:slug", h.GetBySlug)

	a := admin.Group("/blog")
	a.GET("", h.List)
	a.POST("", h.Create)
	a.GET("/:id", h.Get)
	a.PUT("/:id", h.Update)
	a.DELETE("/:id", h.Delete)
}

// ListPublished returns published posts only, with category/tag/featured
// filters.
func (h *BlogHandler) ListPublished(c *gin.Context) {
	lp := parseListParams(c)
	filter := store.PostFilter{
		Status:   models.PostStatusPublished,
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Featured: parseBool(c, "featured"),
	}
	items, pg, err := h.posts.List(c.Request.Context(), lp, filter)
	if err != nil {
		failErr(c, err, "Post")
		return
	}
	okList(c, items, pg)
}

// GetBySlug serves a single published post and bumps its view counter in the
// background.
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	p, err := h.posts.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil || p.Status != models.PostStatusPublished {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}

	id := p.ID.Hex()
	go func() {
		ctx, cancel := contextWithTimeout(5 * time.Second)
		defer cancel()
		if err := h.posts.IncrementViews(ctx, id); err != nil {
			logger.Warnf("blog: failed to bump views for %s: %v", id, err)
		}
	}()

	ok(c, http.StatusOK, p)
}

func (h *BlogHandler) List(c *gin.Context) {
	lp := parseListParams(c)
	filter := store.PostFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Featured: parseBool(c, "featured"),
	}
	items, pg, err := h.posts.List(c.Request.Context(), lp, filter)
	if err != nil {
		failErr(c, err, "Post")
		return
	}
	okList(c, items, pg)
}

func (h *BlogHandler) Get(c *gin.Context) {
	p, err := h.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, "Post")
		return
	}
	ok(c, http.StatusOK, p)
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		failValidation(c, err)
		return
	}

	p := postFromRequest(&req)
	p.Slug = slug.Make(req.Title)
	if p.Status == models.PostStatusPublished {
		now := time.Now().UTC()
		p.PublishedAt = &now
	}

	if err := h.posts.Create(c.Request.Context(), p); err != nil {
		failErr(c, err, "Post")
		return
	}
	okMessage(c, http.StatusCreated, "Post created", p)
}

func (h *BlogHandler) Update(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		failValidation(c, err)
		return
	}

	existing, err := h.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, "Post")
		return
	}

	// slug follows the title
	existing.Title = req.Title
	existing.Slug = slug.Make(req.Title)
	existing.Content = req.Content
	existing.Excerpt = req.Excerpt
	existing.CoverImage = req.CoverImage
	existing.Tags = req.Tags
	existing.Category = req.Category
	existing.Featured = req.Featured
	if req.Status != "" {
		if req.Status == models.PostStatusPublished && existing.PublishedAt == nil {
			now := time.Now().UTC()
			existing.PublishedAt = &now
		}
		existing.Status = req.Status
	}

	if err := h.posts.Update(c.Request.Context(), existing); err != nil {
		failErr(c, err, "Post")
		return
	}
	okMessage(c, http.StatusOK, "Post updated", existing)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err, "Post")
		return
	}
	okMessage(c, http.StatusOK, "Post deleted", nil)
}

func postFromRequest(req *PostRequest) *models.Post {
	status := req.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	return &models.Post{
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
		Category:   req.Category,
		Status:     status,
		Featured:   req.Featured,
	}
}
