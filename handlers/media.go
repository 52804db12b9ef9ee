package handlers

import (
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio-api/internal/storage"
)

// allowedMediaTypes is the upload MIME allow-list.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"application/pdf": true,
}

// MediaHandler is the admin media library over blob storage.
type MediaHandler struct {
	storage  storage.Storage
	maxBytes int64
}

func NewMediaHandler(st storage.Storage, maxBytes int64) *MediaHandler {
	return &MediaHandler{storage: st, maxBytes: maxBytes}
}

func (h *MediaHandler) Register(admin *gin.RouterGroup) {
	m := admin.Group("/media")
	m.GET("", h.List)
	m.POST("", h.Upload)
	m.GET("/*key", h.Download)
	m.DELETE("/*key", h.Delete)
}

func (h *MediaHandler) List(c *gin.Context) {
	objs, err := h.storage.List(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		failErr(c, err, "Media")
		return
	}
	ok(c, http.StatusOK, objs)
}

// Upload accepts one multipart file. Size is capped and the content type must
// be on the allow-list; stored keys are uploads/<uuid><ext> so original names
// can never collide or traverse paths.
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, "file is required")
		return
	}
	if file.Size > h.maxBytes {
		fail(c, http.StatusUnprocessableEntity, "file exceeds the maximum upload size")
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !allowedMediaTypes[contentType] {
		fail(c, http.StatusUnprocessableEntity, "file type not allowed")
		return
	}

	src, err := file.Open()
	if err != nil {
		failErr(c, err, "Media")
		return
	}
	defer src.Close()

	key := "uploads/" + uuid.NewString() + strings.ToLower(path.Ext(file.Filename))
	if err := h.storage.Upload(c.Request.Context(), key, src, file.Size, contentType); err != nil {
		failErr(c, err, "Media")
		return
	}

	url, err := h.storage.PresignedURL(c.Request.Context(), key, time.Hour)
	if err != nil {
		url = ""
	}
	okMessage(c, http.StatusCreated, "File uploaded", gin.H{
		"key":         key,
		"name":        file.Filename,
		"size":        file.Size,
		"contentType": contentType,
		"url":         url,
	})
}

func (h *MediaHandler) Download(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	rc, meta, err := h.storage.Download(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fail(c, http.StatusNotFound, "Media not found")
			return
		}
		failErr(c, err, "Media")
		return
	}
	defer rc.Close()
	c.DataFromReader(http.StatusOK, meta.Size, meta.ContentType, rc, nil)
}

func (h *MediaHandler) Delete(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if err := h.storage.Delete(c.Request.Context(), key); err != nil {
		failErr(c, err, "Media")
		return
	}
	okMessage(c, http.StatusOK, "File deleted", nil)
}
