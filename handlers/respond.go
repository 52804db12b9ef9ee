package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/internal/store"
	"portfolio-api/pkg/logger"
)

// Response is the envelope every JSON endpoint returns.
type Response struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Data       interface{}       `json:"data,omitempty"`
	Pagination *store.Pagination `json:"pagination,omitempty"`
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

func okMessage(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func okList(c *gin.Context, data interface{}, pg store.Pagination) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Pagination: &pg})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

// failErr maps store errors onto the API error taxonomy: unknown ids are 404,
// duplicates are 409 and everything else is a logged 500.
func failErr(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		fail(c, http.StatusNotFound, resource+" not found")
	case errors.Is(err, store.ErrDuplicate):
		fail(c, http.StatusConflict, resource+" already exists")
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		fail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// failValidation reports the first validation problem as a 422.
func failValidation(c *gin.Context, err error) {
	fail(c, http.StatusUnprocessableEntity, err.Error())
}
