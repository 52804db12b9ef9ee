package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=5,max=200"`
	Message string `json:"message" validate:"required,min=20,max=5000"`
}

type projectForm struct {
	Title     string     `json:"title" validate:"required"`
	Status    string     `json:"status" validate:"omitempty,oneof=planning in-progress completed archived"`
	StartDate *time.Time `json:"startDate" validate:"omitempty"`
	EndDate   *time.Time `json:"endDate" validate:"omitempty,gtefield=StartDate"`
}

func TestMessageLengthBoundary(t *testing.T) {
	base := contactForm{Name: "Jo Li", Email: "jo@x.com", Subject: "Hello there"}

	// 19 characters: rejected with a message mentioning length
	short := base
	short.Message = strings.Repeat("a", 19)
	err := Struct(short)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message")
	assert.Contains(t, err.Error(), "at least 20 characters")

	// 20 characters: accepted
	ok := base
	ok.Message = strings.Repeat("a", 20)
	assert.NoError(t, Struct(ok))
}

func TestFirstViolationWins(t *testing.T) {
	err := Struct(contactForm{})
	require.Error(t, err)
	assert.Equal(t, "name is required", err.Error())
}

func TestEmailFormat(t *testing.T) {
	f := contactForm{Name: "Jo", Email: "not-an-email", Subject: "Hello there", Message: strings.Repeat("x", 25)}
	err := Struct(f)
	require.Error(t, err)
	assert.Equal(t, "email must be a valid email address", err.Error())
}

func TestEnumMembership(t *testing.T) {
	err := Struct(projectForm{Title: "t", Status: "done"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")

	assert.NoError(t, Struct(projectForm{Title: "t", Status: "in-progress"}))
}

func TestCrossFieldDateOrdering(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	endBefore := start.AddDate(0, 0, -5)
	endAfter := start.AddDate(0, 1, 0)

	err := Struct(projectForm{Title: "t", StartDate: &start, EndDate: &endBefore})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be before")

	assert.NoError(t, Struct(projectForm{Title: "t", StartDate: &start, EndDate: &endAfter}))
}
