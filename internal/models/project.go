package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project statuses
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in-progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusArchived   = "archived"
)

// Project is a portfolio project entry.
type Project struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Slug            string             `bson:"slug" json:"slug"`
	Description     string             `bson:"description" json:"description"`
	LongDescription string             `bson:"longDescription,omitempty" json:"longDescription,omitempty"`
	Technologies    []string           `bson:"technologies,omitempty" json:"technologies,omitempty"`
	GithubURL       string             `bson:"githubUrl,omitempty" json:"githubUrl,omitempty"`
	LiveURL         string             `bson:"liveUrl,omitempty" json:"liveUrl,omitempty"`
	ImageURL        string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	StartDate       *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate         *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Status          string             `bson:"status" json:"status"`
	Featured        bool               `bson:"featured" json:"featured"`
	Order           int                `bson:"order" json:"order"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DurationDays returns the project duration in whole days, or 0 when either
// date is missing.
func (p *Project) DurationDays() int {
	if p.StartDate == nil || p.EndDate == nil {
		return 0
	}
	d := p.EndDate.Sub(*p.StartDate)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}
