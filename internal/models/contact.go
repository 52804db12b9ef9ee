package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact statuses
const (
	ContactStatusNew      = "new"
	ContactStatusRead     = "read"
	ContactStatusReplied  = "replied"
	ContactStatusArchived = "archived"
)

// Contact priorities (independent of status)
const (
	ContactPriorityLow    = "low"
	ContactPriorityMedium = "medium"
	ContactPriorityHigh   = "high"
)

// Contact represents a message submitted via the contact form.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	Status    string             `bson:"status" json:"status"`
	Priority  string             `bson:"priority" json:"priority"`
	RepliedAt *time.Time         `bson:"repliedAt,omitempty" json:"repliedAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
