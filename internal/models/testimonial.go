package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Testimonial statuses
const (
	TestimonialStatusPending  = "pending"
	TestimonialStatusApproved = "approved"
	TestimonialStatusRejected = "rejected"
)

// Testimonial is a client quote. Public submissions always land as pending.
type Testimonial struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name      string              `bson:"name" json:"name"`
	Email     string              `bson:"email" json:"email"`
	Role      string              `bson:"role,omitempty" json:"role,omitempty"`
	Company   string              `bson:"company,omitempty" json:"company,omitempty"`
	Content   string              `bson:"content" json:"content"`
	Rating    int                 `bson:"rating" json:"rating"`
	AvatarURL string              `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	ProjectID *primitive.ObjectID `bson:"projectId,omitempty" json:"projectId,omitempty"`
	Status    string              `bson:"status" json:"status"`
	Featured  bool                `bson:"featured" json:"featured"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}
