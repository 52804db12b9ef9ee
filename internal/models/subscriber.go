package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscriber statuses
const (
	SubscriberStatusActive       = "active"
	SubscriberStatusUnsubscribed = "unsubscribed"
	SubscriberStatusBounced      = "bounced"
)

// SubscriberPreferences selects which mailings a subscriber receives.
type SubscriberPreferences struct {
	BlogUpdates    bool `bson:"blogUpdates" json:"blogUpdates"`
	ProjectUpdates bool `bson:"projectUpdates" json:"projectUpdates"`
	Newsletter     bool `bson:"newsletter" json:"newsletter"`
}

// Subscriber is a newsletter signup. Resubscribing an unsubscribed email
// reactivates the existing document in place.
type Subscriber struct {
	ID             primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	Email          string                `bson:"email" json:"email"`
	Name           string                `bson:"name,omitempty" json:"name,omitempty"`
	Status         string                `bson:"status" json:"status"`
	Preferences    SubscriberPreferences `bson:"preferences" json:"preferences"`
	SubscribedAt   time.Time             `bson:"subscribedAt" json:"subscribedAt"`
	UnsubscribedAt *time.Time            `bson:"unsubscribedAt,omitempty" json:"unsubscribedAt,omitempty"`
	CreatedAt      time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time             `bson:"updatedAt" json:"updatedAt"`
}
