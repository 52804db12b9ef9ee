package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event types recorded by the analytics endpoint.
const (
	EventTypePageView         = "page_view"
	EventTypeClick            = "click"
	EventTypeDownload         = "download"
	EventTypeContactForm      = "contact_form"
	EventTypeNewsletterSignup = "newsletter_signup"
	EventTypeEmailSent        = "email_sent"
)

// Event is an append-only analytics record keyed by session id.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      string             `bson:"type" json:"type"`
	Path      string             `bson:"path,omitempty" json:"path,omitempty"`
	Referrer  string             `bson:"referrer,omitempty" json:"referrer,omitempty"`
	Device    string             `bson:"device,omitempty" json:"device,omitempty"`
	Browser   string             `bson:"browser,omitempty" json:"browser,omitempty"`
	OS        string             `bson:"os,omitempty" json:"os,omitempty"`
	Country   string             `bson:"country,omitempty" json:"country,omitempty"`
	SessionID string             `bson:"sessionId" json:"sessionId"`
	Metadata  map[string]string  `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
