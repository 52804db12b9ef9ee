package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// Post is a blog entry. The slug is derived from the title on creation and
// whenever the title changes.
type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Content     string             `bson:"content" json:"content"`
	Excerpt     string             `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	CoverImage  string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Featured    bool               `bson:"featured" json:"featured"`
	Views       int64              `bson:"views" json:"views"`
	Likes       int64              `bson:"likes" json:"likes"`
	PublishedAt *time.Time         `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
