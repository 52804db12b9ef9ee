package models

import "time"

// MediaObject describes a stored blob in the media library.
type MediaObject struct {
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"contentType,omitempty"`
	URL          string    `json:"url,omitempty"`
	LastModified time.Time `json:"lastModified"`
}
