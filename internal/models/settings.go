package models

import "time"

// SettingsKey is the _id of the singleton settings document.
const SettingsKey = "site"

// SocialLinks holds the social profile URLs shown on the public site.
type SocialLinks struct {
	Github   string `bson:"github,omitempty" json:"github,omitempty"`
	Linkedin string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Twitter  string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`
}

// SEODefaults holds default metadata applied to public pages.
type SEODefaults struct {
	MetaTitle       string `bson:"metaTitle,omitempty" json:"metaTitle,omitempty"`
	MetaDescription string `bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
	OGImage         string `bson:"ogImage,omitempty" json:"ogImage,omitempty"`
}

// FeatureToggles enables or disables the public site sections.
type FeatureToggles struct {
	Blog         bool `bson:"blog" json:"blog"`
	Projects     bool `bson:"projects" json:"projects"`
	Testimonials bool `bson:"testimonials" json:"testimonials"`
	Newsletter   bool `bson:"newsletter" json:"newsletter"`
}

// Settings is the singleton site configuration document. It is created
// lazily with defaults on first read.
type Settings struct {
	ID              string         `bson:"_id" json:"-"`
	SiteName        string         `bson:"siteName" json:"siteName"`
	SiteDescription string         `bson:"siteDescription,omitempty" json:"siteDescription,omitempty"`
	SiteURL         string         `bson:"siteUrl,omitempty" json:"siteUrl,omitempty"`
	Social          SocialLinks    `bson:"social" json:"social"`
	SEO             SEODefaults    `bson:"seo" json:"seo"`
	Features        FeatureToggles `bson:"features" json:"features"`
	MaintenanceMode bool           `bson:"maintenanceMode" json:"maintenanceMode"`
	UpdatedAt       time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// DefaultSettings returns the settings document used on first read and reset.
func DefaultSettings() *Settings {
	return &Settings{
		ID:              SettingsKey,
		SiteName:        "Portfolio",
		SiteDescription: "Personal portfolio and blog",
		Features: FeatureToggles{
			Blog:         true,
			Projects:     true,
			Testimonials: true,
			Newsletter:   true,
		},
		UpdatedAt: time.Now().UTC(),
	}
}
