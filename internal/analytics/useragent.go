package analytics

import (
	"github.com/mileusna/useragent"
)

// ParsedUA holds the browser, OS and device class extracted from a
// User-Agent header.
type ParsedUA struct {
	Browser string
	OS      string
	Device  string
}

// ParseUserAgent classifies a raw User-Agent string. Empty or unrecognized
// fields come back as "Unknown"; the device class is one of mobile, tablet,
// bot or desktop.
func ParseUserAgent(uaString string) ParsedUA {
	ua := useragent.Parse(uaString)

	result := ParsedUA{
		Browser: ua.Name,
		OS:      ua.OS,
	}
	if result.Browser == "" {
		result.Browser = "Unknown"
	}
	if result.OS == "" {
		result.OS = "Unknown"
	}

	switch {
	case ua.Mobile:
		result.Device = "mobile"
	case ua.Tablet:
		result.Device = "tablet"
	case ua.Bot:
		result.Device = "bot"
	default:
		result.Device = "desktop"
	}
	return result
}
