// Package entity defines the core domain types for the news aggregation
// service: the normalized article shape shared by all providers and the
// validation rules for request parameters.
package entity

import (
	"time"

	"github.com/araddon/dateparse"
)

// Article is the normalized article shape returned by the API. Every
// provider's raw response is mapped into this structure before merging.
//
// PublishedAt is kept as the string the provider supplied; it is only
// parsed for sort comparison, never rewritten.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Category    string `json:"category"`
}

// PublishedTime parses PublishedAt for sort comparison. Providers emit a
// mix of RFC 3339, RFC 1123 and date-only formats, so parsing is lenient.
// A missing or unparsable date yields the zero time, which orders such
// articles as oldest under descending sort.
func (a Article) PublishedTime() time.Time {
	if a.PublishedAt == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(a.PublishedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
