package render

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/avalanche-blog/internal/models"
)

const (
	// WordsPerMinute is the reading speed used for read-time estimates
	WordsPerMinute = 200

	// DefaultTruncateLength is the excerpt length used when no explicit
	// length is given
	DefaultTruncateLength = 150

	placeholderURLFormat = "https://placehold.co/800x400/%s/FFFFFF?text=%s"
	defaultColor         = "E31B23"
)

var slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)

// categoryColors maps each category to its placeholder background color
var categoryColors = map[string]string{
	"Politics":   "E31B23",
	"Analysis":   "C9A227",
	"Commentary": "1E88E5",
	"Review":     "43A047",
	"News":       "8E24AA",
}

// Slugify derives a URL-safe slug from a title: lowercase, every maximal
// run of non-alphanumeric characters collapsed to a single hyphen, leading
// and trailing hyphens stripped. Total; an empty title yields "".
func Slugify(title string) string {
	slug := slugStripRe.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// FormatDate renders a timestamp as "January 2, 2006". A zero timestamp
// returns the literal "Invalid Date" sentinel instead of failing.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "Invalid Date"
	}
	return t.Format("January 2, 2006")
}

// ReadTime estimates reading time from whitespace-delimited word count at
// 200 words per minute, rounded up, never below one minute.
func ReadTime(text string) string {
	words := len(strings.Fields(text))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// Truncate returns text unchanged when it fits within maxLen runes;
// otherwise it cuts at maxLen, trims trailing whitespace and appends "...".
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	cut := strings.TrimRight(string(runes[:maxLen]), " \t\n\r")
	return cut + "..."
}

// PlaceholderImage returns a deterministic placeholder image URL for the
// given category. Unknown categories fall back to the default color; an
// empty category is labeled "Article".
func PlaceholderImage(category string) string {
	color, ok := categoryColors[category]
	if !ok {
		color = defaultColor
	}
	label := category
	if label == "" {
		label = "Article"
	}
	return fmt.Sprintf(placeholderURLFormat, color, url.QueryEscape(label))
}

// SafeImageURL returns the article's image when it is a non-empty URL and
// a category placeholder otherwise. Safe to call with a nil article.
func SafeImageURL(article *models.Article) string {
	if article == nil {
		return PlaceholderImage("Article")
	}
	if strings.TrimSpace(article.Image) != "" {
		return article.Image
	}
	if article.Category == "" {
		return PlaceholderImage("Article")
	}
	return PlaceholderImage(article.Category)
}
