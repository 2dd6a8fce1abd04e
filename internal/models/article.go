package models

import (
	"strings"
	"time"
)

// Article represents one piece of published or draft content
type Article struct {
	ID           string     `json:"id" db:"id"`
	Slug         string     `json:"slug" db:"slug"`
	Title        string     `json:"title" db:"title"`
	Category     string     `json:"category" db:"category"`
	Excerpt      string     `json:"excerpt,omitempty" db:"excerpt"`
	Content      string     `json:"content" db:"content"`
	Image        string     `json:"image,omitempty" db:"image"`
	Author       string     `json:"author,omitempty" db:"author"`
	Status       string     `json:"status" db:"status"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty" db:"scheduled_for"`
	Views        int64      `json:"views" db:"views"`
	Likes        int64      `json:"likes" db:"likes"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// Article statuses. An empty status is treated as published for records
// written before the status field existed.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
)

// ValidStatuses defines allowed article statuses
var ValidStatuses = map[string]bool{
	StatusPublished: true,
	StatusDraft:     true,
	StatusScheduled: true,
}

// Categories is the fixed set of article categories
var Categories = []string{"Politics", "Analysis", "Commentary", "Review", "News"}

// DefaultCategory is used when a record carries an unrecognized category
const DefaultCategory = "News"

// DefaultAuthor is the publisher byline used when an article has no author
const DefaultAuthor = "Avalanche Media"

// IsPublic reports whether the article is eligible for public listings.
// Legacy records may carry an empty status or the spelling "publish".
func (a *Article) IsPublic() bool {
	switch strings.ToLower(strings.TrimSpace(a.Status)) {
	case "", StatusPublished, "publish":
		return true
	}
	return false
}

// DisplayCategory returns the category with the legacy fallback applied
func (a *Article) DisplayCategory() string {
	for _, c := range Categories {
		if a.Category == c {
			return c
		}
	}
	return DefaultCategory
}

// DisplayAuthor returns the author with the publisher fallback applied
func (a *Article) DisplayAuthor() string {
	if strings.TrimSpace(a.Author) == "" {
		return DefaultAuthor
	}
	return a.Author
}
