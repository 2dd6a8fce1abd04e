package render

import (
	"sort"
	"time"

	"github.com/avalanche-blog/internal/models"
)

const (
	// PageSize is the fixed number of articles per grid page
	PageSize = 6

	// TrendingCount is the number of entries in the trending list
	TrendingCount = 4

	// PopularCount is the default number of entries in the popular list
	PopularCount = 5

	// MaxPageButtons is the number of numbered buttons the page controls
	// show, centered on the current page
	MaxPageButtons = 5
)

// Recency badges assigned to trending entries relative to evaluation time
const (
	BadgeJustIn   = "just in"
	BadgeNew      = "new"
	BadgeTrending = "trending"
)

// TotalPages returns ceil(count/PageSize); zero articles is zero pages.
func TotalPages(count int) int {
	return (count + PageSize - 1) / PageSize
}

// Paginate returns the 1-based page slice [ (page-1)*size, page*size ).
// A page outside [1, TotalPages] is a no-op: the full input is not
// re-sliced and nil is returned so callers keep their current page.
func Paginate(articles []models.Article, page int) []models.Article {
	if page < 1 || page > TotalPages(len(articles)) {
		return nil
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(articles) {
		end = len(articles)
	}
	return articles[start:end]
}

// PageButton is one entry in the rendered page controls. Ellipsis buttons
// have Page 0 and are not clickable.
type PageButton struct {
	Page     int  `json:"page,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PageControls builds the numbered page buttons: at most MaxPageButtons
// numbers centered on the current page, with the first and last page
// always reachable and ellipsis markers for skipped ranges.
func PageControls(current, totalPages int) []PageButton {
	if totalPages <= 1 {
		return nil
	}

	start := current - MaxPageButtons/2
	if start < 1 {
		start = 1
	}
	end := start + MaxPageButtons - 1
	if end > totalPages {
		end = totalPages
		start = end - MaxPageButtons + 1
		if start < 1 {
			start = 1
		}
	}

	var buttons []PageButton
	if start > 1 {
		buttons = append(buttons, PageButton{Page: 1})
		if start > 2 {
			buttons = append(buttons, PageButton{Ellipsis: true})
		}
	}
	for p := start; p <= end; p++ {
		buttons = append(buttons, PageButton{Page: p, Current: p == current})
	}
	if end < totalPages {
		if end < totalPages-1 {
			buttons = append(buttons, PageButton{Ellipsis: true})
		}
		buttons = append(buttons, PageButton{Page: totalPages})
	}
	return buttons
}

// FilterPublic restricts the working set to publicly visible articles.
// Draft and scheduled records are excluded from every public surface.
func FilterPublic(articles []models.Article) []models.Article {
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if a.IsPublic() {
			out = append(out, a)
		}
	}
	return out
}

// FilterByCategory restricts to one category; "all" (or empty) keeps the
// full set. Non-published articles are excluded first.
func FilterByCategory(articles []models.Article, category string) []models.Article {
	published := FilterPublic(articles)
	if category == "" || category == "all" {
		return published
	}
	out := make([]models.Article, 0, len(published))
	for _, a := range published {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// TrendingEntry is one article in the trending list with its recency badge
type TrendingEntry struct {
	Article models.Article `json:"article"`
	Badge   string         `json:"badge"`
}

// Trending returns the newest published articles (top TrendingCount) with
// a recency badge computed against now, not stored.
func Trending(articles []models.Article, now time.Time) []TrendingEntry {
	published := FilterPublic(articles)
	sort.SliceStable(published, func(i, j int) bool {
		return published[i].CreatedAt.After(published[j].CreatedAt)
	})
	if len(published) > TrendingCount {
		published = published[:TrendingCount]
	}

	entries := make([]TrendingEntry, 0, len(published))
	for _, a := range published {
		entries = append(entries, TrendingEntry{Article: a, Badge: RecencyBadge(a.CreatedAt, now)})
	}
	return entries
}

// RecencyBadge maps article age to a badge: under 24h "just in", under
// 72h "new", otherwise "trending".
func RecencyBadge(createdAt, now time.Time) string {
	age := now.Sub(createdAt)
	switch {
	case age < 24*time.Hour:
		return BadgeJustIn
	case age < 72*time.Hour:
		return BadgeNew
	default:
		return BadgeTrending
	}
}

// Popular returns the most-viewed published articles. The sort is stable:
// ties keep their original relative order. A limit below one falls back
// to PopularCount.
func Popular(articles []models.Article, limit int) []models.Article {
	if limit < 1 {
		limit = PopularCount
	}
	published := FilterPublic(articles)
	sort.SliceStable(published, func(i, j int) bool {
		return published[i].Views > published[j].Views
	})
	if len(published) > limit {
		published = published[:limit]
	}
	return published
}
