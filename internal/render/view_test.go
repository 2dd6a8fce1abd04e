package render

import (
	"strings"
	"testing"
	"time"

	"github.com/avalanche-blog/internal/models"
	"github.com/rs/zerolog"
)

func testRenderer() *Renderer {
	return NewRenderer("https://example.com", zerolog.Nop())
}

func publishedArticle() *models.Article {
	return &models.Article{
		ID:        "11111111-1111-1111-1111-111111111111",
		Slug:      "test-article",
		Title:     "Test Article",
		Category:  "Politics",
		Excerpt:   "A short excerpt",
		Content:   "Some **content** here.",
		Status:    models.StatusPublished,
		Views:     42,
		CreatedAt: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewCardView(t *testing.T) {
	r := testRenderer()

	view, err := r.NewCardView(publishedArticle(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Excerpt != "A short excerpt" {
		t.Errorf("excerpt = %q", view.Excerpt)
	}
	if view.Date != "April 1, 2025" {
		t.Errorf("date = %q", view.Date)
	}
	if view.Author != models.DefaultAuthor {
		t.Errorf("author = %q, want default", view.Author)
	}
	if !strings.Contains(string(view.ArticleURL), "slug=test-article") {
		t.Errorf("article URL = %q", view.ArticleURL)
	}

	// Missing required fields.
	for _, broken := range []*models.Article{
		nil,
		{Slug: "", Title: "Has Title"},
		{Slug: "has-slug", Title: ""},
	} {
		if _, err := r.NewCardView(broken, false); err != ErrMissingFields {
			t.Errorf("NewCardView(%+v) err = %v, want ErrMissingFields", broken, err)
		}
	}
}

func TestNewCardViewExcerptFallback(t *testing.T) {
	r := testRenderer()

	a := publishedArticle()
	a.Excerpt = ""
	view, _ := r.NewCardView(a, false)
	if !strings.Contains(view.Excerpt, "content") {
		t.Errorf("excerpt should fall back to content, got %q", view.Excerpt)
	}

	a.Content = ""
	view, _ = r.NewCardView(a, false)
	if view.Excerpt != "No description available" {
		t.Errorf("excerpt fallback = %q", view.Excerpt)
	}
}

func TestRenderCardDegrades(t *testing.T) {
	r := testRenderer()
	if got := r.RenderCard(&models.Article{Title: "No Slug"}, false); got != "" {
		t.Errorf("unrenderable card = %q, want empty", got)
	}
}

func TestRenderGrid(t *testing.T) {
	r := testRenderer()

	if got := string(r.RenderGrid(nil)); !strings.Contains(got, "No Articles Yet") {
		t.Errorf("empty grid = %q, want empty state", got)
	}

	broken := []models.Article{{Title: "No Slug"}}
	if got := string(r.RenderGrid(broken)); !strings.Contains(got, "Error Loading Articles") {
		t.Errorf("all-failed grid = %q, want failure state", got)
	}

	a := *publishedArticle()
	b := a
	b.Slug, b.Title = "second", "Second"
	got := string(r.RenderGrid([]models.Article{a, b, {Title: "No Slug"}}))
	if !strings.Contains(got, "article-featured") {
		t.Error("first card should be featured")
	}
	if !strings.Contains(got, "article-card") {
		t.Error("second card should be a regular card")
	}
	if strings.Count(got, "<article") != 2 {
		t.Errorf("grid rendered %d cards, want 2", strings.Count(got, "<article"))
	}
}

func TestRenderArticle(t *testing.T) {
	r := testRenderer()

	html, err := r.RenderArticle(publishedArticle())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(html)
	if !strings.Contains(s, "<strong>content</strong>") {
		t.Error("markdown body not rendered")
	}
	if !strings.Contains(s, "42 views") {
		t.Error("view count missing")
	}
	if !strings.Contains(s, "wa.me") || !strings.Contains(s, "twitter.com/intent") || !strings.Contains(s, "facebook.com/sharer") {
		t.Error("share links missing")
	}

	if _, err := r.RenderArticle(&models.Article{Title: "No Slug"}); err != ErrMissingFields {
		t.Errorf("err = %v, want ErrMissingFields", err)
	}
}

func TestRenderPopular(t *testing.T) {
	r := testRenderer()

	if got := string(r.RenderPopular(nil)); !strings.Contains(got, "No articles yet.") {
		t.Errorf("empty popular = %q", got)
	}

	long := *publishedArticle()
	long.Title = strings.Repeat("Very Long Title ", 10)
	got := string(r.RenderPopular([]models.Article{long}))
	if !strings.Contains(got, "...") {
		t.Error("long popular title should be truncated")
	}
}

func TestRenderTrending(t *testing.T) {
	r := testRenderer()
	entries := []TrendingEntry{
		{Article: *publishedArticle(), Badge: BadgeJustIn},
	}
	got := string(r.RenderTrending(entries))
	if !strings.Contains(got, "just in") {
		t.Errorf("trending fragment = %q, missing badge", got)
	}
	if !strings.Contains(got, "Test Article") {
		t.Error("trending fragment missing title")
	}
}
