package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/url"

	"github.com/avalanche-blog/internal/models"
	"github.com/rs/zerolog"
)

// ErrMissingFields is returned when an article cannot be rendered as a
// card because slug or title is absent
var ErrMissingFields = errors.New("article is missing slug or title")

const featuredExcerptLength = 200
const cardExcerptLength = 120
const popularTitleLength = 60

// Renderer turns article records into HTML fragments. It is constructed
// with its dependencies instead of reaching for shared globals.
type Renderer struct {
	baseURL string
	log     zerolog.Logger
}

// NewRenderer creates a Renderer. baseURL is the public site URL used for
// article links and share targets.
func NewRenderer(baseURL string, log zerolog.Logger) *Renderer {
	return &Renderer{
		baseURL: baseURL,
		log:     log.With().Str("component", "renderer").Logger(),
	}
}

// CardView is the view-model for one article preview card
type CardView struct {
	Slug           string
	Title          string
	Category       string
	Excerpt        string
	Author         string
	Date           string
	ReadTime       string
	ImageURL       string
	PlaceholderURL string
	ArticleURL     template.URL
	Featured       bool
}

// NewCardView builds the card view-model for an article. Articles missing
// slug or title produce ErrMissingFields; callers skip them rather than
// aborting the batch.
func (r *Renderer) NewCardView(article *models.Article, featured bool) (CardView, error) {
	if article == nil || article.Slug == "" || article.Title == "" {
		return CardView{}, ErrMissingFields
	}

	excerptSource := article.Excerpt
	if excerptSource == "" {
		excerptSource = article.Content
	}
	if excerptSource == "" {
		excerptSource = "No description available"
	}
	length := cardExcerptLength
	if featured {
		length = featuredExcerptLength
	}

	return CardView{
		Slug:           article.Slug,
		Title:          article.Title,
		Category:       article.DisplayCategory(),
		Excerpt:        Truncate(excerptSource, length),
		Author:         article.DisplayAuthor(),
		Date:           FormatDate(article.CreatedAt),
		ReadTime:       ReadTime(article.Content),
		ImageURL:       SafeImageURL(article),
		PlaceholderURL: PlaceholderImage(article.Category),
		ArticleURL:     template.URL(r.articleURL(article.Slug)),
		Featured:       featured,
	}, nil
}

// RenderCard renders one preview card. A card that cannot be built renders
// as an empty fragment, logged, never an error to the caller.
func (r *Renderer) RenderCard(article *models.Article, featured bool) template.HTML {
	view, err := r.NewCardView(article, featured)
	if err != nil {
		r.log.Warn().Err(err).Msg("Skipping unrenderable article card")
		return ""
	}
	return execute("card", view)
}

// RenderGrid renders a collection of preview cards, the first one
// featured. Entries are rendered independently: one failure never aborts
// the rest. An empty or all-failed collection renders the empty state.
func (r *Renderer) RenderGrid(articles []models.Article) template.HTML {
	if len(articles) == 0 {
		return execute("grid_empty", nil)
	}

	var buf bytes.Buffer
	rendered := 0
	for i := range articles {
		card := r.RenderCard(&articles[i], i == 0)
		if card == "" {
			continue
		}
		buf.WriteString(string(card))
		rendered++
	}
	r.log.Debug().Int("rendered", rendered).Int("total", len(articles)).Msg("Rendered article grid")

	if rendered == 0 {
		return execute("grid_failed", nil)
	}
	return template.HTML(buf.String())
}

// ArticlePage is the view-model for the full-article rendering
type ArticlePage struct {
	CardView
	ID          string
	Body        template.HTML
	Views       int64
	Likes       int64
	WhatsAppURL template.URL
	TwitterURL  template.URL
	FacebookURL template.URL
}

// NewArticlePage builds the full-article view-model, invoking the
// markdown renderer on the content. Missing content degrades to an empty
// body.
func (r *Renderer) NewArticlePage(article *models.Article) (ArticlePage, error) {
	view, err := r.NewCardView(article, true)
	if err != nil {
		return ArticlePage{}, err
	}

	pageURL := url.QueryEscape(r.articleURL(article.Slug))
	title := url.QueryEscape(article.Title)

	return ArticlePage{
		CardView:    view,
		ID:          article.ID,
		Body:        Markdown(article.Content),
		Views:       article.Views,
		Likes:       article.Likes,
		WhatsAppURL: template.URL(fmt.Sprintf("https://wa.me/?text=%s%%20%s", title, pageURL)),
		TwitterURL:  template.URL(fmt.Sprintf("https://twitter.com/intent/tweet?url=%s&text=%s", pageURL, title)),
		FacebookURL: template.URL(fmt.Sprintf("https://www.facebook.com/sharer/sharer.php?u=%s", pageURL)),
	}, nil
}

// RenderArticle renders the full article fragment
func (r *Renderer) RenderArticle(article *models.Article) (template.HTML, error) {
	page, err := r.NewArticlePage(article)
	if err != nil {
		return "", err
	}
	return execute("article", page), nil
}

// PopularEntry is the view-model for one popular-posts widget row
type PopularEntry struct {
	Title          string
	Date           string
	ImageURL       string
	PlaceholderURL string
	ArticleURL     template.URL
}

// RenderPopular renders the popular-posts widget from a pre-ranked list
func (r *Renderer) RenderPopular(articles []models.Article) template.HTML {
	if len(articles) == 0 {
		return execute("popular_empty", nil)
	}
	entries := make([]PopularEntry, 0, len(articles))
	for i := range articles {
		a := &articles[i]
		entries = append(entries, PopularEntry{
			Title:          Truncate(a.Title, popularTitleLength),
			Date:           FormatDate(a.CreatedAt),
			ImageURL:       SafeImageURL(a),
			PlaceholderURL: PlaceholderImage(a.Category),
			ArticleURL:     template.URL(r.articleURL(a.Slug)),
		})
	}
	return execute("popular", entries)
}

// TrendingView is the view-model for one trending list row
type TrendingView struct {
	Title      string
	Badge      string
	Date       string
	ArticleURL template.URL
}

// RenderTrending renders the trending list fragment
func (r *Renderer) RenderTrending(entries []TrendingEntry) template.HTML {
	views := make([]TrendingView, 0, len(entries))
	for _, e := range entries {
		views = append(views, TrendingView{
			Title:      e.Article.Title,
			Badge:      e.Badge,
			Date:       FormatDate(e.Article.CreatedAt),
			ArticleURL: template.URL(r.articleURL(e.Article.Slug)),
		})
	}
	return execute("trending", views)
}

func (r *Renderer) articleURL(slug string) string {
	return r.baseURL + "/article?slug=" + slug
}

func execute(name string, data interface{}) template.HTML {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return ""
	}
	return template.HTML(buf.String())
}

var fragments = template.Must(template.New("fragments").Parse(`
{{define "card"}}<article class="{{if .Featured}}article-featured{{else}}article-card{{end}}">
  <div class="article-image">
    <img src="{{.ImageURL}}" alt="{{.Title}}" loading="lazy" onerror="this.onerror=null; this.src='{{.PlaceholderURL}}'">
    <span class="article-category">{{.Category}}</span>
  </div>
  <div class="article-content">
    <div class="article-meta">
      <span class="article-date">{{.Date}}</span>
      <span class="article-read-time">{{.ReadTime}}</span>
    </div>
    <h3>{{.Title}}</h3>
    <p class="article-excerpt">{{.Excerpt}}</p>
    <div class="article-footer">
      <span class="author-name">{{.Author}}</span>
      <a href="{{.ArticleURL}}" class="read-more">{{if .Featured}}Read More{{else}}Read{{end}}</a>
    </div>
  </div>
</article>{{end}}

{{define "grid_empty"}}<div class="no-articles">
  <h3>No Articles Yet</h3>
  <p>Check back soon for the latest political commentary and analysis.</p>
</div>{{end}}

{{define "grid_failed"}}<div class="no-articles">
  <h3>Error Loading Articles</h3>
  <p>Please try again later.</p>
</div>{{end}}

{{define "article"}}<div class="article-header">
  <span class="article-category">{{.Category}}</span>
  <h1>{{.Title}}</h1>
  <div class="article-meta">
    <span class="article-date">{{.Date}}</span>
    <span class="article-read-time">{{.ReadTime}}</span>
    <span class="article-views">{{.Views}} views</span>
    <span class="article-author">{{.Author}}</span>
  </div>
</div>
<img src="{{.ImageURL}}" alt="{{.Title}}" class="article-hero-image" onerror="this.onerror=null; this.src='{{.PlaceholderURL}}'">
<div class="article-body">{{.Body}}</div>
<div class="article-actions">
  <div class="share-buttons">
    <a href="{{.WhatsAppURL}}" target="_blank" class="share-btn whatsapp">WhatsApp</a>
    <a href="{{.TwitterURL}}" target="_blank" class="share-btn twitter">Twitter</a>
    <a href="{{.FacebookURL}}" target="_blank" class="share-btn facebook">Facebook</a>
  </div>
  <button class="like-btn" data-article-id="{{.ID}}"><span id="like-count">{{.Likes}}</span> Likes</button>
</div>
<div id="comments" class="comments-section" data-article-id="{{.ID}}"></div>{{end}}

{{define "popular"}}{{range .}}<a href="{{.ArticleURL}}" class="popular-post">
  <div class="popular-post-image"><img src="{{.ImageURL}}" alt="{{.Title}}" loading="lazy" onerror="this.onerror=null; this.src='{{.PlaceholderURL}}'"></div>
  <div class="popular-post-content">
    <h4>{{.Title}}</h4>
    <span class="popular-post-date">{{.Date}}</span>
  </div>
</a>{{end}}{{end}}

{{define "popular_empty"}}<p class="no-popular">No articles yet.</p>{{end}}

{{define "trending"}}{{range .}}<a href="{{.ArticleURL}}" class="trending-item">
  <span class="trending-badge">{{.Badge}}</span>
  <h4>{{.Title}}</h4>
  <span class="trending-date">{{.Date}}</span>
</a>{{end}}{{end}}
`))
