package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avalanche-blog/internal/render"
	"github.com/avalanche-blog/internal/service"
	"github.com/avalanche-blog/internal/tracker"
	"github.com/avalanche-blog/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles the public article endpoints
type ArticleHandler struct {
	services *service.Services
	renderer *render.Renderer
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, renderer *render.Renderer, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		renderer: renderer,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// ListFeed handles GET /v1/articles
// Returns one page of the public feed as JSON, or as the rendered HTML
// card grid with format=html
func (h *ArticleHandler) ListFeed(c *gin.Context) {
	feed, ok := h.loadFeed(c)
	if !ok {
		return
	}
	if c.Query("format") == "html" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(h.renderer.RenderGrid(feed.Articles)))
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *ArticleHandler) loadFeed(c *gin.Context) (*service.Feed, bool) {
	page := 1
	if p := c.Query("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
			return nil, false
		}
		page = parsed
	}

	feed, err := h.services.Article.Feed(c.Request.Context(), c.Query("category"), page)
	if err != nil {
		if errors.Is(err, service.ErrPageOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page out of range"})
			return nil, false
		}
		h.log.Error().Err(err).Msg("Failed to build feed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return nil, false
	}
	return feed, true
}

// GetBySlug handles GET /v1/articles/:slug
// Returns the article record plus its rendered body
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	article, err := h.services.Article.GetBySlug(c.Request.Context(), c.Param("slug"), true)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		h.log.Error().Err(err).Str("slug", c.Param("slug")).Msg("Failed to load article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	html, err := h.renderer.RenderArticle(article)
	if err != nil {
		h.log.Error().Err(err).Str("slug", article.Slug).Msg("Failed to render article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"article": article,
		"html":    html,
	})
}

// Trending handles GET /v1/trending
// format=html returns the rendered sidebar fragment
func (h *ArticleHandler) Trending(c *gin.Context) {
	entries, err := h.services.Article.Trending(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load trending articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if c.Query("format") == "html" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(h.renderer.RenderTrending(entries)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"trending": entries})
}

// Popular handles GET /v1/popular
// format=html returns the rendered sidebar fragment
func (h *ArticleHandler) Popular(c *gin.Context) {
	articles, err := h.services.Article.Popular(c.Request.Context(), render.PopularCount)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load popular articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if c.Query("format") == "html" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(h.renderer.RenderPopular(articles)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"popular": articles})
}

// RegisterView handles POST /v1/articles/:slug/views
// Counts at most one view per device per article per calendar day
func (h *ArticleHandler) RegisterView(c *gin.Context) {
	ctx := c.Request.Context()
	article, err := h.services.Article.GetBySlug(ctx, c.Param("slug"), true)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	device := h.services.Devices.Device(deviceID(c))
	counted, err := h.services.Tracker.RegisterView(ctx, device, article.ID)
	if err != nil {
		h.log.Error().Err(err).Str("article_id", article.ID).Msg("Failed to register view")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	outcome := "duplicate"
	if counted {
		outcome = "counted"
	}
	metrics.ViewsCounted.WithLabelValues(outcome).Inc()
	c.JSON(http.StatusOK, gin.H{"counted": counted})
}

// LikeArticle handles POST /v1/articles/:slug/likes
// One like per device; a repeat is reported, not counted
func (h *ArticleHandler) LikeArticle(c *gin.Context) {
	ctx := c.Request.Context()
	article, err := h.services.Article.GetBySlug(ctx, c.Param("slug"), true)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	device := h.services.Devices.Device(deviceID(c))
	if err := h.services.Tracker.LikeArticle(ctx, device, article.ID); err != nil {
		if errors.Is(err, tracker.ErrAlreadyCounted) {
			c.JSON(http.StatusOK, gin.H{"liked": false})
			return
		}
		h.log.Error().Err(err).Str("article_id", article.ID).Msg("Failed to like article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": true})
}
