package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/avalanche-blog/internal/models"
	"github.com/avalanche-blog/internal/service"
	"github.com/avalanche-blog/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminHandler handles the token-protected admin endpoints
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// ListArticles handles GET /v1/admin/articles
// Includes drafts and scheduled articles
func (h *AdminHandler) ListArticles(c *gin.Context) {
	articles, err := h.services.Article.List(c.Request.Context(), false)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles, "count": len(articles)})
}

// CreateArticle handles POST /v1/admin/articles
func (h *AdminHandler) CreateArticle(c *gin.Context) {
	var input models.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	article, err := h.services.Article.Create(c.Request.Context(), &input)
	if err != nil {
		respondServiceError(c, h.log, err, "Failed to create article")
		return
	}
	c.JSON(http.StatusCreated, article)
}

// GetArticle handles GET /v1/admin/articles/:id
func (h *AdminHandler) GetArticle(c *gin.Context) {
	id := c.Param("id")
	if !validation.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	article, err := h.services.Article.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err, "Failed to load article")
		return
	}
	c.JSON(http.StatusOK, article)
}

// UpdateArticle handles PUT /v1/admin/articles/:id
func (h *AdminHandler) UpdateArticle(c *gin.Context) {
	id := c.Param("id")
	if !validation.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	var input models.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	article, err := h.services.Article.Update(c.Request.Context(), id, &input)
	if err != nil {
		respondServiceError(c, h.log, err, "Failed to update article")
		return
	}
	c.JSON(http.StatusOK, article)
}

// DeleteArticle handles DELETE /v1/admin/articles/:id
func (h *AdminHandler) DeleteArticle(c *gin.Context) {
	id := c.Param("id")
	if !validation.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	if err := h.services.Article.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err, "Failed to delete article")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// DeleteComment handles DELETE /v1/admin/comments/:id
func (h *AdminHandler) DeleteComment(c *gin.Context) {
	id := c.Param("id")
	if !validation.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err, "Failed to delete comment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListSubscribers handles GET /v1/admin/subscribers
func (h *AdminHandler) ListSubscribers(c *gin.Context) {
	subs, err := h.services.Subscriber.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list subscribers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribers": subs, "count": len(subs)})
}

// GetStats handles GET /v1/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.services.Article.Stats(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetSetting handles GET /v1/admin/settings/:key
func (h *AdminHandler) GetSetting(c *gin.Context) {
	key := c.Param("key")
	if !models.ValidSettingKeys[key] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown setting key"})
		return
	}

	setting, err := h.services.Settings.Get(c.Request.Context(), key)
	if err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("Failed to load setting")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if setting == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "setting not found"})
		return
	}
	c.JSON(http.StatusOK, setting)
}

// PutSetting handles PUT /v1/admin/settings/:key
// The body is stored as-is; the front-end owns the document shape
func (h *AdminHandler) PutSetting(c *gin.Context) {
	key := c.Param("key")
	if !models.ValidSettingKeys[key] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown setting key"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	setting := &models.Setting{
		Key:       key,
		Value:     json.RawMessage(body),
		UpdatedAt: time.Now(),
	}
	if err := h.services.Settings.Put(c.Request.Context(), setting); err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("Failed to store setting")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, setting)
}

// MarkDevice handles POST /v1/admin/device
// Marks the calling device so its views and likes are never counted
func (h *AdminHandler) MarkDevice(c *gin.Context) {
	device := h.services.Devices.Device(deviceID(c))
	h.services.Tracker.MarkAdminDevice(device)
	c.JSON(http.StatusOK, gin.H{"admin_device": true})
}

// SetSession handles POST /v1/admin/session
// Toggles the logged-in flag for the calling device
func (h *AdminHandler) SetSession(c *gin.Context) {
	var req struct {
		LoggedIn bool `json:"logged_in"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	device := h.services.Devices.Device(deviceID(c))
	h.services.Tracker.SetAdminSession(device, req.LoggedIn)
	c.JSON(http.StatusOK, gin.H{"logged_in": req.LoggedIn})
}
