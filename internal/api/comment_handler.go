package api

import (
	"errors"
	"net/http"

	"github.com/avalanche-blog/internal/models"
	"github.com/avalanche-blog/internal/service"
	"github.com/avalanche-blog/internal/tracker"
	"github.com/avalanche-blog/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles the public comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListComments handles GET /v1/articles/:slug/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
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

	comments, err := h.services.Comment.ListByArticle(ctx, article.ID)
	if err != nil {
		h.log.Error().Err(err).Str("article_id", article.ID).Msg("Failed to list comments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments, "count": len(comments)})
}

// CreateComment handles POST /v1/articles/:slug/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
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

	var input models.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	comment, err := h.services.Comment.Create(ctx, article.ID, &input)
	if err != nil {
		respondServiceError(c, h.log, err, "Failed to create comment")
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// UpdateComment handles PUT /v1/comments/:id
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id := c.Param("id")
	if !validation.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	var input models.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	comment, err := h.services.Comment.Update(c.Request.Context(), id, &input)
	if err != nil {
		respondServiceError(c, h.log, err, "Failed to update comment")
		return
	}
	c.JSON(http.StatusOK, comment)
}

// LikeComment handles POST /v1/comments/:id/likes
func (h *CommentHandler) LikeComment(c *gin.Context) {
	id := c.Param("id")
	if !validation.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	device := h.services.Devices.Device(deviceID(c))
	if err := h.services.Tracker.LikeComment(c.Request.Context(), device, id); err != nil {
		if errors.Is(err, tracker.ErrAlreadyCounted) {
			c.JSON(http.StatusOK, gin.H{"liked": false})
			return
		}
		h.log.Error().Err(err).Str("comment_id", id).Msg("Failed to like comment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": true})
}

// respondServiceError maps service-layer errors onto HTTP responses
func respondServiceError(c *gin.Context, log zerolog.Logger, err error, msg string) {
	var invalid *service.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": invalid.Errors})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		log.Error().Err(err).Msg(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
