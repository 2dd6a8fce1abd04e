package api

import (
	"net/http"

	"github.com/avalanche-blog/internal/models"
	"github.com/avalanche-blog/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SubscriberHandler handles newsletter signups
type SubscriberHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSubscriberHandler creates a new SubscriberHandler
func NewSubscriberHandler(services *service.Services, log zerolog.Logger) *SubscriberHandler {
	return &SubscriberHandler{
		services: services,
		log:      log.With().Str("handler", "subscriber").Logger(),
	}
}

// Subscribe handles POST /v1/subscribers
// A repeat signup succeeds with subscribed=false
func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	added, err := h.services.Subscriber.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		respondServiceError(c, h.log, err, "Failed to subscribe")
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"subscribed": added})
}

// Unsubscribe handles DELETE /v1/subscribers
func (h *SubscriberHandler) Unsubscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	if err := h.services.Subscriber.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, h.log, err, "Failed to unsubscribe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribed": false})
}
