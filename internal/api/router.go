package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avalanche-blog/internal/config"
	"github.com/avalanche-blog/internal/render"
	"github.com/avalanche-blog/internal/service"
	"github.com/avalanche-blog/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, renderer *render.Renderer, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware())
	router.Use(corsMiddleware())

	// Handlers
	articleHandler := NewArticleHandler(services, renderer, log)
	commentHandler := NewCommentHandler(services, log)
	subscriberHandler := NewSubscriberHandler(services, log)
	adminHandler := NewAdminHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	v1 := router.Group("/v1")
	{
		articles := v1.Group("/articles")
		{
			articles.GET("", articleHandler.ListFeed)
			articles.GET("/:slug", articleHandler.GetBySlug)
			articles.POST("/:slug/views", articleHandler.RegisterView)
			articles.POST("/:slug/likes", articleHandler.LikeArticle)
			articles.GET("/:slug/comments", commentHandler.ListComments)
			articles.POST("/:slug/comments", commentHandler.CreateComment)
		}

		v1.GET("/trending", articleHandler.Trending)
		v1.GET("/popular", articleHandler.Popular)

		comments := v1.Group("/comments")
		{
			comments.PUT("/:id", commentHandler.UpdateComment)
			comments.POST("/:id/likes", commentHandler.LikeComment)
		}

		subscribers := v1.Group("/subscribers")
		{
			subscribers.POST("", subscriberHandler.Subscribe)
			subscribers.DELETE("", subscriberHandler.Unsubscribe)
		}

		// Admin endpoints behind the shared token
		admin := v1.Group("/admin")
		admin.Use(adminAuthMiddleware(cfg.Admin.Token))
		{
			admin.GET("/articles", adminHandler.ListArticles)
			admin.POST("/articles", adminHandler.CreateArticle)
			admin.GET("/articles/:id", adminHandler.GetArticle)
			admin.PUT("/articles/:id", adminHandler.UpdateArticle)
			admin.DELETE("/articles/:id", adminHandler.DeleteArticle)
			admin.DELETE("/comments/:id", adminHandler.DeleteComment)
			admin.GET("/subscribers", adminHandler.ListSubscribers)
			admin.GET("/stats", adminHandler.GetStats)
			admin.GET("/settings/:key", adminHandler.GetSetting)
			admin.PUT("/settings/:key", adminHandler.PutSetting)
			admin.POST("/device", adminHandler.MarkDevice)
			admin.POST("/session", adminHandler.SetSession)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "avalanche-blog",
	})
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// metricsMiddleware records per-route request counts and latencies.
// FullPath keeps the label cardinality bounded.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Device-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// adminAuthMiddleware checks the shared admin token on the Authorization
// header ("Bearer <token>")
func adminAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "Bearer "+token || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin token"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// deviceID identifies the caller's device for view and like
// de-duplication. The client generates it once and sends it on every
// counting request; the client IP is a fallback for callers without one.
func deviceID(c *gin.Context) string {
	if id := c.GetHeader("X-Device-ID"); id != "" {
		return id
	}
	return c.ClientIP()
}
