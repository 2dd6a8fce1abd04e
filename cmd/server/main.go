package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/avalanche-blog/internal/api"
	"github.com/avalanche-blog/internal/config"
	"github.com/avalanche-blog/internal/database"
	"github.com/avalanche-blog/internal/notify"
	"github.com/avalanche-blog/internal/render"
	"github.com/avalanche-blog/internal/repository"
	"github.com/avalanche-blog/internal/service"
	"github.com/avalanche-blog/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting Avalanche blog API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Renderer for HTML fragments and notification bodies
	renderer := render.NewRenderer(cfg.Site.BaseURL, log)

	// Notification dispatcher. The server still runs without NATS, it
	// just stops sending new-article notifications.
	var dispatcher notify.Dispatcher
	if nd, err := notify.NewNATSDispatcher(&cfg.NATS, log); err != nil {
		log.Warn().Err(err).Msg("NATS unavailable, new-article notifications disabled")
	} else {
		dispatcher = nd
		defer nd.Close()
	}

	// Initialize services
	services := service.NewServices(repos, renderer, dispatcher, cfg, log)

	// Start scheduled-publish loop
	go services.Article.StartScheduler(context.Background())
	log.Info().Msg("Publish scheduler started")

	// Initialize router
	router := api.NewRouter(services, renderer, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop scheduled-publish loop
	services.Article.StopScheduler()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
