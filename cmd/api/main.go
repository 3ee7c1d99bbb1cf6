package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/pearlvault/backend/docs"
	"github.com/pearlvault/backend/internal/chain"
	"github.com/pearlvault/backend/internal/config"
	"github.com/pearlvault/backend/internal/feed"
	"github.com/pearlvault/backend/internal/handler"
	applog "github.com/pearlvault/backend/internal/logger"
	"github.com/pearlvault/backend/internal/pending"
	"github.com/pearlvault/backend/internal/repository"
	"github.com/pearlvault/backend/internal/scheduler"
	"github.com/pearlvault/backend/internal/service"
)

// @title PearlVault API
// @version 1.0
// @description Token lock-up vault API: lock funds under a term, track note maturity and rewards, redeem at due date.

// @contact.name API Support
// @contact.email support@pearlvault.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	// Load configuration
	cfg := config.Load()

	// Structured logger (JSON in production, text otherwise)
	logger := applog.Logger()

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Initialize repositories
	termRepo := repository.NewTermRepository(db)
	lockRepo := repository.NewLockRepository(db)

	// Market feed
	store := feed.NewStore(feed.DefaultSnapshot())
	var fallback feed.Source
	if cfg.FeedFallbackURL != "" {
		fallback = feed.NewFallbackSource(cfg.FeedFallbackURL, cfg.FeedTimeout)
	}
	refresher := feed.NewRefresher(store, feed.NewGraphQLSource(cfg.FeedGraphQLURL, cfg.FeedTimeout), fallback, logger)

	// Initialize services
	termService := service.NewTermService(termRepo)
	sessionService := service.NewSessionService(cfg.JWTSecret, cfg.SessionTTL)
	submitter := chain.NewRelayerClient(cfg.RelayerURL, cfg.ChainID, cfg.RelayerTimeout)
	ledger := pending.NewLedger()
	vaultService := service.NewVaultService(lockRepo, termService, store, submitter, ledger)

	if cfg.SeedCatalog {
		if err := termService.EnsureCatalog(context.Background(), false); err != nil {
			log.Fatalf("Failed to prepare lock-up catalog: %v", err)
		}
	}

	// Initialize handlers
	termHandler := handler.NewTermHandler(termService, store)
	vaultHandler := handler.NewVaultHandler(vaultService)
	sessionHandler := handler.NewSessionHandler(sessionService)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	// CORS - allow frontend origin from env or default
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Public routes
	r.Post("/api/session/connect", sessionHandler.Connect)
	r.Get("/api/terms", termHandler.List)
	r.Get("/api/metrics", termHandler.Metrics)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(handler.NewAuthMiddleware(sessionService))

		r.Get("/api/notes", vaultHandler.ListNotes)
		r.Get("/api/actions/pending", vaultHandler.PendingActions)
		r.Get("/api/terms/select", vaultHandler.Selection)
		r.Post("/api/terms/select", vaultHandler.SelectTerm)
		r.Post("/api/lockups", vaultHandler.CreateLockup)
		r.Post("/api/notes/{noteAddress}/{tokenID}/redeem", vaultHandler.Redeem)
		r.Post("/api/notes/{noteAddress}/{tokenID}/claim", vaultHandler.Claim)
	})

	// Initialize and start scheduler for feed refreshes
	var feedScheduler *scheduler.Scheduler
	if cfg.FeedEnabled {
		schedCfg := scheduler.Config{
			Schedule: cfg.FeedSchedule,
			Timeout:  cfg.FeedTimeout,
			Enabled:  cfg.FeedEnabled,
		}
		feedScheduler = scheduler.New(schedCfg, refresher, logger)
		if err := feedScheduler.Start(); err != nil {
			logger.Error("Failed to start feed scheduler", slog.String("error", err.Error()))
		} else {
			feedScheduler.RunNow()
			logger.Info("Feed scheduler started",
				slog.String("schedule", cfg.FeedSchedule),
				slog.Duration("timeout", cfg.FeedTimeout),
			)
		}
	}

	// Create server
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		// Stop scheduler first
		if feedScheduler != nil {
			ctx := feedScheduler.Stop()
			<-ctx.Done()
			logger.Info("Scheduler stopped")
		}

		// Shutdown HTTP server
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("Server shutdown error", slog.String("error", err.Error()))
		}
	}()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("Server failed: %v", err)
	}
}
