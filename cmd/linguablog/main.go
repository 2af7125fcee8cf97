// Package main is the entry point for the LinguaBlog API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"linguablog/internal/auth"
	"linguablog/internal/cache"
	"linguablog/internal/config"
	"linguablog/internal/database"
	"linguablog/internal/handlers"
	"linguablog/internal/i18n"
	"linguablog/internal/router"
	"linguablog/internal/store"
	"linguablog/internal/translator"
)

func main() {
	// Structured logger writing to stdout.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Optional .env file for local development.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"default_language", cfg.DefaultLanguage,
		"languages", cfg.Languages,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey for the public response cache.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	responseCache := cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)

	// Initialize data stores.
	stores := handlers.Stores{
		Users:      store.NewUserStore(db),
		Posts:      store.NewPostStore(db),
		Categories: store.NewCategoryStore(db),
		Tags:       store.NewTagStore(db),
		Comments:   store.NewCommentStore(db),
		Reactions:  store.NewReactionStore(db),
	}

	// Translation proxy. Works unconfigured; the endpoint then reports
	// the missing key to the caller.
	trClient := translator.NewClient(translator.Config{
		APIKey:  cfg.OpenAIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	if !trClient.Configured() {
		slog.Warn("translation proxy not configured, set OPENAI_API_KEY to enable it")
	}

	languages := i18n.NewLanguages(cfg.DefaultLanguage, cfg.Languages)
	authCfg := auth.Config{Secret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL}

	h := handlers.New(stores, responseCache, trClient, languages, authCfg)

	// Set up the Chi router with all middleware and routes.
	r := router.New(h, router.Options{
		AuthConfig:        authCfg,
		ReactionRateLimit: cfg.ReactionRateLimit,
	})

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate the translation proxy waiting on the upstream model.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
