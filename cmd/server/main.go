package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sujalbistaa/moodcanvas/internal/config"
	"github.com/sujalbistaa/moodcanvas/internal/db"
	routes "github.com/sujalbistaa/moodcanvas/internal/http"
	"github.com/sujalbistaa/moodcanvas/internal/logging"
	"github.com/sujalbistaa/moodcanvas/internal/responder"
	"github.com/sujalbistaa/moodcanvas/internal/ws"
)

func main() {
	// Load config first; .env is optional so production can use plain env vars.
	cfg, foundEnv, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !foundEnv {
		logger.Info("no .env file found, reading from environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Initialize the submission store
	st, closeStore, err := db.OpenStore(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("failed to initialize submission store", zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("closing submission store", zap.Error(err))
		}
	}()

	// 2. Initialize WebSocket Hub
	hub := ws.NewHub(logger.Named("ws"))
	go hub.Run(ctx)

	// 3. Initialize Gin Router
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	env := &routes.Env{
		Store:     st,
		Responder: responder.NewPlaceholder(),
		Hub:       hub,
		Log:       logger,
	}
	routes.SetupRoutes(ctx, router, env, routes.Options{
		CorsOrigin:     cfg.CorsOrigin,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	// 4. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		logger.Error("listen failed", zap.Error(err))
		stop()
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
