package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/protocolrx/internal/config"
	"github.com/Skufu/protocolrx/internal/knowledge"
	"github.com/Skufu/protocolrx/internal/logging"
	"github.com/Skufu/protocolrx/internal/protocol"
	"github.com/Skufu/protocolrx/internal/recommend"
	"github.com/Skufu/protocolrx/internal/server"
	"github.com/Skufu/protocolrx/internal/store"
	"github.com/Skufu/protocolrx/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	logger := logging.New(cfg.LogLevel)
	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(flushCtx)
	}()

	kb, err := loadKnowledgeBase(cfg.KnowledgeBasePath)
	if err != nil {
		return err
	}
	logger.Info("knowledge base loaded",
		"protocols", len(kb.Protocols),
		"interactions", len(kb.Interactions),
		"override", cfg.KnowledgeBasePath != "",
	)

	var repo store.Repository
	var db server.HealthChecker
	if cfg.EnableDB {
		repo, err = store.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer repo.Close()
		db = repo
		logger.Info("recommendation history enabled", "driver", cfg.DBDriver)
	}

	svc := recommend.New(recommend.Deps{
		Engine:     protocol.NewEngine(kb),
		Repository: repo,
		Logger:     logger.With("component", "recommend"),
	})

	router := server.NewRouter(svc, db, server.Options{
		MaxBodyBytes: cfg.MaxBodyBytes,
		AllowOrigins: cfg.CORSAllowOrigins,
		Logger:       logger,
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info("server listening", "port", cfg.Port)
	return waitForShutdown(srv, errCh, logger)
}

// loadKnowledgeBase returns the curated tables unless an override file is set.
// Either way the tables must validate before the server starts.
func loadKnowledgeBase(path string) (*knowledge.Base, error) {
	if path != "" {
		kb, err := knowledge.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load knowledge base: %w", err)
		}
		return kb, nil
	}

	kb := knowledge.Default()
	if err := kb.Validate(); err != nil {
		return nil, fmt.Errorf("default knowledge base: %w", err)
	}
	return kb, nil
}

func waitForShutdown(srv *http.Server, errCh <-chan error, logger *slog.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-stop:
	}

	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
