// Package server exposes the recommendation service over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Skufu/protocolrx/internal/recommend"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Options tunes middleware. Zero values fall back to defaults.
type Options struct {
	MaxBodyBytes int64
	AllowOrigins []string
	Logger       *slog.Logger
}

type handler struct {
	svc    *recommend.Service
	logger *slog.Logger
}

// NewRouter builds the gin engine. db may be nil when history is disabled.
func NewRouter(svc *recommend.Service, db HealthChecker, opts Options) *gin.Engine {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if len(opts.AllowOrigins) == 0 {
		opts.AllowOrigins = []string{"*"}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	router := gin.New()
	router.Use(
		gin.Logger(),
		gin.Recovery(),
		limitBodySize(opts.MaxBodyBytes),
		cors.New(cors.Config{
			AllowOrigins: opts.AllowOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization", userIDHeader},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", readiness(db))

	h := &handler{svc: svc, logger: opts.Logger.With("component", "http")}
	api := router.Group("/api/v1")
	api.POST("/risk/assess", h.assess)
	api.POST("/protocols/generate", h.generate)
	api.GET("/protocols", h.catalog)
	api.GET("/recommendations", h.listRecommendations)
	api.GET("/recommendations/:id", h.getRecommendation)

	return router
}

func readiness(db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"db":     fmt.Sprintf("unhealthy: %v", err),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
	}
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
