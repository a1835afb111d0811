package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oggyb/match-service/internal/config"
)

// Pinger is a dependency the health endpoint checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// NewRouter serves GET|HEAD /health and the uploaded media under /uploads.
func NewRouter(cfg *config.Config, log *slog.Logger, checks map[string]Pinger) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		for name, p := range checks {
			if err := p.Ping(ctx); err != nil {
				log.Warn("health check failed", "dependency", name, "err", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":     "unavailable",
					"dependency": name,
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	if cfg.Media.Dir != "" {
		router.Static("/uploads", cfg.Media.Dir)
	}

	return router
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// HTTPServer runs the gin router.
type HTTPServer struct {
	httpServer *http.Server
	log        *slog.Logger
}

func NewHTTPServer(cfg *config.Config, router *gin.Engine, log *slog.Logger) *HTTPServer {
	return &HTTPServer{
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			MaxHeaderBytes:    1 << 20, // 1 MB
		},
		log: log,
	}
}

// Start blocks until the server stops. A clean shutdown returns nil.
func (s *HTTPServer) Start() error {
	s.log.Info("starting HTTP server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
