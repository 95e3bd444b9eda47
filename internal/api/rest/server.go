// Package rest exposes the marketplace over HTTP.
package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/artbid/auction-marketplace-backend/internal/infrastructure/config"
	"github.com/artbid/auction-marketplace-backend/internal/metrics"
)

// Pinger reports storage health for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP server with graceful shutdown.
type Server struct {
	httpServer *http.Server
	cfg        *config.ServerConfig
	logger     *zap.Logger
}

// NewServer assembles the middleware chain and routes.
func NewServer(
	cfg *config.ServerConfig,
	rateCfg *config.RateLimitConfig,
	handler *Handler,
	collector *metrics.Collector,
	registry *prometheus.Registry,
	db Pinger,
	logger *zap.Logger,
) *Server {
	mux := handler.Routes()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	ipLimiter := newIPRateLimiter(rateCfg.RequestsPerSecond, rateCfg.BurstSize)

	root := chain(mux,
		recoveryMiddleware(logger),
		requestIDMiddleware,
		loggingMiddleware(logger),
		metricsMiddleware(collector),
		tracingMiddleware,
		ipLimiter.middleware,
	)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      root,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Start blocks serving requests until the server is shut down.
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
