package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/piimask/internal/config"
	"github.com/allisson/piimask/internal/metrics"

	maskingHTTP "github.com/allisson/piimask/internal/masking/http"
	maskingUseCase "github.com/allisson/piimask/internal/masking/usecase"
)

// Server represents the API HTTP server.
type Server struct {
	cfg             *config.Config
	maskingHandler  *maskingHTTP.MaskingHandler
	maskingUseCase  maskingUseCase.MaskingUseCase
	metricsProvider *metrics.Provider
	router          *gin.Engine
	server          *http.Server
	logger          *slog.Logger
}

// NewServer creates the API server. The router is assembled on Start so the
// rate limiter cleanup goroutine is bound to the server lifetime.
func NewServer(
	cfg *config.Config,
	maskingHandler *maskingHTTP.MaskingHandler,
	useCase maskingUseCase.MaskingUseCase,
	metricsProvider *metrics.Provider,
	logger *slog.Logger,
) *Server {
	return &Server{
		cfg:             cfg,
		maskingHandler:  maskingHandler,
		maskingUseCase:  useCase,
		metricsProvider: metricsProvider,
		logger:          logger,
	}
}

// SetupRouter assembles the Gin router with all middleware and routes.
func (s *Server) SetupRouter(ctx context.Context) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(s.cfg.CORSEnabled, s.cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if s.cfg.RateLimitEnabled {
		router.Use(RateLimitMiddleware(ctx, s.cfg.RateLimitRequestsPerSec, s.cfg.RateLimitBurst, s.logger))
	}

	if s.metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(s.metricsProvider.MeterProvider(), s.cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.POST("/sanitize", s.maskingHandler.SanitizeHandler)
	v1.POST("/decode", s.maskingHandler.DecodeHandler)

	// Echo sits behind the body sanitizer and returns what it received,
	// demonstrating transparent request-body masking.
	v1.POST("/echo",
		maskingHTTP.BodySanitizerMiddleware(s.maskingUseCase, s.logger),
		s.echoHandler,
	)

	return router
}

// Start assembles the router and starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		s.router = s.SetupRouter(ctx)
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.ServerHost, s.cfg.ServerPort),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the engine is assembled and able to
// serve. There is no external storage; readiness is the engine itself.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.maskingUseCase == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"engine": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"engine": "ok"},
	})
}

// echoHandler returns the request body as-is. Combined with the body
// sanitizer middleware the response shows the masked payload.
func (s *Server) echoHandler(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	if len(body) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
