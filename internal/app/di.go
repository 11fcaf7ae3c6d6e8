// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/piimask/internal/config"
	"github.com/allisson/piimask/internal/http"
	"github.com/allisson/piimask/internal/kms"
	maskingDomain "github.com/allisson/piimask/internal/masking/domain"
	maskingHTTP "github.com/allisson/piimask/internal/masking/http"
	maskingUseCase "github.com/allisson/piimask/internal/masking/usecase"
	"github.com/allisson/piimask/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Engine
	maskingOptions *maskingDomain.Options
	maskingUC      maskingUseCase.MaskingUseCase

	// Handlers and servers
	maskingHandler *maskingHTTP.MaskingHandler
	httpServer     *http.Server
	metricsServer  *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	maskingOptionsInit  sync.Once
	maskingUCInit       sync.Once
	maskingHandlerInit  sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is
// returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// MaskingOptions returns the validated engine options, resolving the signing
// secret through KMS when a ciphertext is configured.
func (c *Container) MaskingOptions() (*maskingDomain.Options, error) {
	var err error
	c.maskingOptionsInit.Do(func() {
		c.maskingOptions, err = c.initMaskingOptions()
		if err != nil {
			c.initErrors["maskingOptions"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["maskingOptions"]; exists {
		return nil, storedErr
	}
	return c.maskingOptions, nil
}

// MaskingUseCase returns the masking use case instance, decorated with
// metrics recording.
func (c *Container) MaskingUseCase() (maskingUseCase.MaskingUseCase, error) {
	var err error
	c.maskingUCInit.Do(func() {
		c.maskingUC, err = c.initMaskingUseCase()
		if err != nil {
			c.initErrors["maskingUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["maskingUseCase"]; exists {
		return nil, storedErr
	}
	return c.maskingUC, nil
}

// MaskingHandler returns the masking HTTP handler instance.
func (c *Container) MaskingHandler() (*maskingHTTP.MaskingHandler, error) {
	var err error
	c.maskingHandlerInit.Do(func() {
		c.maskingHandler, err = c.initMaskingHandler()
		if err != nil {
			c.initErrors["maskingHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["maskingHandler"]; exists {
		return nil, storedErr
	}
	return c.maskingHandler, nil
}

// HTTPServer returns the API HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics HTTP server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initMetricsProvider creates the metrics provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}

	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

// initMaskingOptions builds the engine options from configuration. The
// signing secret is resolved once at startup, so a background context is
// sufficient for the KMS round trip.
func (c *Container) initMaskingOptions() (*maskingDomain.Options, error) {
	secret, err := kms.ResolveSigningSecret(
		context.Background(),
		c.config.SigningSecret,
		c.config.SigningSecretCiphertext,
		c.config.KMSKeyURI,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve signing secret: %w", err)
	}

	opts := &maskingDomain.Options{
		SigningSecret:    secret,
		TokenFormat:      maskingDomain.TokenFormat(c.config.TokenFormat),
		Disable:          c.config.SanitizeDisabled,
		AllowlistRoutes:  c.config.AllowlistRoutes,
		DenylistRoutes:   c.config.DenylistRoutes,
		RegexToSanitize:  c.config.RegexToSanitize,
		FieldsToSanitize: c.config.FieldsToSanitize,
		FieldsToSkip:     c.config.FieldsToSkip,
		MaxStringScanLen: c.config.MaxStringScanLen,
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return opts, nil
}

// initMaskingUseCase creates the masking use case decorated with metrics.
func (c *Container) initMaskingUseCase() (maskingUseCase.MaskingUseCase, error) {
	opts, err := c.MaskingOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to get options for masking use case: %w", err)
	}

	useCase, err := maskingUseCase.NewMaskingUseCase(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create masking use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for masking use case: %w", err)
	}

	return maskingUseCase.NewMaskingUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initMaskingHandler creates the masking HTTP handler instance.
func (c *Container) initMaskingHandler() (*maskingHTTP.MaskingHandler, error) {
	useCase, err := c.MaskingUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get masking use case for handler: %w", err)
	}

	return maskingHTTP.NewMaskingHandler(useCase, c.Logger()), nil
}

// initHTTPServer creates the API HTTP server instance.
func (c *Container) initHTTPServer() (*http.Server, error) {
	handler, err := c.MaskingHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get masking handler for http server: %w", err)
	}

	useCase, err := c.MaskingUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get masking use case for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	return http.NewServer(c.config, handler, useCase, provider, c.Logger()), nil
}

// initMetricsServer creates the metrics HTTP server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	if provider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
