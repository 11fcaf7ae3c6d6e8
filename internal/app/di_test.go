package app

import (
	"context"
	"testing"

	"github.com/allisson/piimask/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		LogLevel:         "info",
		ServerHost:       "localhost",
		ServerPort:       8080,
		SigningSecret:    "super-secret",
		MetricsEnabled:   true,
		MetricsNamespace: "piimask",
		MetricsPort:      9090,
	}
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := validConfig()

	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}

	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger can be retrieved from the container.
func TestContainerLogger(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "debug"})

	logger := container.Logger()
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	// Calling Logger() again should return the same instance (singleton)
	if logger != container.Logger() {
		t.Error("expected same logger instance on multiple calls")
	}
}

// TestContainerMaskingUseCase verifies the engine assembles from valid configuration.
func TestContainerMaskingUseCase(t *testing.T) {
	container := NewContainer(validConfig())

	useCase, err := container.MaskingUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if useCase == nil {
		t.Fatal("expected non-nil masking use case")
	}

	useCase2, err := container.MaskingUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if useCase != useCase2 {
		t.Error("expected same use case instance on multiple calls")
	}
}

// TestContainerInitializationErrors verifies that initialization errors are properly handled.
func TestContainerInitializationErrors(t *testing.T) {
	// Missing signing secret is a configuration error.
	container := NewContainer(&config.Config{})

	_, err := container.MaskingUseCase()
	if err == nil {
		t.Error("expected error with missing signing secret")
	}

	// The error must be sticky across calls.
	_, err2 := container.MaskingUseCase()
	if err2 == nil {
		t.Error("expected same error on second call")
	}
}

// TestContainerMetricsDisabled verifies nil provider and no-op metrics without metrics.
func TestContainerMetricsDisabled(t *testing.T) {
	cfg := validConfig()
	cfg.MetricsEnabled = false
	container := NewContainer(cfg)

	provider, err := container.MetricsProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider != nil {
		t.Error("expected nil metrics provider when metrics are disabled")
	}

	bm, err := container.BusinessMetrics()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bm == nil {
		t.Error("expected no-op business metrics when metrics are disabled")
	}

	server, err := container.MetricsServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server != nil {
		t.Error("expected nil metrics server when metrics are disabled")
	}
}

// TestContainerHTTPServer verifies the HTTP server assembles with its dependencies.
func TestContainerHTTPServer(t *testing.T) {
	container := NewContainer(validConfig())

	server, err := container.HTTPServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server == nil {
		t.Fatal("expected non-nil http server")
	}
}

// TestContainerShutdown verifies shutdown succeeds with initialized components.
func TestContainerShutdown(t *testing.T) {
	container := NewContainer(validConfig())

	if _, err := container.HTTPServer(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := container.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}
