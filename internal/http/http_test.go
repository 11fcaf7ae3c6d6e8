package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/piimask/internal/config"
	maskingDomain "github.com/allisson/piimask/internal/masking/domain"
	maskingHTTP "github.com/allisson/piimask/internal/masking/http"
	maskingUseCase "github.com/allisson/piimask/internal/masking/usecase"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTestServer creates a server with a real engine and discarding logger.
func createTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()

	if cfg == nil {
		cfg = &config.Config{}
	}
	if cfg.ServerHost == "" {
		cfg.ServerHost = "localhost"
	}
	if cfg.ServerPort == 0 {
		cfg.ServerPort = 8080
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	useCase, err := maskingUseCase.NewMaskingUseCase(&maskingDomain.Options{
		SigningSecret:  "super-secret",
		DenylistRoutes: cfg.DenylistRoutes,
	})
	require.NoError(t, err)

	handler := maskingHTTP.NewMaskingHandler(useCase, logger)

	return NewServer(cfg, handler, useCase, nil, logger)
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer(t, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler(t *testing.T) {
	t.Run("Ready_EngineAssembled", func(t *testing.T) {
		server := createTestServer(t, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "ready", response["status"])
	})

	t.Run("NotReady_NilEngine", func(t *testing.T) {
		server := createTestServer(t, nil)
		server.maskingUseCase = nil

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "not_ready", response["status"])

		components, ok := response["components"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "error", components["engine"])
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)

	// Should not panic - Recovery middleware catches it.
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_SanitizeEndpoint(t *testing.T) {
	server := createTestServer(t, nil)
	router := server.SetupRouter(context.Background())

	body := `{"route":"/v1/users","payload":{"email":"john@example.com","comment":"hello world"}}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/sanitize", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEqual(t, "john@example.com", response.Payload["email"])
	assert.Equal(t, "hello world", response.Payload["comment"])
}

func TestRouter_EchoEndpointMasksBody(t *testing.T) {
	server := createTestServer(t, nil)
	router := server.SetupRouter(context.Background())

	body := `{"email":"john@example.com"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/echo", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "john@example.com")
}

func TestRouter_NotFoundEndpoint(t *testing.T) {
	server := createTestServer(t, nil)
	router := server.SetupRouter(context.Background())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := createTestServer(t, &config.Config{
		RateLimitEnabled:        true,
		RateLimitRequestsPerSec: 1,
		RateLimitBurst:          1,
	})
	router := server.SetupRouter(ctx)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
}

func TestServer_ShutdownWithoutStart(t *testing.T) {
	server := createTestServer(t, nil)

	assert.NoError(t, server.Shutdown(context.Background()))
}
