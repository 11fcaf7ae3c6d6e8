package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	maskingDomain "github.com/allisson/piimask/internal/masking/domain"
	"github.com/allisson/piimask/internal/masking/http/dto"
	maskingUseCase "github.com/allisson/piimask/internal/masking/usecase"
)

// setupTestMaskingHandler creates a handler backed by a real engine.
func setupTestMaskingHandler(t *testing.T, opts *maskingDomain.Options) *MaskingHandler {
	t.Helper()

	gin.SetMode(gin.TestMode)

	if opts == nil {
		opts = &maskingDomain.Options{}
	}
	if opts.SigningSecret == "" {
		opts.SigningSecret = "super-secret"
	}

	useCase, err := maskingUseCase.NewMaskingUseCase(opts)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewMaskingHandler(useCase, logger)
}

func TestMaskingHandler_SanitizeHandler(t *testing.T) {
	t.Run("Success_MasksPayload", func(t *testing.T) {
		handler := setupTestMaskingHandler(t, nil)

		request := dto.SanitizeRequest{
			Route:   "/v1/users",
			Payload: json.RawMessage(`{"email":"john@example.com","comment":"hello world"}`),
		}

		c, w := createTestContext(http.MethodPost, "/v1/sanitize", request)
		handler.SanitizeHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Payload map[string]string `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotEqual(t, "john@example.com", response.Payload["email"])
		assert.Equal(t, "hello world", response.Payload["comment"])
	})

	t.Run("Success_PreservesMemberOrder", func(t *testing.T) {
		handler := setupTestMaskingHandler(t, &maskingDomain.Options{Disable: true})

		request := dto.SanitizeRequest{
			Route:   "/v1/users",
			Payload: json.RawMessage(`{"z":1,"a":2,"m":3}`),
		}

		c, w := createTestContext(http.MethodPost, "/v1/sanitize", request)
		handler.SanitizeHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `{"z":1,"a":2,"m":3}`)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler := setupTestMaskingHandler(t, nil)

		c, w := createTestContext(http.MethodPost, "/v1/sanitize", nil)
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte("invalid json")))
		handler.SanitizeHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_MissingRoute", func(t *testing.T) {
		handler := setupTestMaskingHandler(t, nil)

		request := dto.SanitizeRequest{
			Payload: json.RawMessage(`{"email":"john@example.com"}`),
		}

		c, w := createTestContext(http.MethodPost, "/v1/sanitize", request)
		handler.SanitizeHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_MalformedPayload", func(t *testing.T) {
		handler := setupTestMaskingHandler(t, nil)

		c, w := createTestContext(http.MethodPost, "/v1/sanitize", nil)
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte(`{"route":"/v1/users","payload":}`)))
		handler.SanitizeHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMaskingHandler_DecodeHandler(t *testing.T) {
	t.Run("Success_RoundTrip", func(t *testing.T) {
		handler := setupTestMaskingHandler(t, nil)

		sanitizeReq := dto.SanitizeRequest{
			Route:   "/v1/users",
			Payload: json.RawMessage(`{"email":"john@example.com"}`),
		}

		c, w := createTestContext(http.MethodPost, "/v1/sanitize", sanitizeReq)
		handler.SanitizeHandler(c)
		require.Equal(t, http.StatusOK, w.Code)

		var sanitized struct {
			Payload json.RawMessage `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sanitized))

		decodeReq := dto.DecodeRequest{Payload: sanitized.Payload}

		c, w = createTestContext(http.MethodPost, "/v1/decode", decodeReq)
		handler.DecodeHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var restored struct {
			Payload map[string]string `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restored))
		assert.Equal(t, "john@example.com", restored.Payload["email"])
	})

	t.Run("Error_InvalidToken", func(t *testing.T) {
		handler := setupTestMaskingHandler(t, nil)

		request := dto.DecodeRequest{
			Payload: json.RawMessage(`{"when":"12:30"}`),
		}

		c, w := createTestContext(http.MethodPost, "/v1/decode", request)
		handler.DecodeHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_MissingPayload", func(t *testing.T) {
		handler := setupTestMaskingHandler(t, nil)

		c, w := createTestContext(http.MethodPost, "/v1/decode", dto.DecodeRequest{})
		handler.DecodeHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
