package http

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/allisson/piimask/internal/httputil"
	maskingDomain "github.com/allisson/piimask/internal/masking/domain"
	maskingUseCase "github.com/allisson/piimask/internal/masking/usecase"
)

// BodySanitizerMiddleware returns a Gin middleware that masks PII in JSON
// request bodies before the downstream handler reads them. The request path
// is used for the engine's route scope checks, so allowlist and denylist
// entries refer to request paths, not route patterns.
//
// Bodies that are empty or not declared as JSON pass through untouched. A
// body that fails to parse as JSON also passes through; the downstream
// handler owns malformed-input handling. Engine failures fail closed: the
// request is rejected rather than forwarded with PII intact.
func BodySanitizerMiddleware(useCase maskingUseCase.MaskingUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || !isJSONRequest(c.ContentType()) {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			httputil.HandleBadRequestGin(c, err, logger)
			c.Abort()
			return
		}

		if len(bytes.TrimSpace(body)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
			c.Next()
			return
		}

		payload, err := maskingDomain.ParseJSON(body)
		if err != nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
			c.Next()
			return
		}

		sanitized, err := useCase.SanitizeObject(c.Request.Context(), c.Request.URL.Path, payload)
		if err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		masked, err := sanitized.MarshalJSON()
		if err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(masked))
		c.Request.ContentLength = int64(len(masked))
		c.Next()
	}
}

func isJSONRequest(contentType string) bool {
	return strings.HasPrefix(contentType, "application/json")
}
