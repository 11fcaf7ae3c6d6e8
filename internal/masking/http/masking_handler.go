// Package http provides HTTP handlers for the sanitize and decode operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/piimask/internal/httputil"
	maskingDomain "github.com/allisson/piimask/internal/masking/domain"
	"github.com/allisson/piimask/internal/masking/http/dto"
	maskingUseCase "github.com/allisson/piimask/internal/masking/usecase"
	customValidation "github.com/allisson/piimask/internal/validation"
)

// MaskingHandler handles HTTP requests for payload sanitization and decoding.
type MaskingHandler struct {
	maskingUseCase maskingUseCase.MaskingUseCase
	logger         *slog.Logger
}

// NewMaskingHandler creates a new masking handler with required dependencies.
func NewMaskingHandler(useCase maskingUseCase.MaskingUseCase, logger *slog.Logger) *MaskingHandler {
	return &MaskingHandler{
		maskingUseCase: useCase,
		logger:         logger,
	}
}

// SanitizeHandler masks PII in the submitted payload.
// POST /v1/sanitize - Returns 200 OK with the sanitized payload.
func (h *MaskingHandler) SanitizeHandler(c *gin.Context) {
	var req dto.SanitizeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	payload, err := maskingDomain.ParseJSON(req.Payload)
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid payload: %w", err), h.logger)
		return
	}

	sanitized, err := h.maskingUseCase.SanitizeObject(c.Request.Context(), req.Route, payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SanitizeResponse{Payload: sanitized})
}

// DecodeHandler restores the original values behind every token in the payload.
// POST /v1/decode - Returns 200 OK with the restored payload.
func (h *MaskingHandler) DecodeHandler(c *gin.Context) {
	var req dto.DecodeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	payload, err := maskingDomain.ParseJSON(req.Payload)
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid payload: %w", err), h.logger)
		return
	}

	restored, err := h.maskingUseCase.DecodeBody(c.Request.Context(), payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecodeResponse{Payload: restored})
}
