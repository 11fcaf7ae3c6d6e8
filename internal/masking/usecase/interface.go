package usecase

import (
	"context"

	"github.com/allisson/piimask/internal/masking/domain"
)

// MaskingUseCase defines the interface for sanitize and decode operations
// over JSON-like payloads.
type MaskingUseCase interface {
	// SanitizeObject masks PII in the payload when the route is in scope.
	// The input is never mutated.
	SanitizeObject(ctx context.Context, route string, payload domain.Value) (domain.Value, error)

	// DecodeBody restores the original values behind every token in the
	// payload. Decode is not route-gated.
	DecodeBody(ctx context.Context, payload domain.Value) (domain.Value, error)
}
