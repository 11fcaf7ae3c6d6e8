package usecase

import (
	"context"
	"time"

	"github.com/allisson/piimask/internal/masking/domain"
	"github.com/allisson/piimask/internal/metrics"
)

// maskingUseCaseWithMetrics decorates MaskingUseCase with metrics instrumentation.
type maskingUseCaseWithMetrics struct {
	next    MaskingUseCase
	metrics metrics.BusinessMetrics
}

// NewMaskingUseCaseWithMetrics wraps a MaskingUseCase with metrics recording.
func NewMaskingUseCaseWithMetrics(useCase MaskingUseCase, m metrics.BusinessMetrics) MaskingUseCase {
	return &maskingUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// SanitizeObject records metrics for sanitize operations.
func (u *maskingUseCaseWithMetrics) SanitizeObject(
	ctx context.Context,
	route string,
	payload domain.Value,
) (domain.Value, error) {
	start := time.Now()
	result, err := u.next.SanitizeObject(ctx, route, payload)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "masking", "sanitize_object", status)
	u.metrics.RecordDuration(ctx, "masking", "sanitize_object", time.Since(start), status)

	return result, err
}

// DecodeBody records metrics for decode operations.
func (u *maskingUseCaseWithMetrics) DecodeBody(
	ctx context.Context,
	payload domain.Value,
) (domain.Value, error) {
	start := time.Now()
	result, err := u.next.DecodeBody(ctx, payload)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "masking", "decode_body", status)
	u.metrics.RecordDuration(ctx, "masking", "decode_body", time.Since(start), status)

	return result, err
}
