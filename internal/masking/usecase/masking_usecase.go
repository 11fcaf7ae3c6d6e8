package usecase

import (
	"context"
	"fmt"

	"github.com/allisson/piimask/internal/masking/domain"
	"github.com/allisson/piimask/internal/masking/service"
)

// maskingUseCase implements MaskingUseCase on top of the policy resolver,
// classifier, and codec assembled from validated options.
type maskingUseCase struct {
	walker *service.Walker
}

// NewMaskingUseCase validates the options and assembles the engine. All
// configuration errors (blank secret, invalid pattern, unknown token
// format) surface here; nothing fails lazily per request.
func NewMaskingUseCase(opts *domain.Options) (MaskingUseCase, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	policy, err := service.NewPolicyResolver(opts)
	if err != nil {
		return nil, err
	}

	codec, err := service.NewCodec(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create codec: %w", err)
	}

	walker := service.NewWalker(policy, service.NewPiiClassifier(), codec)

	return &maskingUseCase{walker: walker}, nil
}

// SanitizeObject masks PII in the payload when the route is in scope.
func (m *maskingUseCase) SanitizeObject(
	ctx context.Context,
	route string,
	payload domain.Value,
) (domain.Value, error) {
	return m.walker.Sanitize(route, payload)
}

// DecodeBody restores the original values behind every token in the payload.
func (m *maskingUseCase) DecodeBody(ctx context.Context, payload domain.Value) (domain.Value, error) {
	return m.walker.Decode(payload)
}
