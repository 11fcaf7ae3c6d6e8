package domain

import (
	"github.com/allisson/piimask/internal/errors"
)

// Masking engine error definitions.
//
// Construction-time failures wrap ErrConfiguration and are fatal; decode
// failures wrap ErrInvalidInput and are surfaced to the caller per request.
var (
	// ErrMissingSecret indicates the signing secret is empty or absent.
	// Checked once at construction, never at derive time.
	ErrMissingSecret = errors.Wrap(errors.ErrConfiguration, "signing secret is required")

	// ErrInvalidRegexPattern indicates a configured sanitize pattern does not
	// compile. Detected at construction so a bad pattern can never fail a
	// request at runtime.
	ErrInvalidRegexPattern = errors.Wrap(errors.ErrConfiguration, "invalid regex pattern")

	// ErrUnsupportedTokenFormat indicates an unknown token format name.
	ErrUnsupportedTokenFormat = errors.Wrap(errors.ErrConfiguration, "unsupported token format")

	// ErrMalformedToken indicates a decode input is not a well-formed
	// iv:ciphertext pair.
	ErrMalformedToken = errors.Wrap(errors.ErrInvalidInput, "malformed token")

	// ErrDecryptionFailed indicates hex/base64 decoding or the cipher step
	// failed, e.g. wrong key or corrupted token. The specific cause is not
	// disclosed to avoid leaking key material hints.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")
)
