package domain

import (
	"regexp"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/piimask/internal/validation"
	"github.com/allisson/piimask/internal/errors"
)

// Options is the immutable engine configuration, supplied once at
// construction and read-only for the engine's lifetime.
//
// Route lists are matched by literal string equality. The configuration
// accepts pattern-like entries for compatibility, but matching is literal
// membership, not regex.
type Options struct {
	// SigningSecret is the sole key material; the symmetric key is derived
	// from it. Required.
	SigningSecret string

	// TokenFormat selects the codec wire format. Empty means legacy.
	TokenFormat TokenFormat

	// Disable turns sanitization off entirely.
	Disable bool

	// AllowlistRoutes, when non-empty, limits sanitization to these routes.
	AllowlistRoutes []string

	// DenylistRoutes exempts these routes from sanitization.
	DenylistRoutes []string

	// RegexToSanitize holds ordered patterns whose matches are masked in
	// place inside string leaves. Every pattern must compile.
	RegexToSanitize []string

	// FieldsToSanitize, when non-empty, switches masking into explicit
	// allowlist mode: only these field names are ever masked via detect.
	FieldsToSanitize []string

	// FieldsToSkip exempts these field names regardless of any other rule.
	FieldsToSkip []string

	// MaxStringScanLen caps the length of string leaves subjected to
	// configured-regex scanning. Zero means no cap.
	MaxStringScanLen int
}

// Validate checks the options. A zero-value secret or an uncompilable
// pattern is a construction error; nothing here is recoverable at runtime.
func (o *Options) Validate() error {
	err := validation.ValidateStruct(o,
		validation.Field(&o.SigningSecret,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&o.RegexToSanitize,
			validation.Each(validation.By(validatePattern)),
		),
	)
	if err != nil {
		return errors.Wrap(errors.ErrConfiguration, err.Error())
	}

	if o.TokenFormat != "" {
		if err := o.TokenFormat.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Format returns the configured token format, defaulting to legacy.
func (o *Options) Format() TokenFormat {
	if o.TokenFormat == "" {
		return TokenFormatLegacy
	}
	return o.TokenFormat
}

// validatePattern validates that a sanitize pattern compiles.
func validatePattern(value interface{}) error {
	pattern, ok := value.(string)
	if !ok {
		return validation.NewError("validation_pattern_type", "must be a string")
	}

	if _, err := regexp.Compile(pattern); err != nil {
		return validation.NewError("validation_pattern_compile", "must be a valid regular expression")
	}

	return nil
}
