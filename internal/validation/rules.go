// Package validation provides custom validation rules for the application.
package validation

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/piimask/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// notBlankRule rejects strings that are empty or whitespace-only. Unlike
// the library's built-in string rules it does not skip empty values, so it
// catches "" even without a paired Required rule.
type notBlankRule struct{}

// Validate checks that the value is a string with visible content
func (notBlankRule) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_not_blank", "must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_not_blank", "must not be blank")
	}
	return nil
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank notBlankRule

// noWhitespaceRule rejects strings containing any whitespace character.
type noWhitespaceRule struct{}

// Validate checks that the value is a string without whitespace
func (noWhitespaceRule) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_no_whitespace", "must be a string")
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return validation.NewError("validation_no_whitespace", "must not contain whitespace")
	}
	return nil
}

// NoWhitespace validates that a string contains no whitespace characters
var NoWhitespace noWhitespaceRule

// notNullJSONRule rejects a raw JSON field holding the literal null. A
// body of {"payload":null} binds json.RawMessage to the non-empty bytes
// "null", which the Required rule accepts.
type notNullJSONRule struct{}

// Validate checks that the value is raw JSON other than null
func (notNullJSONRule) Validate(value interface{}) error {
	raw, ok := value.(json.RawMessage)
	if !ok {
		return validation.NewError("validation_not_null_json", "must be a JSON document")
	}
	if string(bytes.TrimSpace(raw)) == "null" {
		return validation.NewError("validation_not_null_json", "must not be null")
	}
	return nil
}

// NotNullJSON validates that a raw JSON field is not the literal null
var NotNullJSON notNullJSONRule
