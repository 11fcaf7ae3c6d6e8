// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/json"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/piimask/internal/validation"
)

// SanitizeRequest contains the parameters for sanitizing a payload.
type SanitizeRequest struct {
	Route   string          `json:"route"`   // Route used for scope checks, e.g. "/v1/users"
	Payload json.RawMessage `json:"payload"` // Arbitrary JSON document
}

// Validate checks if the sanitize request is valid.
func (r *SanitizeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Route,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
		),
		validation.Field(&r.Payload,
			validation.Required,
			customValidation.NotNullJSON,
		),
	)
}

// DecodeRequest contains the parameters for decoding a sanitized payload.
type DecodeRequest struct {
	Payload json.RawMessage `json:"payload"` // Previously sanitized JSON document
}

// Validate checks if the decode request is valid.
func (r *DecodeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Payload,
			validation.Required,
			customValidation.NotNullJSON,
		),
	)
}
