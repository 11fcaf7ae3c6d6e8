package dto

import (
	maskingDomain "github.com/allisson/piimask/internal/masking/domain"
)

// SanitizeResponse contains the sanitized payload. Member order and number
// literals are preserved from the input document.
type SanitizeResponse struct {
	Payload maskingDomain.Value `json:"payload"`
}

// DecodeResponse contains the restored payload.
// SECURITY: the payload carries plaintext PII and should be transmitted over HTTPS.
type DecodeResponse struct {
	Payload maskingDomain.Value `json:"payload"`
}
