// Package domain defines core masking domain models: the JSON-like Value
// union, the PII classification taxonomy, and the engine options.
package domain

// PiiType classifies the kind of personally identifiable information a
// string leaf appears to carry.
//
// Classification is advisory: every non-custom type currently triggers the
// same masking action (reversible encryption). The type exists to gate the
// auto-detect path (Custom is never auto-masked) and to leave room for
// future per-type behavior without changing the engine contract.
type PiiType string

const (
	// PiiTypePanCard is an Indian permanent account number (AAAAA9999A shape).
	PiiTypePanCard PiiType = "pan_card"

	// PiiTypeCreditCard is a payment card number (name hint or Luhn-valid digits).
	PiiTypeCreditCard PiiType = "credit_card"

	// PiiTypeCvv is a card verification value.
	PiiTypeCvv PiiType = "cvv"

	// PiiTypePassword is a credential field, detected by field name only.
	PiiTypePassword PiiType = "password"

	// PiiTypeEmail is an email address (full local@domain.tld shape).
	PiiTypeEmail PiiType = "email"

	// PiiTypePhone is a phone number (10-digit value or name hint).
	PiiTypePhone PiiType = "phone"

	// PiiTypeAadhar is an Indian Aadhaar identifier (12-digit value).
	PiiTypeAadhar PiiType = "aadhar"

	// PiiTypeCustom means no PII category matched. Custom leaves are never
	// masked by the auto-detect path.
	PiiTypeCustom PiiType = "custom"
)

// TokenFormat selects the wire format produced by the reversible codec.
type TokenFormat string

const (
	// TokenFormatLegacy emits ivHex:cipherHex tokens (AES-256-CTR, no
	// authentication tag). This is the interoperable default format.
	TokenFormatLegacy TokenFormat = "legacy"

	// TokenFormatAEAD emits pii2:base64 tokens (ChaCha20-Poly1305). Opt-in
	// hardened format; legacy tokens are still accepted on decode.
	TokenFormatAEAD TokenFormat = "aead"
)

// Validate checks if the token format is supported.
func (f TokenFormat) Validate() error {
	switch f {
	case TokenFormatLegacy, TokenFormatAEAD:
		return nil
	default:
		return ErrUnsupportedTokenFormat
	}
}

// KeySize is the symmetric key size in bytes produced by the key deriver.
const KeySize = 32

// IVSize is the initialization vector size in bytes for the legacy codec.
const IVSize = 16
