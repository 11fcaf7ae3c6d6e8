// Package service implements the masking engine: key derivation, the
// reversible codec, the PII classifier, the policy resolver, and the tree
// walkers. Every component is stateless beyond immutable configuration and
// safe for concurrent use.
package service

import (
	"github.com/allisson/piimask/internal/masking/domain"
)

// Codec encrypts a single string value into a textual token and decrypts a
// token back to its original string.
type Codec interface {
	// Encode encrypts plaintext into a self-describing token. Encoding the
	// same plaintext twice yields different tokens (fresh randomness per call).
	Encode(plaintext string) (string, error)

	// Decode recovers the original string from a token produced by Encode.
	// Returns domain.ErrMalformedToken or domain.ErrDecryptionFailed on bad input.
	Decode(token string) (string, error)
}

// Classifier returns a best-guess PII category for a field name and its
// string value. It never fails; unrecognized leaves classify as custom.
type Classifier interface {
	Classify(fieldName, value string) domain.PiiType
}
