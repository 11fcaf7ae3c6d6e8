package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/allisson/piimask/internal/masking/domain"
)

// CTRCodec implements the legacy reversible token format:
//
//	hex(iv) ":" hex(ciphertext)
//
// using AES-256-CTR with a fresh random 16-byte IV per encryption. No
// authentication tag is produced; the format trades integrity for
// cross-implementation interoperability. Use the AEAD format for new
// deployments that do not need to exchange tokens with legacy peers.
//
// The codec is stateless and safe for concurrent use; crypto/rand is the
// only shared resource and it is thread-safe.
type CTRCodec struct {
	block cipher.Block
}

// NewCTRCodec creates a codec from the configured secret.
func NewCTRCodec(secret string) (*CTRCodec, error) {
	key := DeriveKey(secret)

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	return &CTRCodec{block: block}, nil
}

// Encode encrypts plaintext and returns an ivHex:cipherHex token. A fresh
// IV is generated per call, so encoding the same plaintext twice yields
// different tokens.
func (c *CTRCodec) Encode(plaintext string) (string, error) {
	iv := make([]byte, domain.IVSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	ciphertext := make([]byte, len(plaintext))
	cipher.NewCTR(c.block, iv).XORKeyStream(ciphertext, []byte(plaintext))

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decode splits the token on the first colon into ivHex and cipherHex,
// hex-decodes both, and decrypts. The cipherHex segment may be empty: an
// empty plaintext encodes to an empty ciphertext. Returns
// domain.ErrMalformedToken when the token does not split into an IV and a
// ciphertext segment, and domain.ErrDecryptionFailed when hex decoding or
// the cipher step fails.
func (c *CTRCodec) Decode(token string) (string, error) {
	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", domain.ErrMalformedToken
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != domain.IVSize {
		return "", domain.ErrDecryptionFailed
	}

	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", domain.ErrDecryptionFailed
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCTR(c.block, iv).XORKeyStream(plaintext, ciphertext)

	return string(plaintext), nil
}

// FormatCodec routes between the configured encode format and both decode
// formats: AEAD tokens carry the pii2: prefix, everything else is treated
// as a legacy ivHex:cipherHex token.
type FormatCodec struct {
	format domain.TokenFormat
	legacy *CTRCodec
	aead   *AEADCodec
}

// NewCodec creates the codec for the configured options. Both formats are
// always constructed so decode accepts tokens from either.
func NewCodec(opts *domain.Options) (*FormatCodec, error) {
	legacy, err := NewCTRCodec(opts.SigningSecret)
	if err != nil {
		return nil, err
	}

	aead, err := NewAEADCodec(opts.SigningSecret)
	if err != nil {
		return nil, err
	}

	return &FormatCodec{
		format: opts.Format(),
		legacy: legacy,
		aead:   aead,
	}, nil
}

// Encode encrypts with the configured token format.
func (f *FormatCodec) Encode(plaintext string) (string, error) {
	if f.format == domain.TokenFormatAEAD {
		return f.aead.Encode(plaintext)
	}
	return f.legacy.Encode(plaintext)
}

// Decode dispatches on the token prefix, accepting both formats regardless
// of the configured encode format.
func (f *FormatCodec) Decode(token string) (string, error) {
	if strings.HasPrefix(token, aeadTokenPrefix) {
		return f.aead.Decode(token)
	}
	return f.legacy.Decode(token)
}
