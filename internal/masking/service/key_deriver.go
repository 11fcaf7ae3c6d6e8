package service

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/allisson/piimask/internal/masking/domain"
)

// DeriveKey turns the configured secret into the 32-byte symmetric key used
// by the legacy codec: SHA-256 of the UTF-8 secret. Deterministic and pure;
// secret emptiness is rejected at configuration time, not here.
func DeriveKey(secret string) [domain.KeySize]byte {
	return sha256.Sum256([]byte(secret))
}

// DeriveSubkey derives an independent 32-byte key for a versioned token
// format using HKDF-SHA256 over the primary key. The info string is the
// format version label, separating key usage between formats.
func DeriveSubkey(secret, info string) ([]byte, error) {
	primary := DeriveKey(secret)
	reader := hkdf.New(sha256.New, primary[:], nil, []byte(info))

	subkey := make([]byte, domain.KeySize)
	if _, err := io.ReadFull(reader, subkey); err != nil {
		return nil, err
	}

	return subkey, nil
}
