// Package kms resolves the signing secret, optionally unwrapping a
// KMS-encrypted ciphertext through gocloud.dev/secrets.
package kms

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	apperrors "github.com/allisson/piimask/internal/errors"

	// Register the KMS provider drivers.
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// Keeper is the subset of *secrets.Keeper used to unwrap secrets.
type Keeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// OpenKeeper opens a keeper for the configured key URI. Supported schemes:
// gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://.
func OpenKeeper(ctx context.Context, keyURI string) (Keeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// ResolveSigningSecret returns the signing secret for the engine. When a
// ciphertext and key URI are configured, the base64 ciphertext is unwrapped
// through the KMS keeper; otherwise the plaintext secret is returned as-is.
// Configuring a ciphertext without a key URI is an error.
func ResolveSigningSecret(ctx context.Context, plain, ciphertextB64, keyURI string) (string, error) {
	if ciphertextB64 == "" {
		return plain, nil
	}

	if keyURI == "" {
		return "", apperrors.Wrap(
			apperrors.ErrConfiguration,
			"signing secret ciphertext is set but no KMS key URI is configured",
		)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrConfiguration, "signing secret ciphertext is not valid base64")
	}

	keeper, err := OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer keeper.Close() //nolint:errcheck

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt signing secret: %w", err)
	}

	return string(plaintext), nil
}
