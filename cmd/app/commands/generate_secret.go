package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// RunGenerateSecret generates a cryptographically secure random signing
// secret and writes it in the format expected by SIGNING_SECRET.
func RunGenerateSecret(ioTuple IOTuple) error {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}

	fmt.Fprintf(ioTuple.Writer, "SIGNING_SECRET=%q\n", base64.StdEncoding.EncodeToString(secret))

	return nil
}
