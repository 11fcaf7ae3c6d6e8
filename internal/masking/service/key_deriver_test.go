package service

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, DeriveKey("secret"), DeriveKey("secret"))
	})

	t.Run("different secrets give different keys", func(t *testing.T) {
		assert.NotEqual(t, DeriveKey("secret-a"), DeriveKey("secret-b"))
	})

	t.Run("matches SHA-256 of the UTF-8 secret", func(t *testing.T) {
		// echo -n "secret" | sha256sum
		key := DeriveKey("secret")
		assert.Equal(t,
			"2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b",
			hex.EncodeToString(key[:]),
		)
	})
}

func TestDeriveSubkey(t *testing.T) {
	t.Run("independent from the primary key", func(t *testing.T) {
		primary := DeriveKey("secret")
		subkey, err := DeriveSubkey("secret", "pii-token-v2")
		require.NoError(t, err)
		require.Len(t, subkey, 32)
		assert.NotEqual(t, primary[:], subkey)
	})

	t.Run("info separates usage", func(t *testing.T) {
		a, err := DeriveSubkey("secret", "usage-a")
		require.NoError(t, err)
		b, err := DeriveSubkey("secret", "usage-b")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}
