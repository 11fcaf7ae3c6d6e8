package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	maskingDomain "github.com/allisson/piimask/internal/masking/domain"
	maskingService "github.com/allisson/piimask/internal/masking/service"
)

func TestRunEncodeAndRunDecode(t *testing.T) {
	codec, err := maskingService.NewCodec(&maskingDomain.Options{SigningSecret: "super-secret"})
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		var encoded bytes.Buffer
		err := RunEncode(codec, "john@example.com", IOTuple{Writer: &encoded})
		require.NoError(t, err)

		token := strings.TrimSpace(encoded.String())
		require.NotEmpty(t, token)
		assert.NotEqual(t, "john@example.com", token)

		var decoded bytes.Buffer
		err = RunDecode(codec, token, IOTuple{Writer: &decoded})
		require.NoError(t, err)
		assert.Equal(t, "john@example.com", strings.TrimSpace(decoded.String()))
	})

	t.Run("invalid token", func(t *testing.T) {
		var out bytes.Buffer
		err := RunDecode(codec, "no-colon-here", IOTuple{Writer: &out})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode token")
	})
}
