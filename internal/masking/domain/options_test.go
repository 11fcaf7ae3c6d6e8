package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/piimask/internal/errors"
)

func TestOptions_Validate(t *testing.T) {
	t.Run("valid options", func(t *testing.T) {
		opts := &Options{
			SigningSecret:   "secret",
			RegexToSanitize: []string{`\d{10}`},
		}
		assert.NoError(t, opts.Validate())
	})

	t.Run("missing secret", func(t *testing.T) {
		opts := &Options{}
		err := opts.Validate()
		assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
	})

	t.Run("blank secret", func(t *testing.T) {
		opts := &Options{SigningSecret: "   "}
		assert.Error(t, opts.Validate())
	})

	t.Run("bad pattern", func(t *testing.T) {
		opts := &Options{
			SigningSecret:   "secret",
			RegexToSanitize: []string{`(`},
		}
		err := opts.Validate()
		assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
	})

	t.Run("bad token format", func(t *testing.T) {
		opts := &Options{SigningSecret: "secret", TokenFormat: "bogus"}
		err := opts.Validate()
		assert.True(t, apperrors.Is(err, ErrUnsupportedTokenFormat))
	})
}

func TestOptions_Format(t *testing.T) {
	opts := &Options{SigningSecret: "secret"}
	assert.Equal(t, TokenFormatLegacy, opts.Format())

	opts.TokenFormat = TokenFormatAEAD
	assert.Equal(t, TokenFormatAEAD, opts.Format())
}

func TestTokenFormat_Validate(t *testing.T) {
	assert.NoError(t, TokenFormatLegacy.Validate())
	assert.NoError(t, TokenFormatAEAD.Validate())
	assert.Error(t, TokenFormat("nope").Validate())
}
