package commands

import (
	"fmt"

	maskingService "github.com/allisson/piimask/internal/masking/service"
)

// RunEncode encrypts a single value into a reversible token and writes it.
func RunEncode(codec maskingService.Codec, value string, ioTuple IOTuple) error {
	token, err := codec.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}

	fmt.Fprintln(ioTuple.Writer, token)

	return nil
}

// RunDecode decrypts a single token back into its original value and writes it.
func RunDecode(codec maskingService.Codec, token string, ioTuple IOTuple) error {
	value, err := codec.Decode(token)
	if err != nil {
		return fmt.Errorf("failed to decode token: %w", err)
	}

	fmt.Fprintln(ioTuple.Writer, value)

	return nil
}
