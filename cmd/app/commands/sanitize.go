package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	maskingDomain "github.com/allisson/piimask/internal/masking/domain"
	maskingUseCase "github.com/allisson/piimask/internal/masking/usecase"
)

// RunSanitize masks PII in a JSON document and writes the result. The
// payload argument holds the document; "-" reads it from the IOTuple reader
// instead. Member order and number literals are preserved in the output.
func RunSanitize(
	ctx context.Context,
	useCase maskingUseCase.MaskingUseCase,
	route string,
	payload string,
	ioTuple IOTuple,
	logger *slog.Logger,
) error {
	data := []byte(payload)
	if payload == "-" {
		var err error
		data, err = io.ReadAll(ioTuple.Reader)
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
	}

	value, err := maskingDomain.ParseJSON(data)
	if err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	sanitized, err := useCase.SanitizeObject(ctx, route, value)
	if err != nil {
		return fmt.Errorf("failed to sanitize payload: %w", err)
	}

	output, err := sanitized.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	fmt.Fprintln(ioTuple.Writer, string(output))

	logger.Debug("payload sanitized", slog.String("route", route))

	return nil
}

// RunDecodePayload restores the original values behind every token in a
// JSON document and writes the result. The payload argument holds the
// document; "-" reads it from the IOTuple reader instead.
func RunDecodePayload(
	ctx context.Context,
	useCase maskingUseCase.MaskingUseCase,
	payload string,
	ioTuple IOTuple,
	logger *slog.Logger,
) error {
	data := []byte(payload)
	if payload == "-" {
		var err error
		data, err = io.ReadAll(ioTuple.Reader)
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
	}

	value, err := maskingDomain.ParseJSON(data)
	if err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	restored, err := useCase.DecodeBody(ctx, value)
	if err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}

	output, err := restored.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	fmt.Fprintln(ioTuple.Writer, string(output))

	logger.Debug("payload decoded")

	return nil
}
