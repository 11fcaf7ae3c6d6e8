package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/piimask/cmd/app/commands"
	"github.com/allisson/piimask/internal/app"
	"github.com/allisson/piimask/internal/config"
	maskingService "github.com/allisson/piimask/internal/masking/service"
)

func getEngineCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "sanitize",
			Usage: "Mask PII in a JSON document",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "route",
					Aliases: []string{"r"},
					Value:   "/",
					Usage:   "Route used for allowlist and denylist checks",
				},
				&cli.StringFlag{
					Name:    "payload",
					Aliases: []string{"p"},
					Value:   "-",
					Usage:   "JSON document to sanitize ('-' reads from stdin)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.MaskingUseCase()
				if err != nil {
					return fmt.Errorf("failed to initialize engine: %w", err)
				}

				return commands.RunSanitize(
					ctx,
					useCase,
					cmd.String("route"),
					cmd.String("payload"),
					commands.DefaultIO(),
					container.Logger(),
				)
			},
		},
		{
			Name:  "decode",
			Usage: "Restore the original values in a sanitized JSON document",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "payload",
					Aliases: []string{"p"},
					Value:   "-",
					Usage:   "JSON document to decode ('-' reads from stdin)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.MaskingUseCase()
				if err != nil {
					return fmt.Errorf("failed to initialize engine: %w", err)
				}

				return commands.RunDecodePayload(
					ctx,
					useCase,
					cmd.String("payload"),
					commands.DefaultIO(),
					container.Logger(),
				)
			},
		},
		{
			Name:  "encode",
			Usage: "Encrypt a single value into a reversible token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "value",
					Aliases:  []string{"v"},
					Required: true,
					Usage:    "Value to encrypt",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				codec, err := buildCodec(ctx)
				if err != nil {
					return err
				}

				return commands.RunEncode(codec, cmd.String("value"), commands.DefaultIO())
			},
		},
		{
			Name:  "decode-token",
			Usage: "Decrypt a single token back into its original value",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Token to decrypt",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				codec, err := buildCodec(ctx)
				if err != nil {
					return err
				}

				return commands.RunDecode(codec, cmd.String("token"), commands.DefaultIO())
			},
		},
	}
}

// buildCodec assembles the token codec from the configured options.
func buildCodec(ctx context.Context) (maskingService.Codec, error) {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	opts, err := container.MaskingOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to load engine options: %w", err)
	}

	codec, err := maskingService.NewCodec(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create codec: %w", err)
	}

	return codec, nil
}
