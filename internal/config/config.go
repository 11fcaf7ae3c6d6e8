// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout is the maximum time allowed for graceful shutdown.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// SigningSecret is the sole key material for the reversible codec.
	// Required unless SigningSecretCiphertext is configured.
	SigningSecret string
	// SigningSecretCiphertext is an optional base64 KMS-wrapped signing secret.
	// When set together with KMSKeyURI, the plaintext secret is recovered at
	// startup through a gocloud.dev secrets keeper.
	SigningSecretCiphertext string
	// KMSKeyURI is the keeper URI used to unwrap SigningSecretCiphertext
	// (e.g., "hashivault://keyname", "base64key://...").
	KMSKeyURI string

	// TokenFormat selects the token wire format: "legacy" (AES-256-CTR,
	// ivHex:cipherHex) or "aead" (ChaCha20-Poly1305, pii2:base64).
	TokenFormat string

	// SanitizeDisabled turns the engine off entirely; every route is out of scope.
	SanitizeDisabled bool
	// AllowlistRoutes restricts sanitization to the listed routes. Entries are
	// matched by literal string equality, not as patterns.
	AllowlistRoutes []string
	// DenylistRoutes exempts the listed routes. Literal string equality as well.
	DenylistRoutes []string
	// RegexToSanitize holds patterns whose matches are masked in place inside
	// string values. Compiled once at startup; a bad pattern is fatal.
	// Separated by ";" in the environment since regex syntax uses commas.
	RegexToSanitize []string
	// FieldsToSanitize switches the engine into explicit allowlist mode: only
	// the listed field names are ever masked via the detect path.
	FieldsToSanitize []string
	// FieldsToSkip exempts the listed field names regardless of any other rule.
	FieldsToSkip []string
	// MaxStringScanLen caps the length of strings subjected to regex scanning.
	// Zero means no cap.
	MaxStringScanLen int

	// RateLimitEnabled indicates whether per-IP rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for per-IP rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 8080),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 30, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Key material
		SigningSecret:           env.GetString("SIGNING_SECRET", ""),
		SigningSecretCiphertext: env.GetString("SIGNING_SECRET_CIPHERTEXT", ""),
		KMSKeyURI:               env.GetString("KMS_KEY_URI", ""),

		// Token format
		TokenFormat: env.GetString("TOKEN_FORMAT", "legacy"),

		// Sanitization policy
		SanitizeDisabled: env.GetBool("SANITIZE_DISABLED", false),
		AllowlistRoutes:  splitList(env.GetString("ALLOWLIST_ROUTES", "")),
		DenylistRoutes:   splitList(env.GetString("DENYLIST_ROUTES", "")),
		RegexToSanitize:  splitListSep(env.GetString("REGEX_TO_SANITIZE", ""), ";"),
		FieldsToSanitize: splitList(env.GetString("FIELDS_TO_SANITIZE", "")),
		FieldsToSkip:     splitList(env.GetString("FIELDS_TO_SKIP", "")),
		MaxStringScanLen: env.GetInt("MAX_STRING_SCAN_LEN", 0),

		// Rate Limiting (per-IP, unauthenticated API)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 25.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 50),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "piimask"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// splitList parses a comma-separated list and trims whitespace.
// Returns nil if the input is empty.
func splitList(raw string) []string {
	return splitListSep(raw, ",")
}

// splitListSep parses a list with the given separator and trims whitespace.
func splitListSep(raw, sep string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, sep)
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}

	if len(items) == 0 {
		return nil
	}
	return items
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
