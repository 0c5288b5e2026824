package config

import (
	"fmt"
	"net/mail"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Env      string
	HTTPAddr string
	BaseURL  string

	LogLevel string

	RateLimitRPM int

	InviteTTLDays  int
	EmailTimeoutMS int

	SendGridAPIKey    string
	SendGridFromEmail string
}

// DefaultFromEmail is used when SENDGRID_FROM_EMAIL is not set.
const DefaultFromEmail = "invitations@lanelink.io"

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Env = strings.TrimSpace(os.Getenv("LL_ENV"))
	if cfg.Env == "" {
		return nil, fmt.Errorf("LL_ENV is required")
	}
	if cfg.Env != "dev" && cfg.Env != "prod" {
		return nil, fmt.Errorf("LL_ENV must be one of: dev, prod (got: %s)", cfg.Env)
	}

	cfg.HTTPAddr = getEnvOrDefault("LL_HTTP_ADDR", ":8080")

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("LL_BASE_URL")), "/")
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("LL_BASE_URL is required")
	}

	cfg.LogLevel = getEnvOrDefault("LL_LOG_LEVEL", "info")
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("LL_LOG_LEVEL must be one of: debug, info, warn, error (got: %s)", cfg.LogLevel)
	}

	var err error
	cfg.RateLimitRPM, err = getEnvIntOrDefault("LL_RATE_LIMIT_RPM", 60)
	if err != nil {
		return nil, err
	}

	cfg.InviteTTLDays, err = getEnvIntOrDefault("LL_INVITE_TTL_DAYS", 30)
	if err != nil {
		return nil, err
	}
	if cfg.InviteTTLDays <= 0 {
		return nil, fmt.Errorf("LL_INVITE_TTL_DAYS must be positive (got: %d)", cfg.InviteTTLDays)
	}

	cfg.EmailTimeoutMS, err = getEnvIntOrDefault("LL_EMAIL_TIMEOUT_MS", 5000)
	if err != nil {
		return nil, err
	}
	if cfg.EmailTimeoutMS <= 0 || cfg.EmailTimeoutMS > 30000 {
		return nil, fmt.Errorf("LL_EMAIL_TIMEOUT_MS must be between 1 and 30000 (got: %d)", cfg.EmailTimeoutMS)
	}

	// An absent API key is not an error: the email client falls back to
	// logging payloads and returning a synthetic message id.
	cfg.SendGridAPIKey = strings.TrimSpace(os.Getenv("SENDGRID_API_KEY"))

	cfg.SendGridFromEmail = getEnvOrDefault("SENDGRID_FROM_EMAIL", DefaultFromEmail)
	if _, err := mail.ParseAddress(cfg.SendGridFromEmail); err != nil {
		return nil, fmt.Errorf("SENDGRID_FROM_EMAIL is not a valid address (got: %q)", cfg.SendGridFromEmail)
	}

	return cfg, nil
}

// IsDev returns true if running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "dev"
}

// EmailEnabled reports whether a transport credential is configured.
func (c *Config) EmailEnabled() bool {
	return c.SendGridAPIKey != ""
}

// RedactedValues returns a map of config values with secrets redacted.
func (c *Config) RedactedValues() map[string]string {
	apiKey := "[UNSET]"
	if c.SendGridAPIKey != "" {
		apiKey = "[REDACTED]"
	}
	return map[string]string{
		"LL_ENV":              c.Env,
		"LL_HTTP_ADDR":        c.HTTPAddr,
		"LL_BASE_URL":         c.BaseURL,
		"LL_LOG_LEVEL":        c.LogLevel,
		"LL_RATE_LIMIT_RPM":   fmt.Sprintf("%d", c.RateLimitRPM),
		"LL_INVITE_TTL_DAYS":  fmt.Sprintf("%d", c.InviteTTLDays),
		"LL_EMAIL_TIMEOUT_MS": fmt.Sprintf("%d", c.EmailTimeoutMS),
		"SENDGRID_API_KEY":    apiKey,
		"SENDGRID_FROM_EMAIL": c.SendGridFromEmail,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer (got: %q)", key, value)
	}
	return parsed, nil
}
