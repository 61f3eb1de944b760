package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"cashchange/internal/core"
)

type Config struct {
	// HTTP Server
	Port            string
	ShutdownTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Register
	CurrencyCode   string
	CurrencySymbol string
	NoteThreshold  int64
	Denominations  string

	// Presentation
	NoticeDuration     time.Duration
	RateLimitPerMinute int
}

// LoadEnvFile loads a .env file for local development.
// A missing file is not an error; production sets real variables.
func LoadEnvFile(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

func Load() *Config {
	cfg := &Config{
		Port:            getEnv("PORT", "8081"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		CurrencyCode:   getEnv("CURRENCY_CODE", core.INR.Code),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", core.INR.Symbol),
		NoteThreshold:  int64(getEnvInt("NOTE_THRESHOLD", int(core.INR.NoteThreshold))),
		Denominations:  getEnv("DENOMINATIONS", core.DefaultDenominations().String()),

		NoticeDuration:     getEnvDuration("NOTICE_DURATION", 5*time.Second),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}
	validFormats := []string{"text", "json"}
	if !contains(validFormats, strings.ToLower(c.LogFormat)) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validFormats))
	}

	if strings.TrimSpace(c.CurrencyCode) == "" {
		errors = append(errors, "currency code cannot be empty")
	}
	if strings.TrimSpace(c.CurrencySymbol) == "" {
		errors = append(errors, "currency symbol cannot be empty")
	}
	if c.NoteThreshold < 1 {
		errors = append(errors, fmt.Sprintf("invalid note threshold %d: must be at least 1", c.NoteThreshold))
	}

	if _, err := core.ParseDenominationSet(c.Denominations); err != nil {
		errors = append(errors, fmt.Sprintf("invalid denominations '%s': %v", c.Denominations, err))
	}

	if c.NoticeDuration < 0 {
		errors = append(errors, fmt.Sprintf("invalid notice duration %v: must not be negative", c.NoticeDuration))
	} else if c.NoticeDuration > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid notice duration %v: must be at most 1 minute", c.NoticeDuration))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitPerMinute))
	}

	if c.ShutdownTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Register builds the register the configuration describes. Call Validate first.
func (c *Config) Register() (core.Register, error) {
	set, err := core.ParseDenominationSet(c.Denominations)
	if err != nil {
		return core.Register{}, fmt.Errorf("parse denominations: %w", err)
	}
	return core.Register{
		Currency: core.Currency{
			Code:          c.CurrencyCode,
			Symbol:        c.CurrencySymbol,
			NoteThreshold: c.NoteThreshold,
		},
		Denominations: set,
	}, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
