// Package cli provides common initialization shared by cmd/cashchange and
// cmd/cashchange-cli.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cashchange/internal/config"
	"cashchange/internal/core"
	applog "cashchange/internal/log"
)

// SetupLogger builds the process logger from configuration and installs it
// as the slog default.
func SetupLogger(cfg *config.Config, component string) *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: component,
		Output:    os.Stdout,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadConfig loads the optional .env file and the environment, then
// validates the result.
func LoadConfig() (*config.Config, error) {
	config.LoadEnvFile()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewRegister builds the register and warns when greedy change is not
// always minimal for the configured denominations.
func NewRegister(cfg *config.Config, logger *applog.Logger) (core.Register, error) {
	register, err := cfg.Register()
	if err != nil {
		return core.Register{}, fmt.Errorf("build register: %w", err)
	}
	if !register.Denominations.IsCanonical() {
		logger.WithComponent(applog.ComponentConfig).Warn("Denominations are not canonical; breakdowns may use more pieces than necessary",
			applog.FieldDenominations, register.Denominations.String())
	}
	return register, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
