package cli

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashchange/internal/config"
	applog "cashchange/internal/log"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CURRENCY_CODE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "INR", cfg.CurrencyCode)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("DENOMINATIONS", "5,2")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestNewRegister(t *testing.T) {
	t.Setenv("DENOMINATIONS", "4,3,1")
	cfg := config.Load()

	register, err := NewRegister(cfg, applog.New(applog.Config{Output: io.Discard}))
	require.NoError(t, err)
	assert.False(t, register.Denominations.IsCanonical())
	assert.Equal(t, "4,3,1", register.Denominations.String())
}

func TestSetupLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	logger := SetupLogger(config.Load(), applog.ComponentCLI)

	assert.Equal(t, applog.ComponentCLI, logger.Component())
}
