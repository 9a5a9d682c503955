package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, 4096, cfg.MaxQubits)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("QKDSIM_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("MAX_QUBITS", "128")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, 128, cfg.MaxQubits)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("QKDSIM_PORT", "-1")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("QKDSIM_PORT", "8080")
	t.Setenv("MAX_QUBITS", "0")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("QKDSIM_PORT", "not-a-number")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}
