package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"ghnode/pkg/config"
)

func TestNewLogger(t *testing.T) {
	t.Cleanup(func() { verbose = false })

	cfg := config.DefaultConfig()
	logger, err := newLogger(cfg)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	cfg.Log.Level = "error"
	logger, err = newLogger(cfg)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))

	verbose = true
	logger, err = newLogger(cfg)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.Level = "loud"

	_, err := newLogger(cfg)
	assert.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	configPath = t.TempDir() + "/config.yaml"
	t.Cleanup(func() { configPath = "" })
	t.Setenv("GHNODE_GITHUB_URL", "not a url")

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
