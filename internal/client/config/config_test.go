package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://sore-puce-magpie-sari.cyclic.app", c.ServerBaseURL)
	assert.Equal(t, 2*time.Second, c.RequestTimeout)
	assert.Empty(t, c.FallbackErrorMessage)
	assert.Equal(t, slog.LevelWarn, c.SlogLevel())
}

func TestLoadConfig_UsesDefaultsWithoutArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"client"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
}

func TestSlogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelWarn,
	} {
		c := Config{LogLevel: in}
		assert.Equal(t, want, c.SlogLevel(), in)
	}
}
