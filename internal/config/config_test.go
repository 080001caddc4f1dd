package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"QPLOT_PORT", "QPLOT_WIDTH", "QPLOT_HEIGHT", "QPLOT_LOG_LEVEL", "QPLOT_DEV_MODE"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{Port: 8080, Width: 800, Height: 600, LogLevel: "info"}, cfg)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("QPLOT_PORT", "9090")
	t.Setenv("QPLOT_WIDTH", "1024")
	t.Setenv("QPLOT_HEIGHT", "768")
	t.Setenv("QPLOT_LOG_LEVEL", "debug")
	t.Setenv("QPLOT_DEV_MODE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 768, cfg.Height)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.DevMode)
}

func TestLoadIgnoresUnparsable(t *testing.T) {
	clearEnv(t)
	t.Setenv("QPLOT_PORT", "eighty")
	t.Setenv("QPLOT_DEV_MODE", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.DevMode)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{Port: 8080, Width: 800, Height: 600}, false},
		{"port zero", Config{Port: 0, Width: 800, Height: 600}, true},
		{"port too large", Config{Port: 70000, Width: 800, Height: 600}, true},
		{"zero width", Config{Port: 8080, Width: 0, Height: 600}, true},
		{"negative height", Config{Port: 8080, Width: 800, Height: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
