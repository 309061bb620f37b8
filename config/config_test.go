package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "", "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "embedded", cfg.NetworkSource)
	assert.Equal(t, 30.0, cfg.SpeedKmh)
	assert.Equal(t, 100000, cfg.MaxIterations)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.CORSAllowAll)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "ratp.yaml")
	require.NoError(t, os.WriteFile(file, []byte("speed_kmh: 25\nlisten_addr: \":9000\"\nlog_level: debug\n"), 0o644))

	t.Setenv("RATP_SPEED_KMH", "42")
	t.Setenv("RATP_CORS_ALLOW_ALL", "false")

	v := New()
	v.Set(KeyMaxIterations, 500)
	cfg, err := Load(v, "", file)
	require.NoError(t, err)

	assert.Equal(t, 42.0, cfg.SpeedKmh, "env beats file")
	assert.Equal(t, ":9000", cfg.ListenAddr, "file beats default")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.CORSAllowAll)
	assert.Equal(t, 500, cfg.MaxIterations)
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("RATP_NETWORK_SOURCE=/srv/paris.db\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("RATP_NETWORK_SOURCE") })

	cfg, err := Load(New(), dotenv, "")
	require.NoError(t, err)
	assert.Equal(t, "/srv/paris.db", cfg.NetworkSource)

	_, err = Load(New(), filepath.Join(dir, "missing.env"), "")
	assert.NoError(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
	}{
		{"zero speed", "RATP_SPEED_KMH", "0"},
		{"negative iterations", "RATP_MAX_ITERATIONS", "-5"},
		{"unknown level", "RATP_LOG_LEVEL", "chatty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)
			_, err := Load(New(), "", "")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(New(), "", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("warn")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
