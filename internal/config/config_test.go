package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshafiee/calceph"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvEphemeris, EnvBackend, EnvPrefetch, EnvLogLevel, EnvLogFormat, EnvPositionUnit, EnvTimeUnit} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "auto", cfg.Backend)
	assert.Equal(t, "au", cfg.PositionUnit)
	assert.Equal(t, "day", cfg.TimeUnit)
	assert.False(t, cfg.Prefetch)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "calceph.yaml")
	data := `
ephemeris: [de405.bin, a.bsp]
backend: jplde
prefetch: true
position_unit: km
time_unit: sec
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"de405.bin", "a.bsp"}, cfg.Ephemeris)
	assert.Equal(t, "jplde", cfg.Backend)
	assert.True(t, cfg.Prefetch)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	pu, tu, err := cfg.Units()
	require.NoError(t, err)
	assert.Equal(t, calceph.Kilometer, pu)
	assert.Equal(t, calceph.Second, tu)
	assert.Len(t, cfg.OpenOptions(), 2)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "calceph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: calceph\nposition_unit: km\n"), 0644))

	t.Setenv(EnvEphemeris, strings.Join([]string{"one.bin", "two.bin"}, string(os.PathListSeparator)))
	t.Setenv(EnvBackend, "jplde")
	t.Setenv(EnvPrefetch, "true")
	t.Setenv(EnvPositionUnit, "au")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one.bin", "two.bin"}, cfg.Ephemeris)
	assert.Equal(t, "jplde", cfg.Backend)
	assert.True(t, cfg.Prefetch)
	assert.Equal(t, "au", cfg.PositionUnit)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadWithoutFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("bad prefetch", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvPrefetch, "sometimes")
		_, err := Load("")
		assert.ErrorContains(t, err, EnvPrefetch)
	})
	t.Run("bad yaml", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "calceph.yaml")
		require.NoError(t, os.WriteFile(path, []byte("backend: [\n"), 0644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"unknown backend", func(c *Config) { c.Backend = "spice" }, "backend"},
		{"unknown position unit", func(c *Config) { c.PositionUnit = "parsec" }, "position unit"},
		{"unknown time unit", func(c *Config) { c.TimeUnit = "year" }, "time unit"},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
		{"empty path", func(c *Config) { c.Ephemeris = []string{" "} }, "empty ephemeris path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "calceph.yaml")
	cfg := DefaultConfig()
	cfg.Ephemeris = []string{"de440.bin"}
	cfg.Prefetch = true
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
