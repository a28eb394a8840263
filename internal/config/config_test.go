package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "timepulse.db", cfg.Database.Filename)
	assert.Equal(t, 500*time.Millisecond, cfg.Sync.DebounceWindow)
	assert.Equal(t, 30*24*time.Hour, cfg.Sync.TTL)
	assert.Equal(t, 30*time.Minute, cfg.Notification.SuppressionWindow)
	assert.Equal(t, time.Millisecond, cfg.Polling.AlignInterval)
	assert.Equal(t, time.Second, cfg.Polling.SteadyInterval)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("TP_DB_DIR", "/tmp/tp-test")
	t.Setenv("TP_SYNC_DEBOUNCE", "2s")
	t.Setenv("TP_NOTIFY_SUPPRESSION", "10m")
	t.Setenv("TP_POLL_STEADY_INTERVAL", "250ms")
	t.Setenv("TP_APP_VERBOSE", "true")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/tmp/tp-test", cfg.Database.Dir)
	assert.Equal(t, 2*time.Second, cfg.Sync.DebounceWindow)
	assert.Equal(t, 10*time.Minute, cfg.Notification.SuppressionWindow)
	assert.Equal(t, 250*time.Millisecond, cfg.Polling.SteadyInterval)
	assert.True(t, cfg.Application.Verbose)
}

func TestConfig_LoadFromEnvironment_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("TP_SYNC_DEBOUNCE", "not-a-duration")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, 500*time.Millisecond, cfg.Sync.DebounceWindow)
}

func TestConfig_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
sync:
  api_url: https://example.com/api
  debounce_window: 1s
polling:
  steady_interval: 500ms
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "https://example.com/api", cfg.Sync.APIURL)
	assert.Equal(t, time.Second, cfg.Sync.DebounceWindow)
	assert.Equal(t, 500*time.Millisecond, cfg.Polling.SteadyInterval)
	// untouched sections keep their defaults
	assert.Equal(t, "timepulse.db", cfg.Database.Filename)
}

func TestConfig_LoadFromFile_MissingFileIsNotAnError(t *testing.T) {
	cfg := NewConfig()
	assert.NoError(t, cfg.LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "should reject empty database dir",
			mutate: func(c *Config) { c.Database.Dir = "" },
			field:  "database.dir",
		},
		{
			name:   "should reject empty sync URL",
			mutate: func(c *Config) { c.Sync.APIURL = "" },
			field:  "sync.api_url",
		},
		{
			name:   "should reject negative suppression window",
			mutate: func(c *Config) { c.Notification.SuppressionWindow = -time.Minute },
			field:  "notification.suppression_window",
		},
		{
			name:   "should reject align interval not shorter than steady interval",
			mutate: func(c *Config) { c.Polling.AlignInterval = 2 * time.Second },
			field:  "polling.align_interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	t.Setenv("TP_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	debounce := 3 * time.Second
	verbose := true
	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		SyncDebounceWindow: &debounce,
		Verbose:            &verbose,
	})

	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Sync.DebounceWindow)
	assert.True(t, cfg.Application.Verbose)
}
