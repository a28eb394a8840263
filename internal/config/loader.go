package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the optional YAML config file
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromFile(configFilePath()); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFromFile merges settings from a YAML file into the configuration.
// A missing file is not an error; the file layer is optional.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &ConfigError{Field: "config_file", Message: err.Error()}
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &ConfigError{Field: "config_file", Message: "malformed YAML: " + err.Error()}
	}
	return nil
}

// configFilePath resolves the config file location: TP_CONFIG_FILE if set,
// otherwise ~/.timepulse/config.yaml.
func configFilePath() string {
	if path := os.Getenv("TP_CONFIG_FILE"); path != "" {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".timepulse", "config.yaml")
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir      *string
	DBFilename *string

	// Sync overrides
	SyncAPIURL         *string
	SyncDebounceWindow *time.Duration
	SyncTTL            *time.Duration

	// Notification overrides
	NotifySuppressionWindow *time.Duration

	// Polling overrides
	PollAlignInterval  *time.Duration
	PollSteadyInterval *time.Duration

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}

	if overrides.SyncAPIURL != nil {
		config.Sync.APIURL = *overrides.SyncAPIURL
	}
	if overrides.SyncDebounceWindow != nil {
		config.Sync.DebounceWindow = *overrides.SyncDebounceWindow
	}
	if overrides.SyncTTL != nil {
		config.Sync.TTL = *overrides.SyncTTL
	}

	if overrides.NotifySuppressionWindow != nil {
		config.Notification.SuppressionWindow = *overrides.NotifySuppressionWindow
	}

	if overrides.PollAlignInterval != nil {
		config.Polling.AlignInterval = *overrides.PollAlignInterval
	}
	if overrides.PollSteadyInterval != nil {
		config.Polling.SteadyInterval = *overrides.PollSteadyInterval
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
