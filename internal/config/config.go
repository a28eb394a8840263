package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the timepulse application
type Config struct {
	Database     DatabaseConfig     `yaml:"database"`
	Sync         SyncConfig         `yaml:"sync"`
	Notification NotificationConfig `yaml:"notification"`
	Polling      PollingConfig      `yaml:"polling"`
	Application  ApplicationConfig  `yaml:"application"`
}

// DatabaseConfig holds local persistence configuration
type DatabaseConfig struct {
	Dir            string        `yaml:"dir" env:"TP_DB_DIR"`
	Filename       string        `yaml:"filename" env:"TP_DB_FILENAME"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"TP_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"TP_DB_DIR_PERMISSIONS"`
}

// SyncConfig holds remote cache mirroring configuration.
// The debounce window coalesces bursts of local mutations into one push;
// it is a tuning constant, not an invariant, so it lives here.
type SyncConfig struct {
	APIURL         string        `yaml:"api_url" env:"TP_SYNC_API_URL"`
	DebounceWindow time.Duration `yaml:"debounce_window" env:"TP_SYNC_DEBOUNCE"`
	TTL            time.Duration `yaml:"ttl" env:"TP_SYNC_TTL"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"TP_SYNC_REQUEST_TIMEOUT"`
}

// NotificationConfig holds completion notification configuration.
// The suppression window drops reschedules that would fire at nearly the
// same instant with the same title.
type NotificationConfig struct {
	SuppressionWindow time.Duration `yaml:"suppression_window" env:"TP_NOTIFY_SUPPRESSION"`
}

// PollingConfig holds the display polling cadence configuration
type PollingConfig struct {
	AlignInterval  time.Duration `yaml:"align_interval" env:"TP_POLL_ALIGN_INTERVAL"`
	SteadyInterval time.Duration `yaml:"steady_interval" env:"TP_POLL_STEADY_INTERVAL"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TP_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"TP_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".timepulse")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "timepulse.db",
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Sync: SyncConfig{
			APIURL:         "https://cache.ravelloh.top/api",
			DebounceWindow: 500 * time.Millisecond,
			TTL:            30 * 24 * time.Hour,
			RequestTimeout: 15 * time.Second,
		},
		Notification: NotificationConfig{
			SuppressionWindow: 30 * time.Minute,
		},
		Polling: PollingConfig{
			AlignInterval:  time.Millisecond,
			SteadyInterval: time.Second,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TP_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TP_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TP_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.WriteTimeout = d
		}
	}
	if perms := os.Getenv("TP_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// Sync configuration
	if url := os.Getenv("TP_SYNC_API_URL"); url != "" {
		c.Sync.APIURL = url
	}
	if debounce := os.Getenv("TP_SYNC_DEBOUNCE"); debounce != "" {
		if d, err := time.ParseDuration(debounce); err == nil {
			c.Sync.DebounceWindow = d
		}
	}
	if ttl := os.Getenv("TP_SYNC_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Sync.TTL = d
		}
	}
	if timeout := os.Getenv("TP_SYNC_REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Sync.RequestTimeout = d
		}
	}

	// Notification configuration
	if window := os.Getenv("TP_NOTIFY_SUPPRESSION"); window != "" {
		if d, err := time.ParseDuration(window); err == nil {
			c.Notification.SuppressionWindow = d
		}
	}

	// Polling configuration
	if interval := os.Getenv("TP_POLL_ALIGN_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Polling.AlignInterval = d
		}
	}
	if interval := os.Getenv("TP_POLL_STEADY_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Polling.SteadyInterval = d
		}
	}

	// Application configuration
	if timeout := os.Getenv("TP_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("TP_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Sync.APIURL == "" {
		return &ConfigError{Field: "sync.api_url", Message: "sync API URL cannot be empty"}
	}
	if c.Sync.DebounceWindow < 0 {
		return &ConfigError{Field: "sync.debounce_window", Message: "debounce window must not be negative"}
	}
	if c.Sync.TTL <= 0 {
		return &ConfigError{Field: "sync.ttl", Message: "sync TTL must be positive"}
	}
	if c.Sync.RequestTimeout <= 0 {
		return &ConfigError{Field: "sync.request_timeout", Message: "request timeout must be positive"}
	}

	if c.Notification.SuppressionWindow < 0 {
		return &ConfigError{Field: "notification.suppression_window", Message: "suppression window must not be negative"}
	}

	if c.Polling.AlignInterval <= 0 {
		return &ConfigError{Field: "polling.align_interval", Message: "align interval must be positive"}
	}
	if c.Polling.SteadyInterval <= 0 {
		return &ConfigError{Field: "polling.steady_interval", Message: "steady interval must be positive"}
	}
	if c.Polling.AlignInterval >= c.Polling.SteadyInterval {
		return &ConfigError{Field: "polling.align_interval", Message: "align interval must be shorter than the steady interval"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
