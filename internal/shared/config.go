package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Remote   RemoteConfig   `toml:"remote"`
	View     ViewConfig     `toml:"view"`
	Log      LogConfig      `toml:"log"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

// RemoteConfig contains the employee service connection settings.
type RemoteConfig struct {
	BaseURL        string  `toml:"base_url"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	Retries        int     `toml:"retries"`
	RateLimit      float64 `toml:"rate_limit"`
}

// Timeout returns the request timeout, or zero for none.
func (r RemoteConfig) Timeout() time.Duration {
	if r.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// ViewConfig contains list display defaults.
type ViewConfig struct {
	PageSize int    `toml:"page_size"`
	Sort     string `toml:"sort"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DatabaseConfig contains database connection settings for the sandbox service.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings for the sandbox service.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadConfigOrDefault loads the config at path, falling back to defaults when the file does not exist.
func LoadConfigOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate checks value ranges that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.View.PageSize < 1 {
		return fmt.Errorf("%w: view.page_size must be at least 1", ErrInvalidConfig)
	}
	if c.View.Sort != "newest" && c.View.Sort != "oldest" {
		return fmt.Errorf("%w: view.sort must be newest or oldest, got %q", ErrInvalidConfig, c.View.Sort)
	}
	if c.Remote.Retries < 0 {
		return fmt.Errorf("%w: remote.retries cannot be negative", ErrInvalidConfig)
	}
	if c.Remote.RateLimit < 0 {
		return fmt.Errorf("%w: remote.rate_limit cannot be negative", ErrInvalidConfig)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
