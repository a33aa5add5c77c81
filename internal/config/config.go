// Package config provides configuration loading for Blogly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSecretKey signs flash cookies when nothing else is configured. It is
// only fit for local development.
const DefaultSecretKey = "blogly-development-secret"

// Config represents the complete Blogly configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	// Addr is the listen address (default: :8080)
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig configures the database connection
type DatabaseConfig struct {
	// URL is a sqlite:// or postgres:// connection URL
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	// Echo logs every SQL statement
	Echo          bool          `yaml:"echo"`
	SlowThreshold time.Duration `yaml:"slow_threshold"`
}

// SessionConfig holds the secret used to sign flash cookies
type SessionConfig struct {
	SecretKey string `yaml:"secret_key"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	// Development switches to zap's human-readable console encoder
	Development bool `yaml:"development"`
	Verbose     bool `yaml:"verbose"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			URL:             "sqlite://blogly.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			SlowThreshold:   200 * time.Millisecond,
		},
		Session: SessionConfig{
			SecretKey: DefaultSecretKey,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns must not be negative")
	}
	if c.Session.SecretKey == "" {
		return fmt.Errorf("session.secret_key is required")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// ApplyEnv overrides values from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("DATABASE_URL"); ok && v != "" {
		c.Database.URL = v
	}
	if v, ok := lookup("SECRET_KEY"); ok && v != "" {
		c.Session.SecretKey = v
	}
	if v, ok := lookup("BLOGLY_ADDR"); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup("BLOGLY_SQL_ECHO"); ok && v != "" {
		echo, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("BLOGLY_SQL_ECHO: %w", err)
		}
		c.Database.Echo = echo
	}
	return nil
}
