//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-secdata.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Datastore mode names. Each mode has its own datastore section.
const (
	ModeTest       = "test"
	ModeUAT        = "uat"
	ModeProduction = "production"
)

// Config holds all configuration for pgedge-secdata.
type Config struct {
	// Mode is the datastore mode used by CLI commands (test, uat, production).
	Mode string `mapstructure:"mode"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// LogPretty selects console output instead of JSON lines on stderr.
	LogPretty bool `mapstructure:"log_pretty"`

	// LogFile is an optional path for a rotated copy of the log.
	LogFile string `mapstructure:"log_file"`

	// Datastores holds connection parameters keyed by mode name.
	Datastores map[string]DatastoreConfig `mapstructure:"datastores"`

	// Server holds configuration for the serve subcommand.
	Server ServerConfig `mapstructure:"server"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`
}

// DatastoreConfig holds the PostgreSQL connection parameters for one mode.
type DatastoreConfig struct {
	// Connection is a full connection string; when set it overrides the
	// discrete fields below.
	Connection string `mapstructure:"connection"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`

	// MaxConns caps the connection pool size.
	MaxConns int `mapstructure:"max_conns"`
}

// ServerConfig holds configuration for the HTTP API.
type ServerConfig struct {
	// Listen is the address the HTTP server binds to.
	Listen string `mapstructure:"listen"`

	// GinMode is passed to gin.SetMode (debug, release, test).
	GinMode string `mapstructure:"gin_mode"`
}

// SeedConfig holds configuration for fake data seeding.
type SeedConfig struct {
	// Count is the number of records generated per entity kind.
	Count int `mapstructure:"count"`

	// Seed makes generated data reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Mode:       ModeTest,
		LogLevel:   "info",
		LogPretty:  true,
		Datastores: map[string]DatastoreConfig{},
		Server: ServerConfig{
			Listen:  ":8080",
			GinMode: "release",
		},
		Seed: SeedConfig{
			Count: 20,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-secdata.yaml
// 3. ~/.config/pgedge-secdata/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("pgedge-secdata")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-secdata"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal config file values
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeTest, ModeUAT, ModeProduction:
	default:
		return fmt.Errorf("mode must be one of test, uat, production (got %q)", c.Mode)
	}
	if _, err := c.Datastore(c.Mode); err != nil {
		return err
	}
	return nil
}

// ValidateServe checks configuration required for the serve command.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Server.Listen == "" {
		return fmt.Errorf("server listen address is required")
	}
	switch c.Server.GinMode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("server gin_mode must be one of debug, release, test (got %q)", c.Server.GinMode)
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Seed.Count < 1 {
		return fmt.Errorf("seed count must be at least 1")
	}
	return nil
}

// Datastore returns the connection parameters configured for a mode.
func (c *Config) Datastore(mode string) (DatastoreConfig, error) {
	ds, ok := c.Datastores[mode]
	if !ok {
		return DatastoreConfig{}, fmt.Errorf("no datastore configured for mode %q", mode)
	}
	if ds.Connection == "" && ds.Host == "" {
		return DatastoreConfig{}, fmt.Errorf("datastore for mode %q needs a connection string or host", mode)
	}
	return ds, nil
}

// ConnString builds a PostgreSQL connection URL from the datastore parameters.
func (d DatastoreConfig) ConnString() string {
	if d.Connection != "" {
		return d.Connection
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   d.Host,
		Path:   "/" + d.DBName,
	}
	if d.Port > 0 {
		u.Host = d.Host + ":" + strconv.Itoa(d.Port)
	}
	if d.User != "" {
		if d.Password != "" {
			u.User = url.UserPassword(d.User, d.Password)
		} else {
			u.User = url.User(d.User)
		}
	}
	if d.SSLMode != "" {
		q := url.Values{}
		q.Set("sslmode", d.SSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
