package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// ServerConfig contains HTTP server configuration for the dashboard API.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PipelineConfig contains extraction and modeling configuration.
type PipelineConfig struct {
	// SyntheticSeed seeds the fallback generator so test runs are reproducible.
	SyntheticSeed int64 `yaml:"synthetic_seed" envconfig:"SYNTHETIC_SEED"`
	// RowTolerance is the Y-coordinate tolerance when grouping PDF text runs
	// into table rows.
	RowTolerance float64 `yaml:"row_tolerance" envconfig:"ROW_TOLERANCE" validate:"gt=0"`
	// MaxPayloadRunes clips free-text payloads before they enter the raw table.
	MaxPayloadRunes int `yaml:"max_payload_runes" envconfig:"MAX_PAYLOAD_RUNES" validate:"gt=0"`
}

// PathsConfig overrides the default executable-relative base directory.
type PathsConfig struct {
	BaseDir string `yaml:"base_dir" envconfig:"BASE_DIR"`
}

// RateLimitConfig contains dashboard API rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gt=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"gt=0"`
}

// Load reads configuration from an optional config.yaml and the environment,
// environment taking precedence. The SPORTSIGHT_ prefix applies to all
// variables, e.g. SPORTSIGHT_SERVER_PORT.
func Load() (*Config, error) {
	cfg := Default()

	if path := findConfigFile(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("SPORTSIGHT", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// ResolvePaths returns the path set for this configuration: the configured
// base directory when set, the executable directory otherwise.
func (c *Config) ResolvePaths() (*Paths, error) {
	if c.Paths.BaseDir != "" {
		return NewPaths(c.Paths.BaseDir), nil
	}
	return GetPaths()
}

// findConfigFile probes the conventional config file locations.
func findConfigFile() string {
	for _, location := range []string{"config.yaml", "configs/config.yaml"} {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Pipeline: PipelineConfig{
			SyntheticSeed:   42,
			RowTolerance:    2.0,
			MaxPayloadRunes: 500,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     50,
			Burst:   25,
		},
	}
}
