package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the habitai API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Database DatabaseConfig `yaml:"database"`
	Feedback FeedbackConfig `yaml:"feedback"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port               int      `yaml:"port"`
	ReadTimeoutSec     int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec    int      `yaml:"write_timeout_sec"`
	ShutdownSec        int      `yaml:"shutdown_timeout_sec"`
	CORSOrigins        []string `yaml:"cors_origins"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"` // per client IP, 0 = off
}

// DatasetConfig selects where neighborhoods are read from.
type DatasetConfig struct {
	Driver    string `yaml:"driver"` // csv, redis (default: csv)
	Path      string `yaml:"path"`
	KeyPrefix string `yaml:"key_prefix"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, valkey (default: redis)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// FeedbackConfig selects the rating sample handed to the scoring engine.
type FeedbackConfig struct {
	Source string `yaml:"source"` // empty, static (default: empty)
}

// ScoringConfig tunes the scoring engine and the rating regressor.
type ScoringConfig struct {
	TopN        int     `yaml:"top_n"`
	MinFeedback int     `yaml:"min_feedback"`
	Trees       int     `yaml:"trees"`
	MaxDepth    int     `yaml:"max_depth"`
	Seed        int64   `yaml:"seed"` // 0 = 42
	Epsilon     float64 `yaml:"epsilon"`
}

// Dataset and database drivers.
const (
	DriverCSV    = "csv"
	DriverRedis  = "redis"
	DriverValkey = "valkey"
)

// UsesDatabase reports whether the dataset lives in Redis.
func (c *Config) UsesDatabase() bool {
	return c.Dataset.Driver == DriverRedis
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Dataset.Driver == "" {
		c.Dataset.Driver = DriverCSV
	}
	if c.Dataset.Path == "" {
		c.Dataset.Path = "assets/dataset-barrios.csv"
	}
	if c.Dataset.KeyPrefix == "" {
		c.Dataset.KeyPrefix = "habitai:"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverRedis
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Feedback.Source == "" {
		c.Feedback.Source = "empty"
	}
	if c.Scoring.TopN <= 0 {
		c.Scoring.TopN = 8
	}
	if c.Scoring.MinFeedback <= 0 {
		c.Scoring.MinFeedback = 5
	}
	if c.Scoring.Trees <= 0 {
		c.Scoring.Trees = 500
	}
	if c.Scoring.MaxDepth <= 0 {
		c.Scoring.MaxDepth = 5
	}
	if c.Scoring.Seed == 0 {
		c.Scoring.Seed = 42
	}
	if c.Scoring.Epsilon <= 0 {
		c.Scoring.Epsilon = 0.001
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.HTTP.RateLimitPerMinute < 0 {
		return fmt.Errorf("http.rate_limit_per_minute must be >= 0, got %d", c.HTTP.RateLimitPerMinute)
	}
	switch c.Dataset.Driver {
	case DriverCSV, DriverRedis:
	default:
		return fmt.Errorf("dataset.driver must be \"csv\" or \"redis\", got %q", c.Dataset.Driver)
	}
	switch c.Database.Driver {
	case DriverRedis, DriverValkey:
	default:
		return fmt.Errorf("database.driver must be \"redis\" or \"valkey\", got %q", c.Database.Driver)
	}
	if c.UsesDatabase() && len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required when dataset.driver is %q", DriverRedis)
	}
	switch c.Feedback.Source {
	case "empty", "static":
	default:
		return fmt.Errorf("feedback.source must be \"empty\" or \"static\", got %q", c.Feedback.Source)
	}
	if c.Scoring.TopN > 100 {
		return fmt.Errorf("scoring.top_n must be <= 100, got %d", c.Scoring.TopN)
	}
	if c.Scoring.Trees > 5000 {
		return fmt.Errorf("scoring.trees must be <= 5000, got %d", c.Scoring.Trees)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
