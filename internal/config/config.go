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

// Config holds the recodex service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Recommend RecommendConfig `yaml:"recommend"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API keys for the write endpoints.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds the rating log connection settings.
type DatabaseConfig struct {
	Enabled          bool     `yaml:"enabled"` // false keeps ratings in memory
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// DatasetConfig locates the restaurant catalog.
type DatasetConfig struct {
	CatalogPath      string          `yaml:"catalog_path"`
	CatalogFormat    string          `yaml:"catalog_format"` // csv, parquet (default: csv)
	Encoding         string          `yaml:"encoding"`       // latin1, utf8 (default: latin1)
	SyntheticRatings SyntheticConfig `yaml:"synthetic_ratings"`
}

// SyntheticConfig shapes the demo rating history.
type SyntheticConfig struct {
	Count int   `yaml:"count"`
	Users []int `yaml:"users"`
	Seed  int64 `yaml:"seed"`
}

// RecommendConfig tunes the engine and request defaults.
type RecommendConfig struct {
	DefaultTopN  int      `yaml:"default_top_n"`
	Oversample   int      `yaml:"oversample"`
	DefaultAlpha *float64 `yaml:"default_alpha"` // nil = 0.5; 0 is a valid weight
	Seed         int64    `yaml:"seed"`          // cold-start sampler, 0 = clock
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

// Alpha returns the default hybrid weight.
func (r RecommendConfig) Alpha() float64 {
	if r.DefaultAlpha == nil {
		return 0.5
	}
	return *r.DefaultAlpha
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
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
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Dataset.CatalogFormat == "" {
		c.Dataset.CatalogFormat = "csv"
	}
	if c.Dataset.Encoding == "" {
		c.Dataset.Encoding = "latin1"
	}
	if c.Dataset.SyntheticRatings.Count <= 0 {
		c.Dataset.SyntheticRatings.Count = 100
	}
	if len(c.Dataset.SyntheticRatings.Users) == 0 {
		c.Dataset.SyntheticRatings.Users = []int{101, 102, 103, 104, 105}
	}
	if c.Recommend.DefaultTopN <= 0 {
		c.Recommend.DefaultTopN = 5
	}
	if c.Recommend.Oversample <= 0 {
		c.Recommend.Oversample = 10
	}
	if c.Recommend.DefaultAlpha == nil {
		alpha := 0.5
		c.Recommend.DefaultAlpha = &alpha
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Database.Enabled && len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required when database.enabled")
	}
	if c.Dataset.CatalogPath == "" {
		return fmt.Errorf("dataset.catalog_path is required")
	}
	switch c.Dataset.CatalogFormat {
	case "csv", "parquet":
	default:
		return fmt.Errorf("dataset.catalog_format must be \"csv\" or \"parquet\", got %q", c.Dataset.CatalogFormat)
	}
	switch c.Dataset.Encoding {
	case "latin1", "utf8":
	default:
		return fmt.Errorf("dataset.encoding must be \"latin1\" or \"utf8\", got %q", c.Dataset.Encoding)
	}
	if a := c.Recommend.DefaultAlpha; a != nil && (*a < 0 || *a > 1) {
		return fmt.Errorf("recommend.default_alpha must be within [0, 1], got %v", *a)
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
