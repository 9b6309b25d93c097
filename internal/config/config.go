// Package config loads and validates ecoshare configuration.
//
// Values are resolved in order: built-in defaults, $ECOSHARE_HOME/config.yaml,
// a .env file in the working directory, then ECOSHARE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Defaults.
const (
	DefaultPrecision     = 2
	DefaultCacheTTL      = 3600
	DefaultAddr          = ":8080"
	configFileName       = "config.yaml"
	homeDirName          = ".ecoshare"
	outputTypeFile       = "file"
	maxPrecision         = 6
	minCacheTTLSeconds   = 0
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	configFilePermission = 0o600
	configDirPermission  = 0o750
)

// Environment variables.
const (
	EnvHome         = "ECOSHARE_HOME"
	EnvLogLevel     = "ECOSHARE_LOG_LEVEL"
	EnvLogFormat    = "ECOSHARE_LOG_FORMAT"
	EnvOutputFormat = "ECOSHARE_OUTPUT_FORMAT"
	EnvCacheEnabled = "ECOSHARE_CACHE_ENABLED"
	EnvCacheTTL     = "ECOSHARE_CACHE_TTL_SECONDS"
	EnvAddr         = "ECOSHARE_ADDR"
)

// Validation errors.
var (
	ErrInvalidFormat    = errors.New("output format must be one of table, json, ndjson")
	ErrInvalidPrecision = fmt.Errorf("precision must be between 0 and %d", maxPrecision)
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidCacheTTL  = errors.New("cache ttl_seconds cannot be negative")
	ErrEmptyAddr        = errors.New("server addr cannot be empty")
)

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Precision     int    `yaml:"precision"      json:"precision"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// CacheConfig controls the on-disk report cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"             json:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds"         json:"ttl_seconds"`
	Directory  string `yaml:"directory,omitempty" json:"directory,omitempty"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr           string   `yaml:"addr"                      json:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty" json:"allowed_origins,omitempty"`
}

// Config is the full ecoshare configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output"  json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Cache   CacheConfig   `yaml:"cache"   json:"cache"`
	Server  ServerConfig  `yaml:"server"  json:"server"`

	// path is the file the configuration was loaded from.
	path string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     DefaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: DefaultCacheTTL,
			Directory:  filepath.Join(HomeDir(), "cache"),
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
		path: ConfigPath(),
	}
}

// HomeDir returns the ecoshare home directory: $ECOSHARE_HOME, or
// ~/.ecoshare, or ./.ecoshare when the user home cannot be determined.
func HomeDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return homeDirName
	}
	return filepath.Join(home, homeDirName)
}

// ConfigPath returns the path of the global config file.
func ConfigPath() string {
	return filepath.Join(HomeDir(), configFileName)
}

// New loads the configuration from defaults, the config file, .env and the
// environment. A missing or unreadable config file leaves the defaults in
// place; use Load to surface file errors.
func New() *Config {
	cfg, err := Load(ConfigPath())
	if err != nil {
		cfg = Default()
		applyEnvOverrides(cfg)
	}
	return cfg
}

// Load reads the config file at path on top of the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	if _, err := os.Stat(path); err == nil {
		if mergeErr := ShallowMergeYAML(cfg, path); mergeErr != nil {
			return nil, mergeErr
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking config file %s: %w", path, err)
	}

	// .env never overrides variables already present in the environment.
	_ = godotenv.Load()

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Path returns the file this configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirPermission); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err = os.WriteFile(path, data, configFilePermission); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	c.path = path
	return nil
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidFormat, c.Output.DefaultFormat)
	}

	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		return fmt.Errorf("%w: got %d", ErrInvalidPrecision, c.Output.Precision)
	}

	if err := validateLogLevel(c.Logging.Level); err != nil {
		return err
	}

	if c.Cache.TTLSeconds < minCacheTTLSeconds {
		return fmt.Errorf("%w: got %d", ErrInvalidCacheTTL, c.Cache.TTLSeconds)
	}

	if c.Server.Addr == "" {
		return ErrEmptyAddr
	}

	return nil
}

func validateLogLevel(level string) error {
	switch level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}
}

// EnsureLogDir creates the directory of the configured log file.
func (c *Config) EnsureLogDir() error {
	if c.Logging.File == "" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(c.Logging.File), configDirPermission)
}

//nolint:gochecknoglobals // Process-wide configuration loaded once per invocation.
var (
	globalConfig   *Config
	globalConfigMu sync.Mutex
)

// GetGlobalConfig returns the process-wide configuration, loading it on
// first use.
func GetGlobalConfig() *Config {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	if globalConfig == nil {
		globalConfig = New()
	}
	return globalConfig
}

// ResetGlobalConfigForTest drops the cached global configuration so the next
// GetGlobalConfig call reloads it.
func ResetGlobalConfigForTest() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
}
