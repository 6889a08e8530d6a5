package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	pberror "github.com/msto63/pibench/foundation/core/error"
	pblog "github.com/msto63/pibench/foundation/core/log"
)

// EnvConfigPath names the environment variable holding a config file path
const EnvConfigPath = "PIBENCH_CONFIG"

// Benchmark execution modes
const (
	ModeGoroutine = "goroutine"
	ModeProcess   = "process"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Bench   BenchConfig   `toml:"bench" yaml:"bench"`
	History HistoryConfig `toml:"history" yaml:"history"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// BenchConfig holds benchmark execution settings
type BenchConfig struct {
	Mode          string `toml:"mode" yaml:"mode"`
	GuardDigits   int    `toml:"guard_digits" yaml:"guard_digits"`
	MaxIterations int    `toml:"max_iterations" yaml:"max_iterations"`
}

// HistoryConfig holds run history settings
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, configError("config file not found: "+path, nil).WithDetail("path", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, configError("failed to parse config", err).WithDetail("path", path)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, configError("failed to read config", err).WithDetail("path", path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, configError("failed to parse config", err).WithDetail("path", path)
		}
	default:
		return nil, configError("unsupported config format (use .toml, .yaml or .yml)", nil).WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by PIBENCH_CONFIG. Without the variable
// the defaults are returned; a config file is never required.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = pblog.DefaultLevel().String()
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "json"
	}

	if c.Bench.Mode == "" {
		c.Bench.Mode = ModeGoroutine
	}
	if c.Bench.GuardDigits == 0 {
		c.Bench.GuardDigits = 10
	}

	if c.History.Path == "" {
		c.History.Path = "./data/pibench.db"
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// Validate checks the configuration for values the benchmark cannot use
func (c *Config) Validate() error {
	if _, err := pblog.ParseLevel(c.General.LogLevel); err != nil {
		return configError("invalid general.log_level", err).WithDetail("value", c.General.LogLevel)
	}
	if _, err := pblog.ParseFormat(c.General.LogFormat); err != nil {
		return configError("invalid general.log_format", err).WithDetail("value", c.General.LogFormat)
	}

	switch c.Bench.Mode {
	case ModeGoroutine, ModeProcess:
	default:
		return configError("bench.mode must be goroutine or process", nil).WithDetail("value", c.Bench.Mode)
	}
	if c.Bench.GuardDigits < 1 {
		return configError("bench.guard_digits must be positive", nil).WithDetail("value", c.Bench.GuardDigits)
	}
	if c.Bench.MaxIterations < 0 {
		return configError("bench.max_iterations must not be negative", nil).WithDetail("value", c.Bench.MaxIterations)
	}

	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return configError("history.path is required when history is enabled", nil)
	}
	return nil
}

func configError(message string, cause error) *pberror.Error {
	var e *pberror.Error
	if cause != nil {
		e = pberror.Wrap(cause, message)
	} else {
		e = pberror.New(message)
	}
	return e.WithCode(pberror.CodeConfigError).WithOperation("config.Load")
}
