package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	defaultLogLevel       = "warn"
	defaultSignalLogRPS   = 1.0
	defaultSignalLogBurst = 3
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > Environment variables > YAML config > Defaults
type Config struct {
	// Dir holds the environment files. Empty means the working directory.
	Dir            string  `yaml:"dir"`
	MergeLeft      bool    `yaml:"merge_left"`
	Detach         bool    `yaml:"detach"`
	LogLevel       string  `yaml:"log_level"`
	SignalLogRPS   float64 `yaml:"-"`
	SignalLogBurst int     `yaml:"-"`
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Dir       string        `yaml:"dir"`
	MergeLeft *bool         `yaml:"merge_left"`
	Detach    *bool         `yaml:"detach"`
	LogLevel  string        `yaml:"log_level"`
	SignalLog yamlSignalLog `yaml:"signal_log"`
}

// yamlSignalLog represents the signal_log section in YAML.
type yamlSignalLog struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile string
	Dir        *string
	MergeLeft  *bool
	Detach     *bool
	LogLevel   *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	configFile := strings.TrimSpace(os.Getenv("DENVER_CONFIG"))
	if overrides != nil && overrides.ConfigFile != "" {
		configFile = overrides.ConfigFile
	}

	if configFile != "" {
		yamlCfg, err := loadFromFile(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	// Environment variables override YAML
	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		LogLevel:       defaultLogLevel,
		SignalLogRPS:   defaultSignalLogRPS,
		SignalLogBurst: defaultSignalLogBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.Dir != "" {
		cfg.Dir = yamlCfg.Dir
	}

	if yamlCfg.MergeLeft != nil {
		cfg.MergeLeft = *yamlCfg.MergeLeft
	}

	if yamlCfg.Detach != nil {
		cfg.Detach = *yamlCfg.Detach
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	if yamlCfg.SignalLog.RPS != nil {
		cfg.SignalLogRPS = *yamlCfg.SignalLog.RPS
	}

	if yamlCfg.SignalLog.Burst != nil {
		cfg.SignalLogBurst = *yamlCfg.SignalLog.Burst
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	if dir := strings.TrimSpace(os.Getenv("DENVER_DIR")); dir != "" {
		cfg.Dir = dir
	}

	if raw := strings.TrimSpace(os.Getenv("DENVER_MERGE_LEFT")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("DENVER_MERGE_LEFT: invalid boolean %q", raw)
		}
		cfg.MergeLeft = value
	}

	if raw := strings.TrimSpace(os.Getenv("DENVER_DETACH")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("DENVER_DETACH: invalid boolean %q", raw)
		}
		cfg.Detach = value
	}

	if level := strings.TrimSpace(os.Getenv("DENVER_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Dir != nil && *overrides.Dir != "" {
		cfg.Dir = *overrides.Dir
	}

	if overrides.MergeLeft != nil {
		cfg.MergeLeft = *overrides.MergeLeft
	}

	if overrides.Detach != nil {
		cfg.Detach = *overrides.Detach
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if cfg.SignalLogRPS < 0 {
		return fmt.Errorf("signal_log.rps must be >= 0")
	}
	if cfg.SignalLogBurst < 0 {
		return fmt.Errorf("signal_log.burst must be >= 0")
	}
	return nil
}
