// Package config loads dictionary settings from a YAML file and DICT_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/iku50/dict"
)

// Sentinel validation errors.
var (
	ErrInvalidCapacity  = errors.New("capacity must not be negative")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// Default configuration values.
const (
	DefaultCapacity        = 0
	DefaultAllowDuplicates = false
	DefaultStrict          = false
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Config holds all configuration for a dictionary and its logging.
type Config struct {
	Dict    DictConfig    `mapstructure:"dict"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DictConfig holds the creation-time settings of a dictionary.
type DictConfig struct {
	Capacity        int  `mapstructure:"capacity"`
	AllowDuplicates bool `mapstructure:"allow_duplicates"`
	Strict          bool `mapstructure:"strict"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty path searches for dict.yaml in the working directory and ./config.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("dict")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
	}

	viperCfg.SetEnvPrefix("DICT")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("dict.capacity", DefaultCapacity)
	viperCfg.SetDefault("dict.allow_duplicates", DefaultAllowDuplicates)
	viperCfg.SetDefault("dict.strict", DefaultStrict)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)
}

func validateConfig(config *Config) error {
	if config.Dict.Capacity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, config.Dict.Capacity)
	}

	_, err := config.Logging.SlogLevel()
	if err != nil {
		return err
	}

	switch config.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	return nil
}

// SlogLevel parses the configured level name.
func (lc LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(lc.Level))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, lc.Level)
	}

	return level, nil
}

// DictOptions converts the dictionary settings into creation options.
// A nil logger leaves the dictionary silent.
func (c *Config) DictOptions(logger *slog.Logger) []dict.Option {
	opts := []dict.Option{
		dict.WithCapacity(c.Dict.Capacity),
		dict.WithStrict(c.Dict.Strict),
	}

	if c.Dict.AllowDuplicates {
		opts = append(opts, dict.WithDuplicates())
	}

	if logger != nil {
		opts = append(opts, dict.WithLogger(logger))
	}

	return opts
}
