// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/paycheck-planner/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by the planner.
const EnvPrefix = "PLANNER"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"data" yaml:"data"`

	User struct {
		ID string `mapstructure:"id" yaml:"id"`
	} `mapstructure:"user" yaml:"user"`

	Store struct {
		Backend    string `mapstructure:"backend" yaml:"backend"`
		SQLiteFile string `mapstructure:"sqlite_file" yaml:"sqlite_file"`
	} `mapstructure:"store" yaml:"store"`

	Registry struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"registry" yaml:"registry"`

	Learning struct {
		Enabled           bool `mapstructure:"enabled" yaml:"enabled"`
		RingSize          int  `mapstructure:"ring_size" yaml:"ring_size"`
		HistoryLimit      int  `mapstructure:"history_limit" yaml:"history_limit"`
		MinSupport        int  `mapstructure:"min_support" yaml:"min_support"`
		TopPreferred      int  `mapstructure:"top_preferred" yaml:"top_preferred"`
		ReminderCount     int  `mapstructure:"reminder_count" yaml:"reminder_count"`
		ReminderThreshold int  `mapstructure:"reminder_threshold" yaml:"reminder_threshold"`
	} `mapstructure:"learning" yaml:"learning"`

	Parser struct {
		LowConfidence int `mapstructure:"low_confidence" yaml:"low_confidence"`
	} `mapstructure:"parser" yaml:"parser"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.paycheck-planner")
	v.AddConfigPath(".paycheck-planner")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logging.GetLogger().WithError(err).Warn("Error reading config file, using defaults and environment",
				logging.Field{Key: logging.FieldFile, Value: v.ConfigFileUsed()})
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("data.directory", "~/.paycheck-planner")
	v.SetDefault("user.id", "default")

	v.SetDefault("store.backend", "yaml")
	v.SetDefault("store.sqlite_file", "patterns.db")

	v.SetDefault("registry.file", "")

	v.SetDefault("learning.enabled", true)
	v.SetDefault("learning.ring_size", 20)
	v.SetDefault("learning.history_limit", 100)
	v.SetDefault("learning.min_support", 3)
	v.SetDefault("learning.top_preferred", 5)
	v.SetDefault("learning.reminder_count", 2)
	v.SetDefault("learning.reminder_threshold", 3)

	v.SetDefault("parser.low_confidence", 50)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if strings.TrimSpace(config.User.ID) == "" {
		return fmt.Errorf("user.id cannot be empty")
	}

	switch config.Store.Backend {
	case "yaml", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid store backend: %s (must be 'yaml', 'sqlite' or 'memory')", config.Store.Backend)
	}

	if config.Learning.RingSize < 1 || config.Learning.RingSize > 1000 {
		return fmt.Errorf("learning.ring_size must be between 1 and 1000, got: %d", config.Learning.RingSize)
	}
	if config.Learning.HistoryLimit < 1 {
		return fmt.Errorf("learning.history_limit must be positive, got: %d", config.Learning.HistoryLimit)
	}
	if config.Learning.MinSupport < 1 {
		return fmt.Errorf("learning.min_support must be positive, got: %d", config.Learning.MinSupport)
	}
	if config.Learning.ReminderCount <= 0 {
		return fmt.Errorf("learning.reminder_count must be positive, got: %d", config.Learning.ReminderCount)
	}

	if config.Parser.LowConfidence < 0 || config.Parser.LowConfidence > 100 {
		return fmt.Errorf("parser.low_confidence must be between 0 and 100, got: %d", config.Parser.LowConfidence)
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from the Config struct
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(config.Log.Level), strings.ToLower(config.Log.Format))
}

// DataDirectory returns the expanded data directory.
func (c *Config) DataDirectory() string {
	return ExpandPath(c.Data.Directory)
}

// PatternDirectory is where the YAML store keeps one file per user.
func (c *Config) PatternDirectory() string {
	return filepath.Join(c.DataDirectory(), "patterns")
}

// SQLitePath returns the database path, relative names resolving inside the data directory.
func (c *Config) SQLitePath() string {
	p := ExpandPath(c.Store.SQLiteFile)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDirectory(), p)
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
