// Package config loads application configuration from an optional YAML file,
// an optional .env file, and environment variables. Load returns an explicit
// Config value that callers pass into component constructors; there is no
// package-level singleton, so tests can build isolated configurations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App     App     `mapstructure:"app"`
	Archive Archive `mapstructure:"archive"`
	Cleanup Cleanup `mapstructure:"cleanup"`
	Logging Logging `mapstructure:"logging"`
}

// App holds general application configuration.
type App struct {
	BasePath string `mapstructure:"base_path"` // Root of the catalog directory tree
}

// Archive holds archival policy configuration.
type Archive struct {
	DefaultDays int `mapstructure:"default_days"` // Age threshold for the archive sweep
}

// Cleanup holds cleanup policy configuration.
type Cleanup struct {
	KeepPerKind int `mapstructure:"keep_per_kind"` // Analysis artifacts kept per kind
}

// Logging holds logging configuration.
type Logging struct {
	Level     string `mapstructure:"level"`     // debug, info, warn, error
	Format    string `mapstructure:"format"`    // console or json
	Directory string `mapstructure:"directory"` // When set, a timestamped log file is written here
}

// Load reads configuration from the given file (or the default search path
// when empty), layered under environment variables.
func Load(configFile string) (*Config, error) {
	// A .env file next to the binary is a convenience for operators; its
	// absence is not an error.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
		}
	}

	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
		v.SetConfigName(".quantumwatch")
		v.SetConfigType("yaml")
	}

	setDefaults(v)

	v.SetEnvPrefix("QUANTUMWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(config); err != nil {
		return nil, err
	}

	config.App.BasePath = expandPath(config.App.BasePath)
	if config.Logging.Directory != "" {
		config.Logging.Directory = expandPath(config.Logging.Directory)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.base_path", ".")

	v.SetDefault("archive.default_days", 30)
	v.SetDefault("cleanup.keep_per_kind", 5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.directory", "")
}

func validate(config *Config) error {
	var errs []string

	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("unknown logging level: %s (supported: debug, info, warn, error)", config.Logging.Level))
	}

	switch config.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("unknown logging format: %s (supported: console, json)", config.Logging.Format))
	}

	if config.Archive.DefaultDays < 0 {
		errs = append(errs, "archive.default_days must not be negative")
	}
	if config.Cleanup.KeepPerKind < 0 {
		errs = append(errs, "cleanup.keep_per_kind must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// expandPath expands ~ and environment variables in paths.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}
