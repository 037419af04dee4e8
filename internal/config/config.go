package config

import (
	"os"
	"strconv"
	"strings"

	"titanicprep/internal"
	"titanicprep/internal/errors"
)

// Default locations used when the environment does not override them
const (
	DefaultInputPath = "data/train.csv"
	DefaultOutputDir = "output"
)

// Config represents the complete application configuration
type Config struct {
	Paths   PathConfig
	Output  OutputConfig
	Logging LoggingConfig
}

// PathConfig holds file system paths
type PathConfig struct {
	InputPath string
	OutputDir string
}

// OutputConfig controls optional side artifacts
type OutputConfig struct {
	ExportXLSX bool
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level internal.LogLevel
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Paths:   *loadPathConfig(),
		Output:  *loadOutputConfig(),
		Logging: *loadLoggingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// WithInput returns a copy of c reading from path instead of the configured input
func (c Config) WithInput(path string) *Config {
	if strings.TrimSpace(path) != "" {
		c.Paths.InputPath = path
	}
	return &c
}

func loadPathConfig() *PathConfig {
	return &PathConfig{
		InputPath: getEnvOrDefault("INPUT_PATH", DefaultInputPath),
		OutputDir: getEnvOrDefault("OUTPUT_DIR", DefaultOutputDir),
	}
}

func loadOutputConfig() *OutputConfig {
	return &OutputConfig{
		ExportXLSX: getEnvBoolOrDefault("EXPORT_XLSX", false),
	}
}

func loadLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level: internal.ParseLogLevel(getEnvOrDefault("LOG_LEVEL", "INFO")),
	}
}

func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Paths.InputPath) == "" {
		return errors.ConfigInvalid("input path is required")
	}
	if strings.TrimSpace(config.Paths.OutputDir) == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
