package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (MONOSPLIT_*)
// 2. Config file (.monosplit/config.yml or .monosplit/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	// Configure viper
	v := viper.New()

	// Set up config file search
	configDir := filepath.Join(l.rootDir, ".monosplit")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	// Config file not found is acceptable - we'll use defaults + env vars
	return loadFromViper(v, true)
}

// loadFromViper applies env bindings and defaults, reads the config file,
// and unmarshals + validates the result. missingOK tolerates an absent
// config file (the directory-search case).
func loadFromViper(v *viper.Viper, missingOK bool) (*Config, error) {
	// Enable environment variable overrides
	v.SetEnvPrefix("MONOSPLIT")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., MONOSPLIT_LOGGING_LEVEL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables to config keys
	v.BindEnv("output.dir")
	v.BindEnv("diagnostics.strict")
	v.BindEnv("watch.debounce_ms")
	v.BindEnv("logging.level")
	v.BindEnv("logging.format")

	// Set defaults in viper
	setDefaults(v)

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || !missingOK {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate the configuration
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	// Output defaults
	v.SetDefault("output.dir", defaults.Output.Dir)

	// Diagnostics defaults
	v.SetDefault("diagnostics.strict", defaults.Diagnostics.Strict)

	// Watch defaults
	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)

	// Scan defaults
	v.SetDefault("scan.include", defaults.Scan.Include)
	v.SetDefault("scan.ignore", defaults.Scan.Ignore)

	// Logging defaults
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}

// LoadConfigFromFile loads configuration from an explicit file path,
// bypassing the .monosplit directory search. The file must exist.
func LoadConfigFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return loadFromViper(v, false)
}
