package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - LoadConfig() uses defaults when no config file exists
// - LoadConfig() loads from .monosplit/config.yml when present
// - LoadConfig() loads from .monosplit/config.yaml when present
// - LoadConfigFromFile() loads an explicit path and errors when it is missing
// - LoadConfig() merges config file with defaults
// - Environment variables override config file values
// - Environment variables override defaults when no config file exists
// - LoadConfig() returns error for malformed YAML
// - LoadConfig() returns error for invalid configuration values
// - Validate() accepts valid configuration
// - Validate() rejects unknown logging level
// - Validate() rejects unknown logging format
// - Validate() rejects negative debounce
// - Validate() rejects empty include patterns
// - Validate() returns multiple errors for multiple invalid fields

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	// Test: Default() returns valid configuration
	cfg := Default()

	require.NotNil(t, cfg)

	// Verify output defaults
	assert.Equal(t, "", cfg.Output.Dir)

	// Verify diagnostics defaults
	assert.False(t, cfg.Diagnostics.Strict)

	// Verify watch defaults
	assert.Equal(t, 500, cfg.Watch.DebounceMs)

	// Verify scan defaults
	assert.Equal(t, []string{"**/*.py"}, cfg.Scan.Include)
	assert.Contains(t, cfg.Scan.Ignore, "__pycache__/**")
	assert.Contains(t, cfg.Scan.Ignore, ".git/**")

	// Verify logging defaults
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)

	// Verify default config passes validation
	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	// Test: Load from directory with no config file returns defaults
	tempDir := t.TempDir()

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)

	expected := Default()
	assert.Equal(t, expected.Watch.DebounceMs, cfg.Watch.DebounceMs)
	assert.Equal(t, expected.Logging.Level, cfg.Logging.Level)
	assert.Equal(t, expected.Scan.Include, cfg.Scan.Include)
}

func TestLoadConfig_LoadsFromConfigYml(t *testing.T) {
	// Test: Load from .monosplit/config.yml
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".monosplit")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	configContent := `
output:
  dir: generated

diagnostics:
  strict: true

watch:
  debounce_ms: 250

scan:
  include:
    - "src/**/*.py"
  ignore:
    - "src/vendor/**"

logging:
  level: debug
  format: json
`

	configPath := filepath.Join(configDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "generated", cfg.Output.Dir)
	assert.True(t, cfg.Diagnostics.Strict)
	assert.Equal(t, 250, cfg.Watch.DebounceMs)
	assert.Equal(t, []string{"src/**/*.py"}, cfg.Scan.Include)
	assert.Equal(t, []string{"src/vendor/**"}, cfg.Scan.Ignore)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfig_LoadsFromConfigYaml(t *testing.T) {
	// Test: Load from .monosplit/config.yaml (alternate extension)
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".monosplit")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	configPath := filepath.Join(configDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("watch:\n  debounce_ms: 100\n"), 0644))

	cfg, err := LoadConfigFromDir(tempDir)

	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Watch.DebounceMs)
}

func TestLoadConfigFromFile_LoadsExplicitPath(t *testing.T) {
	// Test: Explicit file path bypasses the .monosplit directory search
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "custom.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: warn\n"), 0644))

	cfg, err := LoadConfigFromFile(configPath)

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	// Unset sections still fall back to defaults
	assert.Equal(t, 500, cfg.Watch.DebounceMs)
}

func TestLoadConfigFromFile_MissingFileErrors(t *testing.T) {
	// Test: Explicit file path must exist (unlike the directory search)
	_, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "nope.yml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_MergesWithDefaults(t *testing.T) {
	// Test: Partial config file keeps defaults for unset sections
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".monosplit")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	configPath := filepath.Join(configDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: warn\n"), 0644))

	cfg, err := LoadConfigFromDir(tempDir)

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 500, cfg.Watch.DebounceMs)
	assert.Equal(t, []string{"**/*.py"}, cfg.Scan.Include)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	// Test: MONOSPLIT_* environment variables win over the config file
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".monosplit")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	configPath := filepath.Join(configDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: warn\n"), 0644))

	t.Setenv("MONOSPLIT_LOGGING_LEVEL", "debug")

	cfg, err := LoadConfigFromDir(tempDir)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	// Test: Environment variables apply without a config file
	tempDir := t.TempDir()

	t.Setenv("MONOSPLIT_OUTPUT_DIR", "elsewhere")
	t.Setenv("MONOSPLIT_WATCH_DEBOUNCE_MS", "750")

	cfg, err := LoadConfigFromDir(tempDir)

	require.NoError(t, err)
	assert.Equal(t, "elsewhere", cfg.Output.Dir)
	assert.Equal(t, 750, cfg.Watch.DebounceMs)
}

func TestLoadConfig_MalformedYaml(t *testing.T) {
	// Test: Malformed YAML returns a read error
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".monosplit")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	configPath := filepath.Join(configDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("logging: [unclosed\n"), 0644))

	_, err := LoadConfigFromDir(tempDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	// Test: A config file with invalid values fails validation
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".monosplit")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	configPath := filepath.Join(configDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: loud\n"), 0644))

	_, err := LoadConfigFromDir(tempDir)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestValidate_AcceptsValidConfiguration(t *testing.T) {
	cfg := Default()
	cfg.Output.Dir = "out"
	cfg.Diagnostics.Strict = true
	cfg.Logging.Format = "json"

	assert.NoError(t, Validate(cfg))
}

func TestValidate_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "unknown logging level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "unknown logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: ErrInvalidLogFormat,
		},
		{
			name:    "negative debounce",
			mutate:  func(c *Config) { c.Watch.DebounceMs = -1 },
			wantErr: ErrInvalidDebounce,
		},
		{
			name:    "empty include patterns",
			mutate:  func(c *Config) { c.Scan.Include = nil },
			wantErr: ErrEmptyInclude,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ReportsMultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"
	cfg.Watch.DebounceMs = -5
	cfg.Scan.Include = nil

	err := Validate(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "invalid logging level")
	assert.Contains(t, err.Error(), "invalid watch debounce")
	assert.Contains(t, err.Error(), "empty scan include patterns")
}
