package config

// Config represents the complete monosplit configuration.
// It can be loaded from .monosplit/config.yml with environment variable overrides.
type Config struct {
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics" mapstructure:"diagnostics"`
	Watch       WatchConfig       `yaml:"watch" mapstructure:"watch"`
	Scan        ScanConfig        `yaml:"scan" mapstructure:"scan"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
}

// OutputConfig controls where generated packages are installed.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // empty means derive from the input file stem
}

// DiagnosticsConfig controls how split findings are treated.
type DiagnosticsConfig struct {
	Strict bool `yaml:"strict" mapstructure:"strict"` // any diagnostic fails the run
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before a re-split
}

// ScanConfig defines which files scan considers and which it skips.
type ScanConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for candidate files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // "debug", "info", "warn" or "error"
	Format string `yaml:"format" mapstructure:"format"` // "console" or "json"
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir: "", // Empty means derive <stem>/ next to the input file
		},
		Diagnostics: DiagnosticsConfig{
			Strict: false,
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
		Scan: ScanConfig{
			Include: []string{
				"**/*.py",
			},
			Ignore: []string{
				"venv/**",
				".venv/**",
				".git/**",
				"__pycache__/**",
				"*.pyc",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
