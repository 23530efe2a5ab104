package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidLogLevel indicates an unsupported logging level
	ErrInvalidLogLevel = errors.New("invalid logging level")

	// ErrInvalidLogFormat indicates an unsupported logging format
	ErrInvalidLogFormat = errors.New("invalid logging format")

	// ErrInvalidDebounce indicates an invalid watch debounce interval
	ErrInvalidDebounce = errors.New("invalid watch debounce")

	// ErrEmptyInclude indicates missing scan include patterns
	ErrEmptyInclude = errors.New("empty scan include patterns")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	// Validate watch configuration
	if err := validateWatch(&cfg.Watch); err != nil {
		errs = append(errs, err)
	}

	// Validate scan configuration
	if err := validateScan(&cfg.Scan); err != nil {
		errs = append(errs, err)
	}

	// Validate logging configuration
	if err := validateLogging(&cfg.Logging); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateWatch(cfg *WatchConfig) error {
	if cfg.DebounceMs < 0 {
		return fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.DebounceMs)
	}
	return nil
}

func validateScan(cfg *ScanConfig) error {
	// Ignore patterns can be empty; without include patterns scan would
	// never match anything, which is always a misconfiguration.
	if len(cfg.Include) == 0 {
		return fmt.Errorf("%w: at least one include pattern required", ErrEmptyInclude)
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	var errs []error

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	level := strings.ToLower(cfg.Level)
	if !validLevels[level] {
		errs = append(errs, fmt.Errorf("%w: must be debug, info, warn or error, got '%s'", ErrInvalidLogLevel, cfg.Level))
	}

	format := strings.ToLower(cfg.Format)
	if format != "console" && format != "json" {
		errs = append(errs, fmt.Errorf("%w: must be 'console' or 'json', got '%s'", ErrInvalidLogFormat, cfg.Format))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
