// Package errors defines the sentinel errors shared across permfix and small
// helpers for wrapping them with context.
//
// Errors fall into three groups: invalid arguments (bad modes or patterns)
// that are raised when a policy is configured, configuration file errors, and
// command level outcomes reported by the CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Common error types.
var (
	// Policy errors.
	ErrInvalidMode    = fmt.Errorf("invalid permission mode")
	ErrInvalidPattern = fmt.Errorf("invalid exclusion pattern")

	// Fix errors, reported per path.
	ErrNoDefaultMode  = fmt.Errorf("no default mode configured for this kind of entry")
	ErrModeNotApplied = fmt.Errorf("permission change did not take effect")

	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileWrite   = fmt.Errorf("failed to write config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")
	ErrConfigMarshal     = fmt.Errorf("failed to marshal config to YAML")

	// ErrConfigFileExists is returned when init would overwrite an existing file.
	ErrConfigFileExists = fmt.Errorf("configuration file already exists (use --force to overwrite)")

	// Settings errors.
	ErrInvalidOutputFormat = fmt.Errorf("invalid output format")
	ErrInvalidLogLevel     = fmt.Errorf("invalid log level")

	// CLI errors.
	ErrNoDirectories   = fmt.Errorf("no directories to scan (pass them as arguments or set directories in the config)")
	ErrFindingsPresent = fmt.Errorf("non-compliant paths found")
	ErrFixIncomplete   = fmt.Errorf("some permissions could not be fixed")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// IsInvalidArgument reports whether err was caused by a bad mode or pattern.
func IsInvalidArgument(err error) bool {
	return Is(err, ErrInvalidMode) || Is(err, ErrInvalidPattern)
}

// ErrInvalidModeWithValue reports the offending mode in octal.
func ErrInvalidModeWithValue(mode int) error {
	return fmt.Errorf("%w: %#o (expected 3 or 4 octal digits)", ErrInvalidMode, mode)
}

// ErrInvalidModeString reports a mode string that is not octal.
func ErrInvalidModeString(s string) error {
	return fmt.Errorf("%w: %q is not an octal number", ErrInvalidMode, s)
}

// ErrInvalidPatternWithDetails wraps the pattern and the reason it was rejected.
func ErrInvalidPatternWithDetails(pattern string, err error) error {
	return fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
}

// ErrInvalidOutputFormatWithDetails is a helper to create a wrapped error with the invalid format and valid options.
func ErrInvalidOutputFormatWithDetails(format string) error {
	return fmt.Errorf("%w: '%s', must be one of: text, json, yaml", ErrInvalidOutputFormat, format)
}

// ErrInvalidLogLevelWithDetails is a helper to create a wrapped error with the invalid level and valid options.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: debug, info, warn, error", ErrInvalidLogLevel, level)
}

// ErrFindingsPresentWithCount adds the number of concerned paths.
func ErrFindingsPresentWithCount(n int) error {
	return fmt.Errorf("%w: %d", ErrFindingsPresent, n)
}

// ErrFixIncompleteWithCount adds the number of paths that failed.
func ErrFixIncompleteWithCount(n int) error {
	return fmt.Errorf("%w: %d failed", ErrFixIncomplete, n)
}

// ErrModeNotAppliedWithDetails reports the mode found after a chmod.
func ErrModeNotAppliedWithDetails(want, got int) error {
	return fmt.Errorf("%w: want %04o, found %04o", ErrModeNotApplied, want, got)
}
