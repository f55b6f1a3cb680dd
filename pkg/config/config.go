// Package config loads, validates and saves the permfix configuration file.
// The file names the directories to audit, the permission policy applied to
// them and a handful of output settings. Modes are written as octal strings
// and validated when the file is read.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/permfix/pkg/errors"
	"github.com/glorpus-work/permfix/pkg/exclude"
	"github.com/glorpus-work/permfix/pkg/fsutil"
	"github.com/glorpus-work/permfix/pkg/mode"
	"github.com/glorpus-work/permfix/pkg/policy"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Directories audited when none are given on the command line.
	Directories []string `json:"directories" yaml:"directories"`

	// Policy applied to every directory.
	Policy PolicyConfig `json:"policy" yaml:"policy"`

	// General settings
	Settings Settings `json:"settings" yaml:"settings"`
}

// PolicyConfig is the on-disk form of a policy.Policy. A nil default mode
// disables auditing for that kind of entry.
type PolicyConfig struct {
	DefaultFileMode       *mode.Mode  `json:"default_file_mode,omitempty" yaml:"default_file_mode,omitempty"`
	DefaultDirectoryMode  *mode.Mode  `json:"default_directory_mode,omitempty" yaml:"default_directory_mode,omitempty"`
	AllowedFileModes      []mode.Mode `json:"allowed_file_modes" yaml:"allowed_file_modes"`
	AllowedDirectoryModes []mode.Mode `json:"allowed_directory_modes" yaml:"allowed_directory_modes"`
	ExcludedNames         []string    `json:"excluded_names,omitempty" yaml:"excluded_names,omitempty"`
	ExcludedPaths         []string    `json:"excluded_paths,omitempty" yaml:"excluded_paths,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	LogLevel     string `json:"log_level" yaml:"log_level"`         // debug, info, warn, error
	OutputFormat string `json:"output_format" yaml:"output_format"` // text, json, yaml
	ColorOutput  bool   `json:"color_output" yaml:"color_output"`
}

// Output formats understood by the CLI.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

const (
	// DefaultLogLevel is used when the file does not set one.
	DefaultLogLevel = "info"

	// ConfigFileName is the base name of the config file inside the config directory.
	ConfigFileName = "config.yaml"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

var (
	validOutputFormats = map[string]bool{OutputText: true, OutputJSON: true, OutputYAML: true}
	validLogLevels     = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
)

// DefaultSettings returns the settings used for keys a file leaves out.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:     DefaultLogLevel,
		OutputFormat: OutputText,
		ColorOutput:  true,
	}
}

// DefaultConfig returns the configuration used when no file exists: files
// must be 0644 and directories 0755, nothing is excluded.
func DefaultConfig() *Config {
	fileMode := fsutil.FileModeDefault
	dirMode := fsutil.DirModeDefault
	return &Config{
		Directories: []string{},
		Policy: PolicyConfig{
			DefaultFileMode:       &fileMode,
			DefaultDirectoryMode:  &dirMode,
			AllowedFileModes:      []mode.Mode{fileMode},
			AllowedDirectoryModes: []mode.Mode{dirMode},
		},
		Settings: DefaultSettings(),
	}
}

// LoadConfig loads configuration from a file. A missing file yields
// DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader. Keys missing
// from the settings block take their default; a missing policy block means
// nothing is audited.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	config := Config{Settings: DefaultSettings()}
	if err := yaml.Unmarshal(data, &config); err != nil {
		if errors.IsInvalidArgument(err) {
			return nil, fmt.Errorf("%w: %w", errors.ErrConfigValidation, err)
		}
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrConfigValidation, err)
	}

	return &config, nil
}

// SaveConfig writes the configuration to path through a temporary file that
// is renamed into place.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := fsutil.EnsureDir(filepath.Dir(absPath)); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault.FileMode())
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	if err := c.writeTo(file); err != nil {
		_ = os.Remove(tempPath)
		return err
	}

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	return nil
}

// writeTo encodes c into w and closes w. The first failure wins, so a short
// write or a failed flush is never reported as success.
func (c *Config) writeTo(w io.WriteCloser) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = w.Close()
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	if err := encoder.Close(); err != nil {
		_ = w.Close()
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(errors.ErrConfigFileWrite, err.Error())
	}
	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigMarshal, err.Error())
	}
	return data, nil
}

// ToPolicy builds the policy described by the config.
func (c *Config) ToPolicy() (*policy.Policy, error) {
	return policy.FromOptions(policy.Options{
		DefaultFileMode:       c.Policy.DefaultFileMode,
		DefaultDirectoryMode:  c.Policy.DefaultDirectoryMode,
		AllowedFileModes:      c.Policy.AllowedFileModes,
		AllowedDirectoryModes: c.Policy.AllowedDirectoryModes,
		ExcludedNames:         c.Policy.ExcludedNames,
		ExcludedPaths:         c.Policy.ExcludedPaths,
	})
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validateDirectories(c.Directories); err != nil {
		return err
	}
	if err := c.Policy.Validate(); err != nil {
		return err
	}
	return validateSettings(c.Settings)
}

// Validate checks every mode and pattern in the policy block.
func (p PolicyConfig) Validate() error {
	if p.DefaultFileMode != nil {
		if err := p.DefaultFileMode.Validate(); err != nil {
			return errors.Wrap(err, "default_file_mode")
		}
	}
	if p.DefaultDirectoryMode != nil {
		if err := p.DefaultDirectoryMode.Validate(); err != nil {
			return errors.Wrap(err, "default_directory_mode")
		}
	}
	if err := mode.ValidateAll(p.AllowedFileModes); err != nil {
		return errors.Wrap(err, "allowed_file_modes")
	}
	if err := mode.ValidateAll(p.AllowedDirectoryModes); err != nil {
		return errors.Wrap(err, "allowed_directory_modes")
	}
	if err := exclude.ValidateNames(p.ExcludedNames); err != nil {
		return errors.Wrap(err, "excluded_names")
	}
	if err := exclude.ValidatePaths(p.ExcludedPaths); err != nil {
		return errors.Wrap(err, "excluded_paths")
	}
	return nil
}

func validateDirectories(dirs []string) error {
	for i, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("directories[%d] is empty", i)
		}
	}
	return nil
}

func validateSettings(s Settings) error {
	if !validOutputFormats[s.OutputFormat] {
		return errors.ErrInvalidOutputFormatWithDetails(s.OutputFormat)
	}
	if !validLogLevels[strings.ToLower(s.LogLevel)] {
		return errors.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := fsutil.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultSettings()

	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.LogLevel
	}
	c.Settings.OutputFormat = strings.ToLower(c.Settings.OutputFormat)
	if c.Directories == nil {
		c.Directories = []string{}
	}
}
