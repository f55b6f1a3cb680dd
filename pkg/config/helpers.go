package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glorpus-work/permfix/pkg/mode"
)

// Keys lists every key accepted by GetValue and SetValue, in display order.
var Keys = []string{
	"directories",
	"default_file_mode",
	"default_directory_mode",
	"allowed_file_modes",
	"allowed_directory_modes",
	"excluded_names",
	"excluded_paths",
	"log_level",
	"output_format",
	"color_output",
}

// SetValue sets a configuration value by key. List keys take a
// comma-separated value; an empty value clears the list. Setting a default
// mode to "" disables auditing for that kind of entry.
// The config is not revalidated; call Validate before saving.
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "directories":
		c.Directories = splitList(value)
	case "default_file_mode":
		m, err := parseOptionalMode(value)
		if err != nil {
			return err
		}
		c.Policy.DefaultFileMode = m
	case "default_directory_mode":
		m, err := parseOptionalMode(value)
		if err != nil {
			return err
		}
		c.Policy.DefaultDirectoryMode = m
	case "allowed_file_modes":
		modes, err := mode.ParseList(splitList(value))
		if err != nil {
			return err
		}
		c.Policy.AllowedFileModes = modes
	case "allowed_directory_modes":
		modes, err := mode.ParseList(splitList(value))
		if err != nil {
			return err
		}
		c.Policy.AllowedDirectoryModes = modes
	case "excluded_names":
		c.Policy.ExcludedNames = splitList(value)
	case "excluded_paths":
		c.Policy.ExcludedPaths = splitList(value)
	case "log_level":
		c.Settings.LogLevel = value
	case "output_format":
		c.Settings.OutputFormat = value
	case "color_output":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", key, value)
		}
		c.Settings.ColorOutput = boolVal
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// GetValue returns the value for key as a string. Lists are comma-separated
// and an unset default mode is "".
func (c *Config) GetValue(key string) (string, error) {
	switch key {
	case "directories":
		return strings.Join(c.Directories, ","), nil
	case "default_file_mode":
		return formatOptionalMode(c.Policy.DefaultFileMode), nil
	case "default_directory_mode":
		return formatOptionalMode(c.Policy.DefaultDirectoryMode), nil
	case "allowed_file_modes":
		return formatModes(c.Policy.AllowedFileModes), nil
	case "allowed_directory_modes":
		return formatModes(c.Policy.AllowedDirectoryModes), nil
	case "excluded_names":
		return strings.Join(c.Policy.ExcludedNames, ","), nil
	case "excluded_paths":
		return strings.Join(c.Policy.ExcludedPaths, ","), nil
	case "log_level":
		return c.Settings.LogLevel, nil
	case "output_format":
		return c.Settings.OutputFormat, nil
	case "color_output":
		return strconv.FormatBool(c.Settings.ColorOutput), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// ToMap returns every key with its GetValue form.
// This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string, len(Keys))
	for _, key := range Keys {
		v, _ := c.GetValue(key)
		result[key] = v
	}
	return result
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseOptionalMode(value string) (*mode.Mode, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	m, err := mode.Parse(value)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func formatOptionalMode(m *mode.Mode) string {
	if m == nil {
		return ""
	}
	return m.String()
}

func formatModes(modes []mode.Mode) string {
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = m.String()
	}
	return strings.Join(parts, ",")
}
