package cli

import (
	"fmt"
	"strings"

	"github.com/glorpus-work/permfix/internal/logger"
	"github.com/glorpus-work/permfix/pkg/config"
	"github.com/glorpus-work/permfix/pkg/errors"
	"github.com/glorpus-work/permfix/pkg/policy"
	"github.com/glorpus-work/permfix/pkg/scanner"
	"github.com/spf13/afero"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	NoColor      *bool
	OutputFormat *string
)

// DefaultFs is the filesystem scanned and fixed by the commands. Tests swap
// in an afero.MemMapFs.
var DefaultFs afero.Fs = afero.NewOsFs()

// loadConfig loads the configuration, applies the global flag overrides and
// initialises logging from the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if OutputFormat != nil && *OutputFormat != "" {
		format := strings.ToLower(*OutputFormat)
		if format != config.OutputText && format != config.OutputJSON && format != config.OutputYAML {
			return nil, errors.ErrInvalidOutputFormatWithDetails(*OutputFormat)
		}
		cfg.Settings.OutputFormat = format
	}
	if NoColor != nil && *NoColor {
		cfg.Settings.ColorOutput = false
	}

	initLogging(cfg.Settings)
	return cfg, nil
}

func initLogging(s config.Settings) {
	level := s.LogLevel
	if Verbose != nil && *Verbose {
		level = "debug"
	}
	format := logger.FormatText
	if s.OutputFormat == config.OutputJSON {
		format = logger.FormatJSON
	}
	logger.InitLogger(level, format)
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// An empty path makes LoadConfig and SaveConfig fail with a clear error.
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err.Error()})
		return ""
	}
	return defaultPath
}

// resolveDirectories prefers the command line over the config file.
func resolveDirectories(args []string, cfg *config.Config) []string {
	if len(args) > 0 {
		return args
	}
	return cfg.Directories
}

// newScanner builds a scanner on DefaultFs that reports progress through the logger.
func newScanner(p *policy.Policy) *scanner.Scanner {
	return scanner.New(p,
		scanner.WithFs(DefaultFs),
		scanner.WithHooks(scanner.Hooks{OnEvent: logEvent}),
	)
}

func logEvent(e scanner.Event) {
	switch e.Phase {
	case scanner.PhaseScan:
		logger.Info("Scanning directory", logger.Fields{"path": e.Path})
	case scanner.PhaseSkip:
		if e.Path == "" {
			logger.Info(e.Msg)
			return
		}
		fields := logger.Fields{"path": e.Path, "reason": e.Msg}
		if e.Err != nil {
			fields["error"] = e.Err.Error()
		}
		logger.Debug("Skipped", fields)
	case scanner.PhaseFix:
		logger.Debug("Changed mode", logger.Fields{"path": e.Path, "change": e.Msg})
	}
}
