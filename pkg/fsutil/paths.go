package fsutil

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// AppName is the name of the application used in paths
	AppName = "permfix"
)

// RealPath returns the absolute, cleaned form of path. On the OS filesystem
// symlinks are resolved as well; when that fails (the path is gone, or a
// component is unreadable) the absolute path is returned unchanged.
func RealPath(fsys afero.Fs, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if _, ok := fsys.(*afero.OsFs); !ok {
		return abs
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// GetConfigDir returns the platform-specific config directory for the application
// On Linux: ~/.config/permfix/
// On macOS: ~/Library/Application Support/permfix/
// On Windows: %AppData%\permfix\
func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// EnsureDir creates a directory and all necessary parent directories with
// DirModeDefault permissions if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeDefault.FileMode())
}
