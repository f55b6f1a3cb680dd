// Package fsutil provides the filesystem primitives permfix is built on: a
// filtered tree walk, real path resolution and permission changes, all on
// top of an afero.Fs so tests can run against memory.
package fsutil

import "github.com/glorpus-work/permfix/pkg/mode"

// Default permission constants, used for the config file permfix writes and
// as the modes of the default policy.
const (
	FileModeDefault mode.Mode = 0o644 // -rw-r--r--
	DirModeDefault  mode.Mode = 0o755 // drwxr-xr-x
)
