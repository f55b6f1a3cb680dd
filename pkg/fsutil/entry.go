package fsutil

import (
	"io/fs"

	"github.com/glorpus-work/permfix/pkg/mode"
)

// permBits are the bits of fs.FileMode that chmod can change.
const permBits = fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky

// Entry is one filesystem entry produced by Walker.Filter.
type Entry struct {
	// Path is the entry as reached from the walk root.
	Path string
	// RelPath is Path relative to the walk root.
	RelPath string
	// RealPath is the absolute path with symlinks resolved.
	RealPath string
	// Name is the base name.
	Name string
	// IsDir is true for directories and for symlinks pointing at one.
	IsDir bool
	// Symlink is true when Path itself is a symbolic link.
	Symlink bool
	// Perm holds the raw permission bits, special bits included.
	Perm fs.FileMode
}

// Mode returns the lowest nine permission bits of the entry.
func (e Entry) Mode() mode.Mode {
	return mode.FromFileMode(e.Perm)
}
