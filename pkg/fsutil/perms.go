package fsutil

import (
	"io/fs"

	"github.com/spf13/afero"
)

// PermsOps reads and changes permission bits through an afero.Fs.
type PermsOps struct {
	Fs afero.Fs
}

// NewPermsOps returns PermsOps for fsys. A nil fsys means the OS filesystem.
func NewPermsOps(fsys afero.Fs) *PermsOps {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &PermsOps{Fs: fsys}
}

// Stat always asks the filesystem; nothing is cached between calls.
func (o *PermsOps) Stat(path string) (fs.FileInfo, error) {
	return o.Fs.Stat(path)
}

// Chmod sets the permission bits of path, following symlinks.
func (o *PermsOps) Chmod(path string, perm fs.FileMode) error {
	return o.Fs.Chmod(path, perm)
}

// RealPath returns the canonical form of path for fsys.
func (o *PermsOps) RealPath(path string) string {
	return RealPath(o.Fs, path)
}
