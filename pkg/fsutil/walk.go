package fsutil

import (
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/spf13/afero"
)

// Excluder decides whether an entry is left out of a walk. Excluded
// directories are not descended.
type Excluder interface {
	Excluded(rel, name string, isDir bool) bool
}

// SkipFunc receives every path the walk could not read. The walk carries on
// after calling it.
type SkipFunc func(path string, err error)

// Walker produces filtered directory trees.
type Walker struct {
	Fs afero.Fs
}

// NewWalker returns a Walker reading from fsys. A nil fsys means the OS
// filesystem.
func NewWalker(fsys afero.Fs) *Walker {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Walker{Fs: fsys}
}

// Filter walks root depth first and yields every entry below it, parents
// before children and names in lexical order. The root itself is not
// yielded. Entries the excluder rejects are dropped, and rejected
// directories are not entered. Unreadable directories, entries that vanish
// mid-walk and dangling symlinks are passed to onSkip and the walk moves on.
// Symlinks are reported with their target's kind and mode but never followed.
// The excluder sees a link with its target's kind, so directory-only patterns
// match links to directories.
//
// The sequence is single use: ranging over it again walks the tree again.
func (w *Walker) Filter(root string, excluder Excluder, onSkip SkipFunc) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		realRoot := RealPath(w.Fs, root)

		skip := func(path string, err error) {
			if onSkip != nil {
				onSkip(path, err)
			}
		}

		_ = afero.Walk(w.Fs, realRoot, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				skip(path, err)
				return nil
			}
			if path == realRoot {
				return nil
			}

			rel, relErr := filepath.Rel(realRoot, path)
			if relErr != nil {
				skip(path, relErr)
				return nil
			}

			name := info.Name()
			entry := Entry{
				Path:     filepath.Join(root, rel),
				RelPath:  rel,
				RealPath: path,
				Name:     name,
				IsDir:    info.IsDir(),
				Perm:     info.Mode() & permBits,
			}

			if info.Mode()&fs.ModeSymlink != 0 {
				target, statErr := w.Fs.Stat(path)
				if statErr != nil {
					if excluder == nil || !excluder.Excluded(rel, name, false) {
						skip(path, statErr)
					}
					return nil
				}
				entry.Symlink = true
				entry.IsDir = target.IsDir()
				entry.Perm = target.Mode() & permBits
				entry.RealPath = RealPath(w.Fs, path)
			}

			// A link to a directory counts as a directory for exclusion,
			// but only a real directory can be pruned.
			if excluder != nil && excluder.Excluded(rel, name, entry.IsDir) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !yield(entry) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
