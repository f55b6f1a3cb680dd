// Package exclude decides which entries of a directory tree are left out of a
// permission audit.
//
// Two kinds of patterns are supported. Name patterns are matched against the
// base name of an entry, so "node_modules" skips that directory wherever it
// appears. Path patterns are matched against the slash separated path relative
// to the scan root, so "var/cache/**" only skips that subtree. Both use
// doublestar glob syntax; a plain name is a valid glob that only matches
// itself. A trailing slash restricts a pattern to directories.
package exclude

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/glorpus-work/permfix/pkg/errors"
)

// pattern is a single parsed exclusion pattern.
type pattern struct {
	raw           string
	glob          string
	directoryOnly bool
}

func parsePattern(raw string, relative bool) (pattern, error) {
	glob := strings.TrimSpace(raw)
	if glob == "" {
		return pattern{}, errors.ErrInvalidPatternWithDetails(raw, errEmpty)
	}

	var directoryOnly bool
	if len(glob) > 1 && strings.HasSuffix(glob, "/") {
		directoryOnly = true
		glob = strings.TrimRight(glob, "/")
	}

	if relative {
		glob = strings.TrimPrefix(path.Clean("/"+glob), "/")
		if glob == "" {
			return pattern{}, errors.ErrInvalidPatternWithDetails(raw, errRoot)
		}
	} else if strings.Contains(glob, "/") {
		return pattern{}, errors.ErrInvalidPatternWithDetails(raw, errSlashInName)
	}

	if !doublestar.ValidatePattern(glob) {
		return pattern{}, errors.ErrInvalidPatternWithDetails(raw, errSyntax)
	}

	return pattern{raw: raw, glob: glob, directoryOnly: directoryOnly}, nil
}

func (p pattern) matches(value string, isDir bool) bool {
	if p.directoryOnly && !isDir {
		return false
	}
	if p.glob == value {
		return true
	}
	// ValidatePattern already ran, so Match cannot fail.
	ok, _ := doublestar.Match(p.glob, value)
	return ok
}

// Matcher holds compiled name and path patterns. The zero value excludes
// nothing.
type Matcher struct {
	names []pattern
	paths []pattern
}

// New compiles name and path patterns. Any invalid pattern fails the whole
// call.
func New(names, paths []string) (*Matcher, error) {
	m := &Matcher{}
	for _, raw := range names {
		p, err := parsePattern(raw, false)
		if err != nil {
			return nil, err
		}
		m.names = append(m.names, p)
	}
	for _, raw := range paths {
		p, err := parsePattern(raw, true)
		if err != nil {
			return nil, err
		}
		m.paths = append(m.paths, p)
	}
	return m, nil
}

// ValidateNames checks name patterns without building a matcher.
func ValidateNames(names []string) error {
	_, err := New(names, nil)
	return err
}

// ValidatePaths checks path patterns without building a matcher.
func ValidatePaths(paths []string) error {
	_, err := New(nil, paths)
	return err
}

// Empty reports whether the matcher has no patterns.
func (m *Matcher) Empty() bool {
	return m == nil || (len(m.names) == 0 && len(m.paths) == 0)
}

// Excluded reports whether the entry at rel (relative to the scan root, any
// separator) with base name name should be skipped.
func (m *Matcher) Excluded(rel, name string, isDir bool) bool {
	if m.Empty() {
		return false
	}

	for _, p := range m.names {
		if p.matches(name, isDir) {
			return true
		}
	}

	if len(m.paths) == 0 {
		return false
	}
	rel = strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(rel)), "/")
	for _, p := range m.paths {
		if p.matches(rel, isDir) {
			return true
		}
	}
	return false
}
