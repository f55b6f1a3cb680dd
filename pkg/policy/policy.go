// Package policy holds the permission policy of one audit session: which
// modes files and directories should have, which modes are tolerated, what is
// excluded from the walk, and the paths found to be out of line.
//
// Every mode stored in a Policy has passed mode.IsValid. Setters validate
// their whole input first and leave the policy untouched on error.
package policy

import (
	"slices"

	"github.com/glorpus-work/permfix/pkg/exclude"
	"github.com/glorpus-work/permfix/pkg/mode"
)

// Verdict is the outcome of classifying one entry.
type Verdict int

const (
	// Unaudited means no default mode is set for the entry's kind.
	Unaudited Verdict = iota
	// Compliant means the entry's mode is on the allow-list for its kind.
	Compliant
	// Concerned means the entry should be changed to the default mode.
	Concerned
)

func (v Verdict) String() string {
	switch v {
	case Unaudited:
		return "unaudited"
	case Compliant:
		return "compliant"
	case Concerned:
		return "concerned"
	default:
		return "unknown"
	}
}

// Policy is the mutable state of one audit session. It is not safe for
// concurrent use.
type Policy struct {
	defaultFileMode       *mode.Mode
	defaultDirectoryMode  *mode.Mode
	allowedFileModes      []mode.Mode
	allowedDirectoryModes []mode.Mode
	excludedNames         []string
	excludedPaths         []string
	matcher               *exclude.Matcher

	concerned    []string
	concernedSet map[string]struct{}
}

// New returns an empty policy that audits nothing.
func New() *Policy {
	return &Policy{
		matcher:      &exclude.Matcher{},
		concernedSet: make(map[string]struct{}),
	}
}

// Options configures a Policy in one step. Nil default modes disable
// auditing for that kind.
type Options struct {
	DefaultFileMode       *mode.Mode
	DefaultDirectoryMode  *mode.Mode
	AllowedFileModes      []mode.Mode
	AllowedDirectoryModes []mode.Mode
	ExcludedNames         []string
	ExcludedPaths         []string
}

// FromOptions builds a Policy, failing on the first invalid value.
func FromOptions(opts Options) (*Policy, error) {
	p := New()
	if opts.DefaultFileMode != nil {
		if err := p.SetDefaultFileMode(*opts.DefaultFileMode); err != nil {
			return nil, err
		}
	}
	if opts.DefaultDirectoryMode != nil {
		if err := p.SetDefaultDirectoryMode(*opts.DefaultDirectoryMode); err != nil {
			return nil, err
		}
	}
	if err := p.SetAllowedFileModes(opts.AllowedFileModes...); err != nil {
		return nil, err
	}
	if err := p.SetAllowedDirectoryModes(opts.AllowedDirectoryModes...); err != nil {
		return nil, err
	}
	if err := p.SetExclusions(opts.ExcludedNames, opts.ExcludedPaths); err != nil {
		return nil, err
	}
	return p, nil
}

// SetDefaultFileMode sets the mode non-compliant files are changed to and
// enables file auditing.
func (p *Policy) SetDefaultFileMode(m mode.Mode) error {
	if err := m.Validate(); err != nil {
		return err
	}
	p.defaultFileMode = &m
	return nil
}

// SetDefaultDirectoryMode sets the mode non-compliant directories are
// changed to and enables directory auditing.
func (p *Policy) SetDefaultDirectoryMode(m mode.Mode) error {
	if err := m.Validate(); err != nil {
		return err
	}
	p.defaultDirectoryMode = &m
	return nil
}

// ClearDefaultFileMode disables file auditing.
func (p *Policy) ClearDefaultFileMode() {
	p.defaultFileMode = nil
}

// ClearDefaultDirectoryMode disables directory auditing.
func (p *Policy) ClearDefaultDirectoryMode() {
	p.defaultDirectoryMode = nil
}

// DefaultFileMode returns the default file mode and whether one is set.
func (p *Policy) DefaultFileMode() (mode.Mode, bool) {
	if p.defaultFileMode == nil {
		return 0, false
	}
	return *p.defaultFileMode, true
}

// DefaultDirectoryMode returns the default directory mode and whether one is set.
func (p *Policy) DefaultDirectoryMode() (mode.Mode, bool) {
	if p.defaultDirectoryMode == nil {
		return 0, false
	}
	return *p.defaultDirectoryMode, true
}

// DefaultModeFor returns the default mode for a directory or a file.
func (p *Policy) DefaultModeFor(isDir bool) (mode.Mode, bool) {
	if isDir {
		return p.DefaultDirectoryMode()
	}
	return p.DefaultFileMode()
}

// Audits reports whether at least one default mode is set.
func (p *Policy) Audits() bool {
	return p.defaultFileMode != nil || p.defaultDirectoryMode != nil
}

// SetAllowedFileModes replaces the file allow-list. Duplicates are dropped.
func (p *Policy) SetAllowedFileModes(modes ...mode.Mode) error {
	if err := mode.ValidateAll(modes); err != nil {
		return err
	}
	p.allowedFileModes = dedupModes(modes)
	return nil
}

// SetAllowedDirectoryModes replaces the directory allow-list. Duplicates are dropped.
func (p *Policy) SetAllowedDirectoryModes(modes ...mode.Mode) error {
	if err := mode.ValidateAll(modes); err != nil {
		return err
	}
	p.allowedDirectoryModes = dedupModes(modes)
	return nil
}

// AllowedFileModes returns a copy of the file allow-list.
func (p *Policy) AllowedFileModes() []mode.Mode {
	return slices.Clone(p.allowedFileModes)
}

// AllowedDirectoryModes returns a copy of the directory allow-list.
func (p *Policy) AllowedDirectoryModes() []mode.Mode {
	return slices.Clone(p.allowedDirectoryModes)
}

// SetExcludedNames replaces the base name patterns skipped during a walk.
func (p *Policy) SetExcludedNames(names ...string) error {
	return p.SetExclusions(names, p.excludedPaths)
}

// SetExcludedPaths replaces the root-relative path patterns skipped during a walk.
func (p *Policy) SetExcludedPaths(paths ...string) error {
	return p.SetExclusions(p.excludedNames, paths)
}

// SetExclusions replaces both pattern lists at once.
func (p *Policy) SetExclusions(names, paths []string) error {
	m, err := exclude.New(names, paths)
	if err != nil {
		return err
	}
	p.excludedNames = slices.Clone(names)
	p.excludedPaths = slices.Clone(paths)
	p.matcher = m
	return nil
}

// ExcludedNames returns a copy of the name patterns.
func (p *Policy) ExcludedNames() []string {
	return slices.Clone(p.excludedNames)
}

// ExcludedPaths returns a copy of the path patterns.
func (p *Policy) ExcludedPaths() []string {
	return slices.Clone(p.excludedPaths)
}

// Excluder returns the compiled exclusion patterns.
func (p *Policy) Excluder() *exclude.Matcher {
	return p.matcher
}

// Classify decides what to do with an entry of the given kind whose
// permission bits are current. Only the lowest nine bits are compared.
// The allow-list is authoritative: an allowed mode is compliant even when it
// differs from the default.
func (p *Policy) Classify(isDir bool, current mode.Mode) Verdict {
	current = current.Perm()
	if isDir {
		if p.defaultDirectoryMode == nil {
			return Unaudited
		}
		if mode.Contains(p.allowedDirectoryModes, current) {
			return Compliant
		}
		return Concerned
	}

	if p.defaultFileMode == nil {
		return Unaudited
	}
	if mode.Contains(p.allowedFileModes, current) {
		return Compliant
	}
	return Concerned
}

// AddConcernedPaths appends paths to the result set in order, skipping any
// already present. It returns how many were new. Paths are compared as given;
// callers canonicalise them first.
func (p *Policy) AddConcernedPaths(paths ...string) int {
	added := 0
	for _, path := range paths {
		if _, ok := p.concernedSet[path]; ok {
			continue
		}
		p.concernedSet[path] = struct{}{}
		p.concerned = append(p.concerned, path)
		added++
	}
	return added
}

// ConcernedPaths returns a copy of the result set in insertion order.
func (p *Policy) ConcernedPaths() []string {
	return slices.Clone(p.concerned)
}

// HasConcernedPath reports whether path is in the result set.
func (p *Policy) HasConcernedPath(path string) bool {
	_, ok := p.concernedSet[path]
	return ok
}

// ConcernedCount returns the size of the result set.
func (p *Policy) ConcernedCount() int {
	return len(p.concerned)
}

func dedupModes(modes []mode.Mode) []mode.Mode {
	out := make([]mode.Mode, 0, len(modes))
	for _, m := range modes {
		if !mode.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}
