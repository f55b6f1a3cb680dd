// Package scanner audits directory trees against a permission policy and
// repairs what it finds.
//
// A Scanner works in two phases. Scan walks the given roots and records every
// entry whose permission bits are not allowed by the policy. DryRun returns
// that record untouched; Fix changes each recorded path to the default mode
// for its kind. Per-entry failures in either phase are reported through
// Hooks and the log and never stop the rest of the audit.
package scanner

import (
	"github.com/glorpus-work/permfix/internal/logger"
	"github.com/glorpus-work/permfix/pkg/errors"
	"github.com/glorpus-work/permfix/pkg/fsutil"
	"github.com/glorpus-work/permfix/pkg/mode"
	"github.com/glorpus-work/permfix/pkg/platform"
	"github.com/glorpus-work/permfix/pkg/policy"
	"github.com/spf13/afero"
)

// Scanner runs audits for one policy. It is not safe for concurrent use.
type Scanner struct {
	policy      *policy.Policy
	walker      Walker
	ops         PermsOps
	hooks       Hooks
	unsupported func() bool
	stats       Stats
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithFs makes the scanner walk and chmod through fsys.
func WithFs(fsys afero.Fs) Option {
	return func(s *Scanner) {
		s.walker = fsutil.NewWalker(fsys)
		s.ops = fsutil.NewPermsOps(fsys)
	}
}

// WithWalker replaces the tree walk.
func WithWalker(w Walker) Option {
	return func(s *Scanner) { s.walker = w }
}

// WithPermsOps replaces the stat/chmod primitives.
func WithPermsOps(ops PermsOps) Option {
	return func(s *Scanner) { s.ops = ops }
}

// WithHooks sets progress callbacks.
func WithHooks(h Hooks) Option {
	return func(s *Scanner) { s.hooks = h }
}

// WithPlatformCheck replaces the "are permission bits meaningless here" query.
func WithPlatformCheck(unsupported func() bool) Option {
	return func(s *Scanner) { s.unsupported = unsupported }
}

// New returns a Scanner for p using the OS filesystem unless options say
// otherwise. A nil p is replaced by an empty policy.
func New(p *policy.Policy, opts ...Option) *Scanner {
	if p == nil {
		p = policy.New()
	}
	s := &Scanner{
		policy:      p,
		unsupported: platform.PermissionBitsUnsupported,
	}
	WithFs(afero.NewOsFs())(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the policy the scanner records into.
func (s *Scanner) Policy() *policy.Policy {
	return s.policy
}

// Stats returns counters accumulated over every Scan call.
func (s *Scanner) Stats() Stats {
	return s.stats
}

func (s *Scanner) emit(e Event) {
	if s.hooks.OnEvent != nil {
		s.hooks.OnEvent(e)
	}
}

// Scan audits every directory in dirs and appends non-compliant paths to the
// policy's result set. Roots that do not exist or are not directories are
// skipped. Scan does nothing on platforms without POSIX permission bits or
// when the policy has no default mode for either kind.
func (s *Scanner) Scan(dirs ...string) *Scanner {
	if s.unsupported != nil && s.unsupported() {
		logger.Debug("permission bits are not supported on this platform, skipping scan",
			logger.Fields{"platform": platform.CurrentPlatform().String()})
		s.emit(Event{Phase: PhaseSkip, Msg: "platform has no POSIX permission bits"})
		return s
	}
	if !s.policy.Audits() {
		logger.Debug("no default file or directory mode configured, nothing to audit")
		return s
	}

	for _, dir := range dirs {
		info, err := s.ops.Stat(dir)
		if err != nil || !info.IsDir() {
			logger.Debug("skipping root that is not a directory", logger.Fields{"path": dir})
			s.emit(Event{Phase: PhaseSkip, Path: dir, Msg: "not a directory", Err: err})
			continue
		}

		s.stats.Roots++
		s.emit(Event{Phase: PhaseScan, Path: dir, Msg: "scanning"})
		s.scanRoot(dir)
	}

	return s
}

func (s *Scanner) scanRoot(root string) {
	onSkip := func(path string, err error) {
		s.stats.Skipped++
		logger.Warn("skipping unreadable path", logger.Fields{"path": path, "error": err.Error()})
		s.emit(Event{Phase: PhaseSkip, Path: path, Msg: "unreadable", Err: err})
	}

	var found []string
	for entry := range s.walker.Filter(root, s.policy.Excluder(), onSkip) {
		s.stats.Visited++

		current := entry.Mode()
		switch s.policy.Classify(entry.IsDir, current) {
		case policy.Unaudited:
			s.stats.Unaudited++
		case policy.Compliant:
			s.stats.Compliant++
		case policy.Concerned:
			s.stats.Concerned++
			found = append(found, entry.RealPath)
			logger.Debug("non-compliant permissions", logger.Fields{
				"path": entry.RealPath,
				"mode": current.String(),
				"dir":  entry.IsDir,
			})
			s.emit(Event{Phase: PhaseConcerned, Path: entry.RealPath, Msg: current.String()})
		}
	}

	s.policy.AddConcernedPaths(found...)
}

// DryRun returns the concerned paths recorded so far, in the order they were
// found. Nothing on disk is touched.
func (s *Scanner) DryRun() []string {
	return s.policy.ConcernedPaths()
}

// AddConcernedPaths resolves each path to its canonical form and appends it
// to the result set, bypassing Scan. Paths already present are ignored.
func (s *Scanner) AddConcernedPaths(paths ...string) *Scanner {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		resolved = append(resolved, s.ops.RealPath(p))
	}
	s.policy.AddConcernedPaths(resolved...)
	return s
}

// Fix changes every concerned path to the default mode for its kind, judged
// by a fresh stat of the path. A path that cannot be fixed is reported and
// the rest are still processed. The result set is left as is, so calling Fix
// again repeats the same changes.
func (s *Scanner) Fix() FixReport {
	var report FixReport

	for _, path := range s.policy.ConcernedPaths() {
		change, err := s.fixPath(path)
		if err != nil {
			logger.Error("failed to fix permissions", logger.Fields{"path": path, "error": err.Error()})
			s.emit(Event{Phase: PhaseError, Path: path, Msg: "fix failed", Err: err})
			report.Failed = append(report.Failed, Failure{Path: path, Err: err})
			continue
		}

		logger.Debug("fixed permissions", logger.Fields{
			"path": path,
			"from": change.From.String(),
			"to":   change.To.String(),
		})
		s.emit(Event{Phase: PhaseFix, Path: path, Msg: change.From.String() + " -> " + change.To.String()})
		report.Applied = append(report.Applied, change)
	}

	return report
}

func (s *Scanner) fixPath(path string) (Change, error) {
	info, err := s.ops.Stat(path)
	if err != nil {
		return Change{}, errors.Wrap(err, "stat before chmod")
	}

	isDir := info.IsDir()
	target, ok := s.policy.DefaultModeFor(isDir)
	if !ok {
		return Change{}, errors.ErrNoDefaultMode
	}

	change := Change{
		Path:  path,
		IsDir: isDir,
		From:  mode.FromFileMode(info.Mode()),
		To:    target,
	}

	if err := s.ops.Chmod(path, target.FileMode()); err != nil {
		return Change{}, errors.Wrap(err, "chmod")
	}

	after, err := s.ops.Stat(path)
	if err != nil {
		return Change{}, errors.Wrap(err, "stat after chmod")
	}
	if got := mode.FromFileMode(after.Mode()); got != target.Perm() {
		return Change{}, errors.ErrModeNotAppliedWithDetails(int(target.Perm()), int(got))
	}

	return change, nil
}
