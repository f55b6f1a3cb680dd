//go:generate mockgen -destination=./mocks/scanner.go . Walker,PermsOps

package scanner

import (
	"io/fs"
	"iter"

	"github.com/glorpus-work/permfix/pkg/fsutil"
	"github.com/glorpus-work/permfix/pkg/mode"
)

// Walker is the tree walk the scanner audits.
type Walker interface {
	Filter(root string, excluder fsutil.Excluder, onSkip fsutil.SkipFunc) iter.Seq[fsutil.Entry]
}

// PermsOps reads and changes permission bits. Stat must not serve cached
// metadata: permission state can change under the scanner's feet.
type PermsOps interface {
	Stat(path string) (fs.FileInfo, error)
	Chmod(path string, perm fs.FileMode) error
	RealPath(path string) string
}

// Event phases.
const (
	PhaseScan      = "scan"
	PhaseSkip      = "skip"
	PhaseConcerned = "concerned"
	PhaseFix       = "fix"
	PhaseError     = "error"
)

// Event represents a simple progress notification.
type Event struct {
	Phase string // scan|skip|concerned|fix|error
	Path  string
	Msg   string
	Err   error
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// Stats counts what the scanner has seen across all Scan calls.
type Stats struct {
	Roots     int `json:"roots" yaml:"roots"`
	Visited   int `json:"visited" yaml:"visited"`
	Compliant int `json:"compliant" yaml:"compliant"`
	Unaudited int `json:"unaudited" yaml:"unaudited"`
	Concerned int `json:"concerned" yaml:"concerned"`
	Skipped   int `json:"skipped" yaml:"skipped"`
}

// Change is one permission change applied by Fix.
type Change struct {
	Path  string
	IsDir bool
	From  mode.Mode
	To    mode.Mode
}

// Failure is a path Fix could not bring in line.
type Failure struct {
	Path string
	Err  error
}

// FixReport summarises one Fix call.
type FixReport struct {
	Applied []Change
	Failed  []Failure
}

// OK reports whether every concerned path was fixed.
func (r FixReport) OK() bool {
	return len(r.Failed) == 0
}
