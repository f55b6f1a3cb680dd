package cli

import (
	"bytes"
	"testing"

	"github.com/glorpus-work/permfix/pkg/config"
	"github.com/glorpus-work/permfix/pkg/errors"
	"github.com/glorpus-work/permfix/pkg/mode"
	"github.com/glorpus-work/permfix/pkg/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFixResult(t *testing.T) {
	report := scanner.FixReport{
		Applied: []scanner.Change{
			{Path: "/a", IsDir: true, From: 0o777, To: 0o755},
			{Path: "/a/b", From: 0o666, To: mode.Mode(0o644)},
		},
		Failed: []scanner.Failure{{Path: "/a/c", Err: errors.ErrModeNotAppliedWithDetails(0o644, 0o600)}},
	}

	res := newFixResult([]string{"/a"}, report, scanner.Stats{Roots: 1})

	assert.Equal(t, []ChangeView{
		{Path: "/a", Kind: "directory", From: "0777", To: "0755", Rwx: "rwxr-xr-x"},
		{Path: "/a/b", Kind: "file", From: "0666", To: "0644", Rwx: "rw-r--r--"},
	}, res.Applied)
	require.Len(t, res.Failed, 1)
	assert.Contains(t, res.Failed[0].Error, "want 0644, found 0600")
	assert.Equal(t, 1, res.Stats.Roots)
}

func TestPrinter_TextFix(t *testing.T) {
	buf := &bytes.Buffer{}
	p := newPrinter(buf, config.Settings{OutputFormat: config.OutputText})

	require.NoError(t, p.printFix(FixResult{
		Applied: []ChangeView{{Path: "/a", Kind: "directory", From: "0777", To: "0755", Rwx: "rwxr-xr-x"}},
		Failed:  []FailureView{{Path: "/b", Error: "permission denied"}},
		Stats:   scanner.Stats{Roots: 2, Visited: 12345, Concerned: 2},
	}))

	out := buf.String()
	assert.Contains(t, out, "Fixed (1):")
	assert.Contains(t, out, "0777 -> 0755  /a  (rwxr-xr-x)")
	assert.Contains(t, out, "Failed (1):")
	assert.Contains(t, out, "  /b: permission denied")
	assert.Contains(t, out, "12,345 entries visited in 2 directories")
}

func TestPrinter_YAMLScan(t *testing.T) {
	buf := &bytes.Buffer{}
	p := newPrinter(buf, config.Settings{OutputFormat: config.OutputYAML})

	require.NoError(t, p.printScan(ScanResult{Directories: []string{"/srv"}, Concerned: []string{"/srv/x"}}))
	assert.Contains(t, buf.String(), "concerned:\n  - /srv/x\n")
}

func TestLogEvent(t *testing.T) {
	env := newCLIEnv(t, "")
	env.verbose = true
	_, err := loadConfig()
	require.NoError(t, err)

	logEvent(scanner.Event{Phase: scanner.PhaseScan, Path: "/srv"})
	logEvent(scanner.Event{Phase: scanner.PhaseSkip, Path: "/srv/locked", Msg: "unreadable", Err: errors.ErrModeNotApplied})
	logEvent(scanner.Event{Phase: scanner.PhaseFix, Path: "/srv/a", Msg: "0777 -> 0755"})

	logs := env.logs.String()
	assert.Contains(t, logs, "Scanning directory")
	assert.Contains(t, logs, "path=/srv/locked")
	assert.Contains(t, logs, "reason=unreadable")
	assert.Contains(t, logs, `change="0777 -> 0755"`)
}
