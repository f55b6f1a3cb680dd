package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/glorpus-work/permfix/pkg/config"
	"github.com/glorpus-work/permfix/pkg/scanner"
	"gopkg.in/yaml.v3"
)

// ScanResult is what scan prints.
type ScanResult struct {
	Directories []string      `json:"directories" yaml:"directories"`
	Concerned   []string      `json:"concerned" yaml:"concerned"`
	Stats       scanner.Stats `json:"stats" yaml:"stats"`
}

// FixResult is what fix prints.
type FixResult struct {
	Directories []string      `json:"directories" yaml:"directories"`
	Applied     []ChangeView  `json:"applied" yaml:"applied"`
	Failed      []FailureView `json:"failed" yaml:"failed"`
	Stats       scanner.Stats `json:"stats" yaml:"stats"`
}

// ChangeView is a scanner.Change with modes rendered as octal strings.
type ChangeView struct {
	Path string `json:"path" yaml:"path"`
	Kind string `json:"kind" yaml:"kind"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
	// Rwx is To rendered like ls, e.g. "rwxr-xr-x".
	Rwx  string `json:"rwx" yaml:"rwx"`
}

// FailureView is a scanner.Failure with the error rendered as text.
type FailureView struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

func newFixResult(dirs []string, report scanner.FixReport, stats scanner.Stats) FixResult {
	res := FixResult{
		Directories: dirs,
		Applied:     make([]ChangeView, 0, len(report.Applied)),
		Failed:      make([]FailureView, 0, len(report.Failed)),
		Stats:       stats,
	}
	for _, c := range report.Applied {
		kind := "file"
		if c.IsDir {
			kind = "directory"
		}
		res.Applied = append(res.Applied, ChangeView{Path: c.Path, Kind: kind, From: c.From.String(), To: c.To.String(), Rwx: c.To.Symbolic()})
	}
	for _, f := range report.Failed {
		res.Failed = append(res.Failed, FailureView{Path: f.Path, Error: f.Err.Error()})
	}
	return res
}

// printer renders results in the configured output format.
type printer struct {
	w      io.Writer
	format string
	header *color.Color
	warn   *color.Color
	ok     *color.Color
	bad    *color.Color
}

func newPrinter(w io.Writer, s config.Settings) *printer {
	p := &printer{
		w:      w,
		format: s.OutputFormat,
		header: color.New(color.Bold),
		warn:   color.New(color.FgYellow),
		ok:     color.New(color.FgGreen),
		bad:    color.New(color.FgRed, color.Bold),
	}
	if !s.ColorOutput {
		for _, c := range []*color.Color{p.header, p.warn, p.ok, p.bad} {
			c.DisableColor()
		}
	}
	return p
}

// structured writes v as json or yaml. It reports false for text output.
func (p *printer) structured(v interface{}) (bool, error) {
	switch p.format {
	case config.OutputJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", JSONIndent)
		return true, enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(YAMLIndent)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

// structuredOnly writes v as json or yaml and falls back to yaml for text.
func (p *printer) structuredOnly(v interface{}) error {
	if p.format == config.OutputText {
		p.format = config.OutputYAML
	}
	_, err := p.structured(v)
	return err
}

func (p *printer) printScan(res ScanResult) error {
	if done, err := p.structured(res); done {
		return err
	}

	if len(res.Concerned) == 0 {
		_, _ = p.ok.Fprintln(p.w, "All audited entries are compliant.")
	} else {
		_, _ = p.header.Fprintf(p.w, "Non-compliant paths (%s):\n", humanize.Comma(int64(len(res.Concerned))))
		for _, path := range res.Concerned {
			_, _ = p.warn.Fprintf(p.w, "  %s\n", path)
		}
	}
	p.printStats(res.Stats)
	return nil
}

func (p *printer) printFix(res FixResult) error {
	if done, err := p.structured(res); done {
		return err
	}

	if len(res.Applied) == 0 && len(res.Failed) == 0 {
		_, _ = p.ok.Fprintln(p.w, "Nothing to fix.")
	}
	if len(res.Applied) > 0 {
		_, _ = p.header.Fprintf(p.w, "Fixed (%s):\n", humanize.Comma(int64(len(res.Applied))))
		for _, c := range res.Applied {
			_, _ = fmt.Fprintf(p.w, "  %s -> %s  %s  (%s)\n", c.From, p.ok.Sprint(c.To), c.Path, c.Rwx)
		}
	}
	if len(res.Failed) > 0 {
		_, _ = p.bad.Fprintf(p.w, "Failed (%s):\n", humanize.Comma(int64(len(res.Failed))))
		for _, f := range res.Failed {
			_, _ = fmt.Fprintf(p.w, "  %s: %s\n", f.Path, f.Error)
		}
	}
	p.printStats(res.Stats)
	return nil
}

func (p *printer) printStats(s scanner.Stats) {
	_, _ = fmt.Fprintf(p.w, "\n%s entries visited in %s %s: %s compliant, %s non-compliant, %s not audited, %s skipped\n",
		humanize.Comma(int64(s.Visited)),
		humanize.Comma(int64(s.Roots)),
		plural(s.Roots, "directory", "directories"),
		humanize.Comma(int64(s.Compliant)),
		humanize.Comma(int64(s.Concerned)),
		humanize.Comma(int64(s.Unaudited)),
		humanize.Comma(int64(s.Skipped)),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
