package policy

import (
	"testing"

	"github.com/glorpus-work/permfix/pkg/errors"
	"github.com/glorpus-work/permfix/pkg/mode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modePtr(m mode.Mode) *mode.Mode {
	return &m
}

func TestNew_AuditsNothing(t *testing.T) {
	p := New()

	assert.False(t, p.Audits())
	_, ok := p.DefaultFileMode()
	assert.False(t, ok)
	_, ok = p.DefaultDirectoryMode()
	assert.False(t, ok)
	assert.Empty(t, p.ConcernedPaths())
	assert.True(t, p.Excluder().Empty())
	assert.Equal(t, Unaudited, p.Classify(false, 0o777))
	assert.Equal(t, Unaudited, p.Classify(true, 0o777))
}

func TestSetDefaultModes(t *testing.T) {
	p := New()
	require.NoError(t, p.SetDefaultFileMode(0o644))
	require.NoError(t, p.SetDefaultDirectoryMode(0o755))

	m, ok := p.DefaultFileMode()
	assert.True(t, ok)
	assert.Equal(t, mode.Mode(0o644), m)

	m, ok = p.DefaultModeFor(true)
	assert.True(t, ok)
	assert.Equal(t, mode.Mode(0o755), m)
	assert.True(t, p.Audits())

	p.ClearDefaultFileMode()
	_, ok = p.DefaultModeFor(false)
	assert.False(t, ok)
	assert.True(t, p.Audits())

	p.ClearDefaultDirectoryMode()
	assert.False(t, p.Audits())
}

func TestInvalidModesLeavePolicyUntouched(t *testing.T) {
	tests := []struct {
		name string
		call func(p *Policy) error
	}{
		{"default file mode -1", func(p *Policy) error { return p.SetDefaultFileMode(-1) }},
		{"default file mode 1", func(p *Policy) error { return p.SetDefaultFileMode(1) }},
		{"default file mode -8", func(p *Policy) error { return p.SetDefaultFileMode(-8) }},
		{"default file mode -0o777", func(p *Policy) error { return p.SetDefaultFileMode(-0o777) }},
		{"default directory mode -0o77", func(p *Policy) error { return p.SetDefaultDirectoryMode(-0o77) }},
		{"default directory mode -1", func(p *Policy) error { return p.SetDefaultDirectoryMode(-1) }},
		{"default directory mode 1", func(p *Policy) error { return p.SetDefaultDirectoryMode(1) }},
		{"allowed file modes", func(p *Policy) error { return p.SetAllowedFileModes(0o600, -1) }},
		{"allowed file modes 1", func(p *Policy) error { return p.SetAllowedFileModes(1) }},
		{"allowed directory modes", func(p *Policy) error { return p.SetAllowedDirectoryModes(0o700, 1) }},
		{"allowed directory modes -1", func(p *Policy) error { return p.SetAllowedDirectoryModes(-1) }},
		{"allowed directory modes -8", func(p *Policy) error { return p.SetAllowedDirectoryModes(0o755, -8) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			require.NoError(t, p.SetDefaultFileMode(0o644))
			require.NoError(t, p.SetDefaultDirectoryMode(0o755))
			require.NoError(t, p.SetAllowedFileModes(0o400))
			require.NoError(t, p.SetAllowedDirectoryModes(0o750))

			err := tt.call(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidMode)

			m, _ := p.DefaultFileMode()
			assert.Equal(t, mode.Mode(0o644), m)
			m, _ = p.DefaultDirectoryMode()
			assert.Equal(t, mode.Mode(0o755), m)
			assert.Equal(t, []mode.Mode{0o400}, p.AllowedFileModes())
			assert.Equal(t, []mode.Mode{0o750}, p.AllowedDirectoryModes())
		})
	}
}

func TestAllowedModes(t *testing.T) {
	p := New()
	require.NoError(t, p.SetAllowedFileModes(0o400, 0o644, 0o400))
	assert.Equal(t, []mode.Mode{0o400, 0o644}, p.AllowedFileModes())

	require.NoError(t, p.SetAllowedFileModes())
	assert.Empty(t, p.AllowedFileModes())

	list := []mode.Mode{0o700}
	require.NoError(t, p.SetAllowedDirectoryModes(list...))
	list[0] = 0o777
	assert.Equal(t, []mode.Mode{0o700}, p.AllowedDirectoryModes(), "policy keeps its own copy")
}

func TestClassify(t *testing.T) {
	p, err := FromOptions(Options{
		DefaultFileMode:       modePtr(0o644),
		DefaultDirectoryMode:  modePtr(0o755),
		AllowedFileModes:      []mode.Mode{0o400},
		AllowedDirectoryModes: []mode.Mode{0o777},
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		isDir   bool
		current mode.Mode
		want    Verdict
	}{
		{"allowed file", false, 0o400, Compliant},
		{"file equal to default is not on the allow-list", false, 0o644, Concerned},
		{"other file", false, 0o666, Concerned},
		{"allowed directory", true, 0o777, Compliant},
		{"other directory", true, 0o700, Concerned},
		{"special bits are ignored", false, 0o4400, Compliant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Classify(tt.isDir, tt.current))
		})
	}

	p.ClearDefaultDirectoryMode()
	assert.Equal(t, Unaudited, p.Classify(true, 0o700))
	assert.Equal(t, Concerned, p.Classify(false, 0o666))
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "unaudited", Unaudited.String())
	assert.Equal(t, "compliant", Compliant.String())
	assert.Equal(t, "concerned", Concerned.String())
	assert.Equal(t, "unknown", Verdict(42).String())
}

func TestExclusions(t *testing.T) {
	p := New()
	require.NoError(t, p.SetExcludedNames("foo", ".git"))
	require.NoError(t, p.SetExcludedPaths("vendor/**"))

	assert.Equal(t, []string{"foo", ".git"}, p.ExcludedNames())
	assert.Equal(t, []string{"vendor/**"}, p.ExcludedPaths())
	assert.True(t, p.Excluder().Excluded("foo", "foo", true))
	assert.True(t, p.Excluder().Excluded("vendor/a/b", "b", false))
	assert.False(t, p.Excluder().Excluded("src/a", "a", false))

	err := p.SetExcludedNames("ok", "[bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidPattern)
	assert.Equal(t, []string{"foo", ".git"}, p.ExcludedNames(), "failed setter leaves patterns untouched")
	assert.True(t, p.Excluder().Excluded("foo", "foo", true))
}

func TestConcernedPaths(t *testing.T) {
	p := New()

	assert.Equal(t, 2, p.AddConcernedPaths("/a", "/b"))
	assert.Equal(t, 1, p.AddConcernedPaths("/b", "/c", "/a"))
	assert.Equal(t, 0, p.AddConcernedPaths())

	assert.Equal(t, []string{"/a", "/b", "/c"}, p.ConcernedPaths())
	assert.Equal(t, 3, p.ConcernedCount())
	assert.True(t, p.HasConcernedPath("/c"))
	assert.False(t, p.HasConcernedPath("/d"))

	got := p.ConcernedPaths()
	got[0] = "/mutated"
	assert.Equal(t, "/a", p.ConcernedPaths()[0])
}

func TestFromOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"bad default file mode", Options{DefaultFileMode: modePtr(1)}, errors.ErrInvalidMode},
		{"bad default directory mode", Options{DefaultDirectoryMode: modePtr(-1)}, errors.ErrInvalidMode},
		{"bad allowed file mode", Options{AllowedFileModes: []mode.Mode{0o20000}}, errors.ErrInvalidMode},
		{"bad allowed directory mode", Options{AllowedDirectoryModes: []mode.Mode{0o7}}, errors.ErrInvalidMode},
		{"bad name pattern", Options{ExcludedNames: []string{"a/b"}}, errors.ErrInvalidPattern},
		{"bad path pattern", Options{ExcludedPaths: []string{""}}, errors.ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := FromOptions(tt.opts)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
