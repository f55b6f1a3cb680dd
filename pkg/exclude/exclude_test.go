package exclude

import (
	"testing"

	"github.com/glorpus-work/permfix/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_Names(t *testing.T) {
	m, err := New([]string{"foo", "*.sock", "cache/"}, nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		rel   string
		base  string
		isDir bool
		want  bool
	}{
		{"exact file name", "a/foo", "foo", false, true},
		{"exact directory name", "foo", "foo", true, true},
		{"glob", "run/app.sock", "app.sock", false, true},
		{"directory only pattern on directory", "var/cache", "cache", true, true},
		{"directory only pattern on file", "var/cache", "cache", false, false},
		{"name only matches base name", "foo/bar.php", "bar.php", false, false},
		{"no match", "baz", "baz", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Excluded(tt.rel, tt.base, tt.isDir))
		})
	}
}

func TestMatcher_Paths(t *testing.T) {
	m, err := New(nil, []string{"vendor/**", "/public/uploads", "./logs/*.log", "build/"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		rel   string
		isDir bool
		want  bool
	}{
		{"doublestar subtree", "vendor/pkg/file.go", false, true},
		{"leading slash anchors at root", "public/uploads", true, true},
		{"nested path does not match anchored pattern", "app/public/uploads", true, false},
		{"dot slash prefix", "logs/app.log", false, true},
		{"directory only", "build", true, true},
		{"directory only on file", "build", false, false},
		{"unrelated", "src/main.go", false, false},
		{"relative path is cleaned", "./vendor/x", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := tt.rel
			assert.Equal(t, tt.want, m.Excluded(tt.rel, base, tt.isDir))
		})
	}
}

func TestMatcher_Empty(t *testing.T) {
	var nilMatcher *Matcher
	assert.True(t, nilMatcher.Empty())
	assert.False(t, nilMatcher.Excluded("a", "a", false))

	m, err := New(nil, nil)
	require.NoError(t, err)
	assert.True(t, m.Empty())
	assert.False(t, m.Excluded("foo", "foo", true))
}

func TestNew_InvalidPatterns(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		paths []string
	}{
		{"empty name", []string{""}, nil},
		{"blank name", []string{"  "}, nil},
		{"slash in name", []string{"a/b"}, nil},
		{"bad name glob", []string{"[abc"}, nil},
		{"empty path", nil, []string{""}},
		{"root path", nil, []string{"/"}},
		{"bad path glob", nil, []string{"src/[a-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.names, tt.paths)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidPattern)
			assert.Nil(t, m)
		})
	}

	assert.ErrorIs(t, ValidateNames([]string{"ok", "a/b"}), errors.ErrInvalidPattern)
	assert.NoError(t, ValidatePaths([]string{"a/**"}))
}
