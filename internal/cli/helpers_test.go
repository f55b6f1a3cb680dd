package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/glorpus-work/permfix/internal/logger"
	"github.com/glorpus-work/permfix/pkg/mode"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// cliEnv points the package globals at a private config file and an
// in-memory filesystem for the duration of a test.
type cliEnv struct {
	fs         afero.Fs
	configPath string
	format     string
	verbose    bool
	noColor    bool
	logs       *bytes.Buffer
}

func newCLIEnv(t *testing.T, configYAML string) *cliEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not audited on windows")
	}

	env := &cliEnv{
		fs:         afero.NewMemMapFs(),
		configPath: filepath.Join(t.TempDir(), "config.yaml"),
		noColor:    true,
		logs:       &bytes.Buffer{},
	}
	if configYAML != "" {
		require.NoError(t, os.WriteFile(env.configPath, []byte(configYAML), 0o644))
	}

	oldFs := DefaultFs
	DefaultFs = env.fs
	ConfigPath = &env.configPath
	OutputFormat = &env.format
	Verbose = &env.verbose
	NoColor = &env.noColor
	logger.SetTestOutput(env.logs)

	t.Cleanup(func() {
		DefaultFs = oldFs
		ConfigPath, OutputFormat, Verbose, NoColor = nil, nil, nil, nil
		logger.UnsetTestOutput()
	})
	return env
}

// webTree creates:
//
//	/srv/www          0755
//	/srv/www/.git     0777
//	/srv/www/.git/config 0666
//	/srv/www/cache    0777
//	/srv/www/index.php 0666
//	/srv/www/ok.php   0644
func (e *cliEnv) webTree(t *testing.T) string {
	t.Helper()
	root := "/srv/www"
	dirs := map[string]os.FileMode{root: 0o755, root + "/.git": 0o777, root + "/cache": 0o777}
	files := map[string]os.FileMode{root + "/.git/config": 0o666, root + "/index.php": 0o666, root + "/ok.php": 0o644}

	for dir, perm := range dirs {
		require.NoError(t, e.fs.MkdirAll(dir, perm))
	}
	for dir, perm := range dirs {
		require.NoError(t, e.fs.Chmod(dir, perm))
	}
	for file, perm := range files {
		require.NoError(t, afero.WriteFile(e.fs, file, []byte("<?php"), perm))
		require.NoError(t, e.fs.Chmod(file, perm))
	}
	return root
}

func (e *cliEnv) perm(t *testing.T, path string) mode.Mode {
	t.Helper()
	info, err := e.fs.Stat(path)
	require.NoError(t, err)
	return mode.FromFileMode(info.Mode())
}

func execute(cmd *cobra.Command, args ...string) (string, error) {
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
