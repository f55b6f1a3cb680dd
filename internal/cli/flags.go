package cli

import (
	"github.com/glorpus-work/permfix/pkg/config"
	"github.com/glorpus-work/permfix/pkg/mode"
	"github.com/spf13/pflag"
)

// policyFlags override the policy block of the config file. Only flags the
// user actually passed are applied.
type policyFlags struct {
	fileMode     mode.Mode
	dirMode      mode.Mode
	noFiles      bool
	noDirs       bool
	allowFile    []string
	allowDir     []string
	excludeNames []string
	excludePaths []string
}

func (f *policyFlags) register(fs *pflag.FlagSet) {
	fs.Var(&f.fileMode, "file-mode", "mode applied to non-compliant files (e.g. 0644)")
	fs.Var(&f.dirMode, "dir-mode", "mode applied to non-compliant directories (e.g. 0755)")
	fs.BoolVar(&f.noFiles, "no-files", false, "do not audit files")
	fs.BoolVar(&f.noDirs, "no-dirs", false, "do not audit directories")
	fs.StringSliceVar(&f.allowFile, "allow-file-mode", nil, "file modes that are compliant (repeatable, replaces the config list)")
	fs.StringSliceVar(&f.allowDir, "allow-dir-mode", nil, "directory modes that are compliant (repeatable, replaces the config list)")
	fs.StringSliceVar(&f.excludeNames, "exclude-name", nil, "skip entries whose name matches this glob (repeatable)")
	fs.StringSliceVar(&f.excludePaths, "exclude-path", nil, "skip entries whose path below the root matches this glob (repeatable)")

	// Keep "(default 0000)" out of the help text.
	fs.Lookup("file-mode").DefValue = ""
	fs.Lookup("dir-mode").DefValue = ""
}

// apply copies every changed flag into cfg.Policy. Exclusion flags extend the
// configured lists; everything else replaces the configured value.
func (f *policyFlags) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	p := &cfg.Policy

	if fs.Changed("file-mode") {
		m := f.fileMode
		p.DefaultFileMode = &m
	}
	if fs.Changed("dir-mode") {
		m := f.dirMode
		p.DefaultDirectoryMode = &m
	}
	if f.noFiles {
		p.DefaultFileMode = nil
	}
	if f.noDirs {
		p.DefaultDirectoryMode = nil
	}
	if fs.Changed("allow-file-mode") {
		modes, err := mode.ParseList(f.allowFile)
		if err != nil {
			return err
		}
		p.AllowedFileModes = modes
	}
	if fs.Changed("allow-dir-mode") {
		modes, err := mode.ParseList(f.allowDir)
		if err != nil {
			return err
		}
		p.AllowedDirectoryModes = modes
	}
	p.ExcludedNames = append(p.ExcludedNames, f.excludeNames...)
	p.ExcludedPaths = append(p.ExcludedPaths, f.excludePaths...)

	return nil
}
