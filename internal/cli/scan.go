package cli

import (
	"github.com/glorpus-work/permfix/pkg/config"
	"github.com/glorpus-work/permfix/pkg/errors"
	"github.com/glorpus-work/permfix/pkg/policy"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	var (
		pf             policyFlags
		failOnFindings bool
	)

	cmd := &cobra.Command{
		Use:   "scan [DIR...]",
		Short: "Report entries with non-compliant permissions",
		Long: `Walk each directory and list every file and directory whose permission
bits are not in the allowed list for its kind. Nothing is changed.

Directories default to the "directories" list of the config file.`,
		Example: `  permfix scan /srv/www
  permfix scan --file-mode 0640 --allow-file-mode 0640,0600 /srv/www
  permfix scan -o json --fail-on-findings`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, &pf, failOnFindings)
		},
	}

	pf.register(cmd.Flags())
	cmd.Flags().BoolVar(&failOnFindings, "fail-on-findings", false, "exit with an error when any non-compliant path is found")

	return cmd
}

// runScan reports the concerned paths without changing anything. Extra paths
// are added to the result set the same way fix adds them.
func runScan(cmd *cobra.Command, args []string, pf *policyFlags, failOnFindings bool, extra ...string) error {
	cfg, p, dirs, err := prepareAudit(cmd, args, pf)
	if err != nil {
		return err
	}
	if len(dirs) == 0 && len(extra) == 0 {
		return errors.ErrNoDirectories
	}

	sc := newScanner(p).Scan(dirs...).AddConcernedPaths(extra...)
	res := ScanResult{
		Directories: dirs,
		Concerned:   sc.DryRun(),
		Stats:       sc.Stats(),
	}

	if err := newPrinter(cmd.OutOrStdout(), cfg.Settings).printScan(res); err != nil {
		return err
	}

	if failOnFindings && len(res.Concerned) > 0 {
		return errors.ErrFindingsPresentWithCount(len(res.Concerned))
	}
	return nil
}

// prepareAudit loads the config, applies the policy flags and returns the
// policy together with the directories to walk.
func prepareAudit(cmd *cobra.Command, args []string, pf *policyFlags) (*config.Config, *policy.Policy, []string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	if err := pf.apply(cmd.Flags(), cfg); err != nil {
		return nil, nil, nil, err
	}

	p, err := cfg.ToPolicy()
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, p, resolveDirectories(args, cfg), nil
}
