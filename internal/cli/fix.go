package cli

import (
	"github.com/glorpus-work/permfix/internal/logger"
	"github.com/glorpus-work/permfix/pkg/errors"
	"github.com/spf13/cobra"
)

// NewFixCmd creates the fix command.
func NewFixCmd() *cobra.Command {
	var (
		pf           policyFlags
		dryRun       bool
		includePaths []string
	)

	cmd := &cobra.Command{
		Use:   "fix [DIR...]",
		Short: "Reset non-compliant permissions to the default mode",
		Long: `Scan each directory like "permfix scan" and then change every non-compliant
entry to the default mode for its kind. A path that cannot be changed is
reported and the rest are still processed.`,
		Example: `  permfix fix /srv/www
  permfix fix --dry-run /srv/www
  permfix fix --include-path /srv/www/.env /srv/www`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				return runScan(cmd, args, &pf, false, includePaths...)
			}
			return runFix(cmd, args, &pf, includePaths)
		},
	}

	pf.register(cmd.Flags())
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only report what would change")
	cmd.Flags().StringSliceVar(&includePaths, "include-path", nil, "also fix this path even if the scan does not flag it (repeatable)")

	return cmd
}

func runFix(cmd *cobra.Command, args []string, pf *policyFlags, includePaths []string) error {
	cfg, p, dirs, err := prepareAudit(cmd, args, pf)
	if err != nil {
		return err
	}
	if len(dirs) == 0 && len(includePaths) == 0 {
		return errors.ErrNoDirectories
	}

	sc := newScanner(p).Scan(dirs...).AddConcernedPaths(includePaths...)
	report := sc.Fix()

	if err := newPrinter(cmd.OutOrStdout(), cfg.Settings).printFix(newFixResult(dirs, report, sc.Stats())); err != nil {
		return err
	}

	if !report.OK() {
		return errors.ErrFixIncompleteWithCount(len(report.Failed))
	}
	if len(report.Applied) > 0 {
		logger.Success("Permissions fixed", logger.Fields{"count": len(report.Applied)})
	}
	return nil
}
