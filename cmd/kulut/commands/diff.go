package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yairfalse/kulut/internal/costs"
	"github.com/yairfalse/kulut/internal/differ"
	kuluterrors "github.com/yairfalse/kulut/internal/errors"
	"github.com/yairfalse/kulut/internal/output"
	"github.com/yairfalse/kulut/internal/storage"
)

func newDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show inventory changes between two snapshots, with cost impact",
		Long: `Compare two stored snapshots and report every added, removed, and
modified resource, down to field and tag level, with an estimated cost
impact per change.

Without flags, the latest snapshot is compared against the one before
it. Exit codes: 0 = no changes, 1 = changes detected.

Cost impact is a heuristic from the configured per-type factor table,
not a billing figure.`,
		Example: `  # latest snapshot vs the one before it
  kulut diff

  # explicit date range
  kulut diff --from 2025-02-01 --to 2025-03-01

  # machine-readable, into a file
  kulut diff --output json -o changes.json

  # silent mode for scripts
  kulut diff --quiet && echo "no drift"`,
		RunE: runDiff,
	}

	cmd.Flags().String("from", "", "older snapshot date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "newer snapshot date (YYYY-MM-DD)")
	cmd.Flags().StringP("out-file", "o", "", "write output to file ('-' for stdout)")
	cmd.Flags().BoolP("quiet", "q", false, "suppress output, exit status only")

	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	fromDate, _ := cmd.Flags().GetString("from")
	toDate, _ := cmd.Flags().GetString("to")

	if toDate == "" {
		toDate, err = store.LatestDate()
		if err != nil {
			return err
		}
		if toDate == "" {
			return noSnapshotsError()
		}
	}
	if fromDate == "" {
		fromDate, err = store.PreviousDate(toDate)
		if err != nil {
			return err
		}
		if fromDate == "" {
			return kuluterrors.New(kuluterrors.ErrorTypeStorage,
				fmt.Sprintf("no snapshot exists before %s to compare against", toDate)).
				WithSolutions("Run 'kulut collect' on at least two different dates",
					"Pass --from explicitly")
		}
	}

	before, err := store.Load(fromDate)
	if err != nil {
		return describeLoadError(err, fromDate)
	}
	after, err := store.Load(toDate)
	if err != nil {
		return describeLoadError(err, toDate)
	}

	changeSet := differ.New().Compare(before, after)
	impact := costs.NewEstimator(cfg.CostFactors()).Estimate(changeSet)
	report := differ.BuildReport(changeSet, impact)

	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet {
		format := output.ParseFormat(cfg.Output.Format)
		rendered, err := output.NewRenderer(cfg.Output.NoColor).RenderChangeReport(report, format)
		if err != nil {
			return err
		}
		outFile, _ := cmd.Flags().GetString("out-file")
		if err := output.WriteOutput(rendered, outFile); err != nil {
			return err
		}
	}

	if !changeSet.Empty() {
		// git-diff style exit code for scripts
		cmd.SilenceErrors = true
		return exitChanges{}
	}
	return nil
}

// exitChanges signals "changes detected" without an error message.
type exitChanges struct{}

func (exitChanges) Error() string { return "changes detected" }

func describeLoadError(err error, date string) error {
	if storage.IsNotFound(err) {
		return kuluterrors.New(kuluterrors.ErrorTypeStorage,
			fmt.Sprintf("no snapshot stored for %s", date)).
			WithSolutions(
				"Run 'kulut history' to list stored snapshot dates",
				fmt.Sprintf("Run 'kulut collect --date %s' to create one", date)).
			WithVerify("kulut history")
	}
	return err
}

func noSnapshotsError() error {
	return kuluterrors.New(kuluterrors.ErrorTypeStorage, "no snapshots stored yet").
		WithSolutions("Run 'kulut collect' to capture the first snapshot").
		WithVerify("kulut history")
}
