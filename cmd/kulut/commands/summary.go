package commands

import (
	"github.com/spf13/cobra"

	"github.com/yairfalse/kulut/internal/output"
	"github.com/yairfalse/kulut/internal/summarize"
)

func newSummaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize one stored snapshot",
		Long: `Roll one snapshot up into per-type counts, tag-key usage, a region
grouping, and per-VPC resource counts. Uses the latest snapshot unless
--date is given.`,
		Example: `  kulut summary
  kulut summary --date 2025-03-01
  kulut summary --output markdown -o summary.md`,
		RunE: runSummary,
	}

	cmd.Flags().String("date", "", "snapshot date (YYYY-MM-DD, defaults to latest)")
	cmd.Flags().StringP("out-file", "o", "", "write output to file ('-' for stdout)")

	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date, err = store.LatestDate()
		if err != nil {
			return err
		}
		if date == "" {
			return noSnapshotsError()
		}
	}

	snapshot, err := store.Load(date)
	if err != nil {
		return describeLoadError(err, date)
	}

	summary := summarize.Summarize(snapshot, summarize.Options{})

	format := output.ParseFormat(cfg.Output.Format)
	rendered, err := output.NewRenderer(cfg.Output.NoColor).RenderSummary(summary, format)
	if err != nil {
		return err
	}

	outFile, _ := cmd.Flags().GetString("out-file")
	return output.WriteOutput(rendered, outFile)
}
