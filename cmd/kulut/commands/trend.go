package commands

import (
	"github.com/spf13/cobra"

	"github.com/yairfalse/kulut/internal/output"
	"github.com/yairfalse/kulut/internal/trends"
)

func newTrendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show resource-count and cost trends across snapshot history",
		Long: `Rebuild the longitudinal trend series from every stored snapshot:
resource counts per type and estimated monthly cost per category.

The series is always rebuilt in full from the current snapshot history,
so the output is a pure function of what is stored. Cost figures come
from a placeholder source until a billing integration is configured.`,
		Example: `  kulut trend
  kulut trend --costs
  kulut trend --output json -o trends.json`,
		RunE: runTrend,
	}

	cmd.Flags().Bool("costs", false, "show the cost trend instead of resource counts")
	cmd.Flags().StringP("out-file", "o", "", "write output to file ('-' for stdout)")

	return cmd
}

func runTrend(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	dates, err := store.ListDates()
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		return noSnapshotsError()
	}

	builder := trends.NewBuilder(store, nil, log)
	renderer := output.NewRenderer(cfg.Output.NoColor)
	format := output.ParseFormat(cfg.Output.Format)
	outFile, _ := cmd.Flags().GetString("out-file")

	showCosts, _ := cmd.Flags().GetBool("costs")
	var rendered []byte
	if showCosts {
		trend, err := builder.CostTrend(dates)
		if err != nil {
			return err
		}
		rendered, err = renderer.RenderCostTrend(trend, format)
		if err != nil {
			return err
		}
	} else {
		trend, err := builder.ResourceCountTrend(dates)
		if err != nil {
			return err
		}
		rendered, err = renderer.RenderResourceTrend(trend, format)
		if err != nil {
			return err
		}
	}

	return output.WriteOutput(rendered, outFile)
}
