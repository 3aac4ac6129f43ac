package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored snapshot dates",
		Long: `List every stored snapshot date in ascending order, with resource
counts. Directories that are not valid YYYY-MM-DD dates are ignored.`,
		RunE: runHistory,
	}

	cmd.Flags().Bool("counts", false, "load each snapshot and show its resource count")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	dates, err := store.ListDates()
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		fmt.Println("No snapshots stored yet. Run 'kulut collect' first.")
		return nil
	}

	withCounts, _ := cmd.Flags().GetBool("counts")
	for _, date := range dates {
		if !withCounts {
			fmt.Println(date)
			continue
		}
		snapshot, err := store.Load(date)
		if err != nil {
			fmt.Printf("%s  (unreadable: %v)\n", date, err)
			continue
		}
		fmt.Printf("%s  %d resources, %d types\n", date, snapshot.TotalCount, len(snapshot.Resources))
	}

	return nil
}
