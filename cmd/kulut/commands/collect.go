package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yairfalse/kulut/internal/collectors"
	awscollector "github.com/yairfalse/kulut/internal/collectors/aws"
	"github.com/yairfalse/kulut/pkg/types"
)

func newCollectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect the current inventory and store today's snapshot",
		Long: `Run every configured collector and save the result as the snapshot
for today (or --date). Saving over an existing date replaces that
snapshot entirely.

Collectors tolerate partial failures: a service API that errors is
logged and skipped, and the rest of the inventory is still saved.`,
		Example: `  # snapshot today's inventory
  kulut collect

  # backfill a snapshot under an explicit date
  kulut collect --date 2025-02-01`,
		RunE: runCollect,
	}

	cmd.Flags().String("date", "", "snapshot date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().String("region", "", "AWS region (overrides config)")
	cmd.Flags().String("profile", "", "AWS profile (overrides config)")
	cmd.Flags().Duration("timeout", 5*time.Minute, "overall collection timeout")

	return cmd
}

func runCollect(cmd *cobra.Command, args []string) error {
	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = time.Now().Format(types.DateFormat)
	}

	region, _ := cmd.Flags().GetString("region")
	if region == "" {
		region = cfg.AWS.Region
	}
	profile, _ := cmd.Flags().GetString("profile")
	if profile == "" {
		profile = cfg.AWS.Profile
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	clients, err := awscollector.NewClients(ctx, awscollector.ClientConfig{
		Region:  region,
		Profile: profile,
	})
	if err != nil {
		return fmt.Errorf("failed to build AWS clients: %w", err)
	}

	registry := collectors.NewRegistry()
	registry.Register(awscollector.NewCollector(clients, region, log))

	resources, failures := registry.CollectAll(ctx)
	for name, err := range failures {
		log.WithField("collector", name).Error("collector failed", err)
	}
	if len(resources) == 0 && len(failures) > 0 {
		return fmt.Errorf("collection produced no resources")
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	snapshot, err := store.Save(date, resources)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	fmt.Printf("Saved snapshot %s: %d resources across %d types\n",
		snapshot.Date, snapshot.TotalCount, len(snapshot.Resources))
	return nil
}
