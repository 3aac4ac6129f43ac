package trends

import (
	"fmt"
	"time"

	"github.com/yairfalse/kulut/internal/logger"
	"github.com/yairfalse/kulut/internal/storage"
	"github.com/yairfalse/kulut/pkg/types"
)

// Builder produces ordered time series from the full snapshot history.
// Every series is rebuilt from scratch on each call; no incremental
// state is carried between runs, so the output is a pure function of the
// date list and the stored snapshots.
type Builder struct {
	store      storage.Store
	costSource CostSource
	log        logger.Logger
}

// NewBuilder creates a trend builder over a snapshot store.
func NewBuilder(store storage.Store, costSource CostSource, log logger.Logger) *Builder {
	if costSource == nil {
		costSource = NewStaticCostSource()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Builder{store: store, costSource: costSource, log: log}
}

// ResourceCountTrend loads every snapshot in the given ascending date
// list and records its per-type and total resource counts. A listed date
// whose snapshot has gone missing is skipped with a warning rather than
// failing the whole series.
func (b *Builder) ResourceCountTrend(dates []string) (*types.ResourceCountTrend, error) {
	trend := &types.ResourceCountTrend{
		Points:    []types.ResourceCountPoint{},
		UpdatedAt: time.Now().UTC(),
	}

	for _, date := range dates {
		snapshot, err := b.store.Load(date)
		if err != nil {
			if storage.IsNotFound(err) {
				b.log.WithField("date", date).Warn("snapshot missing from history, skipping")
				continue
			}
			return nil, fmt.Errorf("failed to load snapshot %s: %w", date, err)
		}

		trend.Points = append(trend.Points, types.ResourceCountPoint{
			Date:           date,
			ResourceCounts: snapshot.CountsByType(),
			TotalResources: snapshot.TotalCount,
		})
	}

	return trend, nil
}

// CostTrend records the per-category monthly cost estimate for each date
// in the given ascending list. Costs come from the configured CostSource,
// not from the diff engine.
func (b *Builder) CostTrend(dates []string) (*types.CostTrend, error) {
	trend := &types.CostTrend{
		Points:    []types.CostPoint{},
		UpdatedAt: time.Now().UTC(),
	}

	for _, date := range dates {
		costs, err := b.costSource.MonthlyCosts(date)
		if err != nil {
			return nil, fmt.Errorf("failed to get costs for %s: %w", date, err)
		}

		total := 0.0
		for _, v := range costs {
			total += v
		}

		trend.Points = append(trend.Points, types.CostPoint{
			Date:      date,
			Costs:     costs,
			TotalCost: total,
		})
	}

	return trend, nil
}
