package trends

import (
	"math"
	"reflect"
	"testing"

	"github.com/yairfalse/kulut/internal/logger"
	"github.com/yairfalse/kulut/internal/storage"
	"github.com/yairfalse/kulut/pkg/types"
)

func seededStore(t *testing.T) *storage.LocalStore {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir(), logger.NewNop())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	history := map[string]map[string][]types.Resource{
		"2025-01-01": {
			"EC2_Instances": {{ID: "i-1"}},
		},
		"2025-02-01": {
			"EC2_Instances": {{ID: "i-1"}, {ID: "i-2"}},
			"S3_Buckets":    {{ID: "bkt-1"}},
		},
	}
	for date, resources := range history {
		if _, err := store.Save(date, resources); err != nil {
			t.Fatalf("Save %s: %v", date, err)
		}
	}
	return store
}

func TestResourceCountTrend(t *testing.T) {
	builder := NewBuilder(seededStore(t), nil, logger.NewNop())

	trend, err := builder.ResourceCountTrend([]string{"2025-01-01", "2025-02-01"})
	if err != nil {
		t.Fatalf("ResourceCountTrend: %v", err)
	}

	if len(trend.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(trend.Points))
	}
	if trend.Points[0].Date != "2025-01-01" || trend.Points[1].Date != "2025-02-01" {
		t.Errorf("points must follow the input date order: %+v", trend.Points)
	}
	if trend.Points[0].TotalResources != 1 {
		t.Errorf("first point total: want 1, got %d", trend.Points[0].TotalResources)
	}
	if trend.Points[1].TotalResources != 3 {
		t.Errorf("second point total: want 3, got %d", trend.Points[1].TotalResources)
	}
	want := map[string]int{"EC2_Instances": 2, "S3_Buckets": 1}
	if !reflect.DeepEqual(trend.Points[1].ResourceCounts, want) {
		t.Errorf("second point counts = %v, want %v", trend.Points[1].ResourceCounts, want)
	}
}

func TestResourceCountTrend_SkipsMissingSnapshots(t *testing.T) {
	builder := NewBuilder(seededStore(t), nil, logger.NewNop())

	trend, err := builder.ResourceCountTrend([]string{"2025-01-01", "2025-01-15", "2025-02-01"})
	if err != nil {
		t.Fatalf("ResourceCountTrend: %v", err)
	}
	if len(trend.Points) != 2 {
		t.Fatalf("missing snapshot must be skipped, got %d points", len(trend.Points))
	}
	for _, p := range trend.Points {
		if p.Date == "2025-01-15" {
			t.Errorf("point for a missing snapshot must not appear")
		}
	}
}

func TestResourceCountTrend_IsDeterministic(t *testing.T) {
	builder := NewBuilder(seededStore(t), nil, logger.NewNop())
	dates := []string{"2025-01-01", "2025-02-01"}

	first, err := builder.ResourceCountTrend(dates)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := builder.ResourceCountTrend(dates)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}

	if !reflect.DeepEqual(first.Points, second.Points) {
		t.Errorf("rebuilding the series must not change its points:\n%+v\n%+v", first.Points, second.Points)
	}
}

func TestCostTrend_StaticSource(t *testing.T) {
	builder := NewBuilder(seededStore(t), nil, logger.NewNop())

	trend, err := builder.CostTrend([]string{"2025-01-01", "2025-02-01"})
	if err != nil {
		t.Fatalf("CostTrend: %v", err)
	}
	if len(trend.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(trend.Points))
	}

	// Static placeholder: EC2 100 + S3 50 + RDS 75 + Other 30.
	for _, p := range trend.Points {
		if math.Abs(p.TotalCost-255) > 1e-9 {
			t.Errorf("point %s total cost: want 255, got %v", p.Date, p.TotalCost)
		}
		if p.Costs["EC2"] != 100 {
			t.Errorf("point %s EC2 cost: want 100, got %v", p.Date, p.Costs["EC2"])
		}
	}
}

func TestCostTrend_CustomSource(t *testing.T) {
	source := NewStaticCostSourceWith(map[string]float64{"EC2": 1, "S3": 2})
	builder := NewBuilder(seededStore(t), source, logger.NewNop())

	trend, err := builder.CostTrend([]string{"2025-01-01"})
	if err != nil {
		t.Fatalf("CostTrend: %v", err)
	}
	if trend.Points[0].TotalCost != 3 {
		t.Errorf("total cost: want 3, got %v", trend.Points[0].TotalCost)
	}
}

func TestStaticCostSource_ReturnsCopies(t *testing.T) {
	source := NewStaticCostSource()

	first, err := source.MonthlyCosts("2025-01-01")
	if err != nil {
		t.Fatalf("MonthlyCosts: %v", err)
	}
	first["EC2"] = 0

	second, err := source.MonthlyCosts("2025-01-01")
	if err != nil {
		t.Fatalf("MonthlyCosts: %v", err)
	}
	if second["EC2"] != 100 {
		t.Errorf("mutating a returned map must not affect the source, got %v", second["EC2"])
	}
}
