package types

import "time"

// ResourceCountPoint is one dated observation of inventory size.
type ResourceCountPoint struct {
	Date           string         `json:"date"`
	ResourceCounts map[string]int `json:"resource_counts"`
	TotalResources int            `json:"total_resources"`
}

// CostPoint is one dated observation of estimated monthly cost per
// category.
type CostPoint struct {
	Date      string             `json:"date"`
	Costs     map[string]float64 `json:"costs"`
	TotalCost float64            `json:"total_cost"`
}

// ResourceCountTrend is the ordered-by-date series of inventory sizes,
// rebuilt in full from snapshot history on every run.
type ResourceCountTrend struct {
	Points    []ResourceCountPoint `json:"resource_count_trend"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// CostTrend is the ordered-by-date series of estimated monthly costs.
type CostTrend struct {
	Points    []CostPoint `json:"monthly_cost_trend"`
	UpdatedAt time.Time   `json:"updated_at"`
}
