package types

// TypeImpact is the estimated monthly cost impact for one resource type.
// Removed impact is recorded as a negative number so Total is the per-type
// net.
type TypeImpact struct {
	Added    float64 `json:"added"`
	Removed  float64 `json:"removed"`
	Modified float64 `json:"modified"`
	Total    float64 `json:"total"`
}

// CostImpact is the estimated monthly cost effect of a change set. It is
// a heuristic derived from static per-type cost factors, not a billing
// figure, and is always regenerable from a ChangeSet plus a factor table.
type CostImpact struct {
	AddedCost    float64               `json:"added_cost"`
	RemovedCost  float64               `json:"removed_cost"`
	ModifiedCost float64               `json:"modified_cost"`
	TotalImpact  float64               `json:"total_impact"`
	ByType       map[string]TypeImpact `json:"breakdown_by_type"`
}

// Zero reports whether the impact is all-zero.
func (c *CostImpact) Zero() bool {
	return c.AddedCost == 0 && c.RemovedCost == 0 && c.ModifiedCost == 0 && c.TotalImpact == 0
}
