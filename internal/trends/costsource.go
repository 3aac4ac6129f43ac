package trends

// CostSource supplies per-category monthly cost figures for a snapshot
// date. Real deployments back this with a billing API; the core only
// depends on the interface.
type CostSource interface {
	MonthlyCosts(date string) (map[string]float64, error)
}

// StaticCostSource returns the same placeholder figures for every date.
// It stands in for a billing integration and is deliberately labeled as
// an estimate wherever its output is rendered.
type StaticCostSource struct {
	costs map[string]float64
}

// NewStaticCostSource creates the default placeholder source.
func NewStaticCostSource() *StaticCostSource {
	return &StaticCostSource{
		costs: map[string]float64{
			"EC2":   100,
			"S3":    50,
			"RDS":   75,
			"Other": 30,
		},
	}
}

// NewStaticCostSourceWith creates a placeholder source with custom
// figures.
func NewStaticCostSourceWith(costs map[string]float64) *StaticCostSource {
	return &StaticCostSource{costs: costs}
}

// MonthlyCosts returns a copy of the configured figures.
func (s *StaticCostSource) MonthlyCosts(date string) (map[string]float64, error) {
	out := make(map[string]float64, len(s.costs))
	for k, v := range s.costs {
		out[k] = v
	}
	return out, nil
}
