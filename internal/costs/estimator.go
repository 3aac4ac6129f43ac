package costs

import "github.com/yairfalse/kulut/pkg/types"

// Factors is the static cost-factor table driving impact attribution.
// Values are rough monthly estimates per resource of a type, not billing
// figures. The table is always passed in explicitly; there is no ambient
// default inside the estimator.
type Factors struct {
	PerType map[string]float64
	// Default applies to any resource type missing from PerType.
	Default float64
	// ModificationRatio is the fraction of a type's nominal monthly
	// factor a modification is assumed to shift. An admittedly
	// approximate heuristic carried over as configurable.
	ModificationRatio float64
}

// DefaultFactors returns the built-in factor table. Callers override it
// from configuration.
func DefaultFactors() Factors {
	return Factors{
		PerType: map[string]float64{
			"EC2_Instances":            100,
			"RDS_Instances":            200,
			"S3_Buckets":               5,
			"Lambda_Functions":         0.5,
			"CloudFront_Distributions": 30,
		},
		Default:           10,
		ModificationRatio: 0.1,
	}
}

// Factor returns the monthly factor for a resource type, falling back to
// the default for unknown types. Never an error.
func (f Factors) Factor(resourceType string) float64 {
	if v, ok := f.PerType[resourceType]; ok {
		return v
	}
	return f.Default
}

// Estimator turns a change set into an estimated cost impact.
type Estimator struct {
	factors Factors
}

// NewEstimator creates an estimator bound to a factor table.
func NewEstimator(factors Factors) *Estimator {
	return &Estimator{factors: factors}
}

// Estimate computes the monetary estimate for every change. An empty
// change set yields an all-zero impact. In the per-type breakdown the
// removed impact is negative so Total carries the net; the top-level
// RemovedCost stays positive and is subtracted in TotalImpact.
func (e *Estimator) Estimate(cs *types.ChangeSet) *types.CostImpact {
	impact := &types.CostImpact{ByType: map[string]types.TypeImpact{}}

	for resourceType, list := range cs.Added {
		amount := float64(len(list)) * e.factors.Factor(resourceType)
		impact.AddedCost += amount

		entry := impact.ByType[resourceType]
		entry.Added = amount
		entry.Total += amount
		impact.ByType[resourceType] = entry
	}

	for resourceType, list := range cs.Removed {
		amount := float64(len(list)) * e.factors.Factor(resourceType)
		impact.RemovedCost += amount

		entry := impact.ByType[resourceType]
		entry.Removed = -amount
		entry.Total -= amount
		impact.ByType[resourceType] = entry
	}

	for resourceType, list := range cs.Modified {
		amount := float64(len(list)) * e.factors.Factor(resourceType) * e.factors.ModificationRatio
		impact.ModifiedCost += amount

		entry := impact.ByType[resourceType]
		entry.Modified = amount
		entry.Total += amount
		impact.ByType[resourceType] = entry
	}

	impact.TotalImpact = impact.AddedCost - impact.RemovedCost + impact.ModifiedCost
	return impact
}
