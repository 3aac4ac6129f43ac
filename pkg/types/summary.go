package types

import "time"

// TypeSummary is the per-resource-type rollup of one snapshot.
type TypeSummary struct {
	Count        int            `json:"count"`
	TagsSummary  map[string]int `json:"tags_summary"`
	GroupSummary map[string]int `json:"group_summary,omitempty"`
}

// Summary is the per-snapshot rollup consumed by reporting: counts by
// type, tag-key usage, an optional grouping histogram, and per-VPC
// resource counts. It is a pure function of one snapshot.
type Summary struct {
	GeneratedAt    time.Time                 `json:"generated_at"`
	SourceDate     string                    `json:"source_date"`
	TotalResources int                       `json:"total_resources"`
	ByType         map[string]TypeSummary    `json:"resource_summary"`
	VPCResources   map[string]map[string]int `json:"vpc_resources,omitempty"`
}
