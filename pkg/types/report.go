package types

import "time"

// TypeChangeCounts rolls up one resource type's movement between two
// snapshots.
type TypeChangeCounts struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Modified  int `json:"modified"`
	NetChange int `json:"net_change"`
}

// TagChangeSummary counts, per tag key, how many resources gained, lost,
// or changed that tag between two snapshots. Tags on wholly added or
// removed resources count as added or removed respectively.
type TagChangeSummary struct {
	Added    map[string]int `json:"added"`
	Removed  map[string]int `json:"removed"`
	Modified map[string]int `json:"modified"`
}

// SecurityGroupChange describes one security group that appeared or
// disappeared.
type SecurityGroupChange struct {
	GroupID     string `json:"group_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	VPCID       string `json:"vpc_id,omitempty"`
}

// SecurityGroupModification describes a changed security group, or an
// instance whose security-group attachment changed.
type SecurityGroupModification struct {
	GroupID      string                 `json:"group_id,omitempty"`
	InstanceID   string                 `json:"instance_id,omitempty"`
	Name         string                 `json:"name,omitempty"`
	VPCID        string                 `json:"vpc_id,omitempty"`
	FieldChanges map[string]FieldChange `json:"changes,omitempty"`
}

// SecurityChanges gathers the security-group view of a change set.
type SecurityChanges struct {
	Added    []SecurityGroupChange       `json:"added"`
	Removed  []SecurityGroupChange       `json:"removed"`
	Modified []SecurityGroupModification `json:"modified"`
}

// ReportMetadata describes the comparison window of a change report.
type ReportMetadata struct {
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	GeneratedAt time.Time `json:"generated_at"`
	DaysBetween int       `json:"days_between"`
}

// ReportSummary is the headline rollup of a change report.
type ReportSummary struct {
	ResourcesAdded    int                         `json:"resources_added"`
	ResourcesRemoved  int                         `json:"resources_removed"`
	ResourcesModified int                         `json:"resources_modified"`
	CostImpact        float64                     `json:"cost_impact"`
	ByType            map[string]TypeChangeCounts `json:"resource_type_changes"`
	TagChanges        TagChangeSummary            `json:"tag_changes"`
	SecurityChanges   SecurityChanges             `json:"security_changes"`
}

// ChangeReport is the full between-two-dates report: headline summary,
// the raw change set, and the estimated cost impact. Plain data only;
// rendering lives elsewhere.
type ChangeReport struct {
	Metadata ReportMetadata `json:"metadata"`
	Summary  ReportSummary  `json:"summary"`
	Changes  *ChangeSet     `json:"changes"`
	Costs    *CostImpact    `json:"cost_changes"`
}
