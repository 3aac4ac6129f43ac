package differ

import (
	"time"

	"github.com/yairfalse/kulut/pkg/types"
)

const securityGroupType = "EC2_SecurityGroups"

// BuildReport assembles the full between-two-dates change report from a
// change set and its estimated cost impact. Plain data out; rendering is
// someone else's job.
func BuildReport(cs *types.ChangeSet, impact *types.CostImpact) *types.ChangeReport {
	return &types.ChangeReport{
		Metadata: types.ReportMetadata{
			StartDate:   cs.BeforeDate,
			EndDate:     cs.AfterDate,
			GeneratedAt: time.Now().UTC(),
			DaysBetween: daysBetween(cs.BeforeDate, cs.AfterDate),
		},
		Summary: types.ReportSummary{
			ResourcesAdded:    cs.AddedCount(),
			ResourcesRemoved:  cs.RemovedCount(),
			ResourcesModified: cs.ModifiedCount(),
			CostImpact:        impact.TotalImpact,
			ByType:            SummarizeByType(cs),
			TagChanges:        SummarizeTagChanges(cs),
			SecurityChanges:   ExtractSecurityChanges(cs),
		},
		Changes: cs,
		Costs:   impact,
	}
}

// SummarizeByType rolls the change set up into per-type counts with the
// net change (added minus removed).
func SummarizeByType(cs *types.ChangeSet) map[string]types.TypeChangeCounts {
	summary := map[string]types.TypeChangeCounts{}

	for resourceType, list := range cs.Added {
		entry := summary[resourceType]
		entry.Added = len(list)
		entry.NetChange += len(list)
		summary[resourceType] = entry
	}
	for resourceType, list := range cs.Removed {
		entry := summary[resourceType]
		entry.Removed = len(list)
		entry.NetChange -= len(list)
		summary[resourceType] = entry
	}
	for resourceType, list := range cs.Modified {
		entry := summary[resourceType]
		entry.Modified = len(list)
		summary[resourceType] = entry
	}

	return summary
}

// SummarizeTagChanges counts tag-key movement across the change set.
// Tags on wholly added or removed resources count toward added and
// removed respectively.
func SummarizeTagChanges(cs *types.ChangeSet) types.TagChangeSummary {
	summary := types.TagChangeSummary{
		Added:    map[string]int{},
		Removed:  map[string]int{},
		Modified: map[string]int{},
	}

	for _, list := range cs.Modified {
		for _, mod := range list {
			for key := range mod.TagChanges.Added {
				summary.Added[key]++
			}
			for key := range mod.TagChanges.Removed {
				summary.Removed[key]++
			}
			for key := range mod.TagChanges.Modified {
				summary.Modified[key]++
			}
		}
	}

	for _, list := range cs.Added {
		for _, res := range list {
			for key := range res.TagMap() {
				summary.Added[key]++
			}
		}
	}
	for _, list := range cs.Removed {
		for _, res := range list {
			for key := range res.TagMap() {
				summary.Removed[key]++
			}
		}
	}

	return summary
}

// ExtractSecurityChanges pulls the security-group view out of a change
// set: groups that appeared or disappeared, groups whose rules changed,
// and instances whose SecurityGroups attachment changed.
func ExtractSecurityChanges(cs *types.ChangeSet) types.SecurityChanges {
	sc := types.SecurityChanges{
		Added:    []types.SecurityGroupChange{},
		Removed:  []types.SecurityGroupChange{},
		Modified: []types.SecurityGroupModification{},
	}

	for _, sg := range cs.Added[securityGroupType] {
		sc.Added = append(sc.Added, securityGroupChange(sg))
	}
	for _, sg := range cs.Removed[securityGroupType] {
		sc.Removed = append(sc.Removed, securityGroupChange(sg))
	}
	for _, mod := range cs.Modified[securityGroupType] {
		sc.Modified = append(sc.Modified, types.SecurityGroupModification{
			GroupID:      mod.ResourceID,
			Name:         mod.Before.StringField("GroupName"),
			VPCID:        mod.Before.StringField("VpcId"),
			FieldChanges: mod.FieldChanges,
		})
	}

	for _, mod := range cs.Modified["EC2_Instances"] {
		change, ok := mod.FieldChanges["SecurityGroups"]
		if !ok {
			continue
		}
		sc.Modified = append(sc.Modified, types.SecurityGroupModification{
			InstanceID:   mod.ResourceID,
			FieldChanges: map[string]types.FieldChange{"SecurityGroups": change},
		})
	}

	return sc
}

func securityGroupChange(sg types.Resource) types.SecurityGroupChange {
	return types.SecurityGroupChange{
		GroupID:     sg.ID,
		Name:        sg.StringField("GroupName"),
		Description: sg.StringField("Description"),
		VPCID:       sg.StringField("VpcId"),
	}
}

// daysBetween returns the calendar-day distance between two YYYY-MM-DD
// dates, or 0 when either fails to parse.
func daysBetween(start, end string) int {
	startDate, err := time.Parse(types.DateFormat, start)
	if err != nil {
		return 0
	}
	endDate, err := time.Parse(types.DateFormat, end)
	if err != nil {
		return 0
	}
	return int(endDate.Sub(startDate).Hours() / 24)
}
