package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yairfalse/kulut/pkg/types"
)

func (r *Renderer) changeReportMarkdown(report *types.ChangeReport) []byte {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Inventory Changes: %s → %s\n\n", report.Metadata.StartDate, report.Metadata.EndDate)
	fmt.Fprintf(&sb, "Generated: %s (%d days between snapshots)\n\n",
		report.Metadata.GeneratedAt.Format("2006-01-02 15:04:05"), report.Metadata.DaysBetween)

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "| Added | Removed | Modified | Est. cost impact |\n")
	fmt.Fprintf(&sb, "|------:|--------:|---------:|-----------------:|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d | %s |\n\n",
		report.Summary.ResourcesAdded,
		report.Summary.ResourcesRemoved,
		report.Summary.ResourcesModified,
		money(report.Summary.CostImpact))

	if len(report.Summary.ByType) > 0 {
		sb.WriteString("## Changes by resource type\n\n")
		sb.WriteString("| Type | Added | Removed | Modified | Net |\n")
		sb.WriteString("|------|------:|--------:|---------:|----:|\n")
		for _, resourceType := range sortedTypeKeys(report.Summary.ByType) {
			counts := report.Summary.ByType[resourceType]
			fmt.Fprintf(&sb, "| %s | %d | %d | %d | %+d |\n",
				resourceType, counts.Added, counts.Removed, counts.Modified, counts.NetChange)
		}
		sb.WriteString("\n")
	}

	if report.Costs != nil && !report.Costs.Zero() {
		sb.WriteString("## Estimated cost impact\n\n")
		sb.WriteString("These figures are heuristic estimates from static per-type cost factors, not billing data.\n\n")
		fmt.Fprintf(&sb, "- Added: %s\n", money(report.Costs.AddedCost))
		fmt.Fprintf(&sb, "- Removed: -%s\n", money(report.Costs.RemovedCost))
		fmt.Fprintf(&sb, "- Modified: %s\n", money(report.Costs.ModifiedCost))
		fmt.Fprintf(&sb, "- **Total: %s**\n\n", money(report.Costs.TotalImpact))
	}

	r.writeChangeDetailMarkdown(&sb, report.Changes)

	return []byte(sb.String())
}

func (r *Renderer) writeChangeDetailMarkdown(sb *strings.Builder, cs *types.ChangeSet) {
	if cs == nil || cs.Empty() {
		sb.WriteString("No changes detected.\n")
		return
	}

	if len(cs.Added) > 0 {
		sb.WriteString("## Added\n\n")
		for _, resourceType := range sortedResourceKeys(cs.Added) {
			for _, res := range cs.Added[resourceType] {
				fmt.Fprintf(sb, "- `%s` %s\n", resourceType, resourceLabel(res))
			}
		}
		sb.WriteString("\n")
	}

	if len(cs.Removed) > 0 {
		sb.WriteString("## Removed\n\n")
		for _, resourceType := range sortedResourceKeys(cs.Removed) {
			for _, res := range cs.Removed[resourceType] {
				fmt.Fprintf(sb, "- `%s` %s\n", resourceType, resourceLabel(res))
			}
		}
		sb.WriteString("\n")
	}

	if len(cs.Modified) > 0 {
		sb.WriteString("## Modified\n\n")
		for _, resourceType := range sortedModifiedKeys(cs.Modified) {
			for _, mod := range cs.Modified[resourceType] {
				fmt.Fprintf(sb, "### `%s` %s\n\n", resourceType, mod.ResourceID)
				for _, field := range sortedFieldKeys(mod.FieldChanges) {
					change := mod.FieldChanges[field]
					switch change.Kind {
					case types.FieldAdded:
						fmt.Fprintf(sb, "- %s: added `%v`\n", field, change.Value)
					case types.FieldRemoved:
						fmt.Fprintf(sb, "- %s: removed `%v`\n", field, change.Value)
					default:
						fmt.Fprintf(sb, "- %s: `%v` → `%v`\n", field, change.From, change.To)
					}
				}
				writeTagChangesMarkdown(sb, mod.TagChanges)
				sb.WriteString("\n")
			}
		}
	}
}

func writeTagChangesMarkdown(sb *strings.Builder, tc types.TagChanges) {
	for _, key := range sortedStringKeys(tc.Added) {
		fmt.Fprintf(sb, "- tag %s: added `%s`\n", key, tc.Added[key])
	}
	for _, key := range sortedStringKeys(tc.Removed) {
		fmt.Fprintf(sb, "- tag %s: removed `%s`\n", key, tc.Removed[key])
	}
	for _, key := range sortedValueChangeKeys(tc.Modified) {
		change := tc.Modified[key]
		fmt.Fprintf(sb, "- tag %s: `%s` → `%s`\n", key, change.From, change.To)
	}
}

func (r *Renderer) summaryMarkdown(summary *types.Summary) []byte {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Inventory Summary: %s\n\n", summary.SourceDate)
	fmt.Fprintf(&sb, "Total resources: %d\n\n", summary.TotalResources)

	sb.WriteString("| Type | Count |\n|------|------:|\n")
	for _, resourceType := range sortedSummaryKeys(summary.ByType) {
		fmt.Fprintf(&sb, "| %s | %d |\n", resourceType, summary.ByType[resourceType].Count)
	}
	sb.WriteString("\n")

	if len(summary.VPCResources) > 0 {
		sb.WriteString("## Resources per VPC\n\n")
		for _, vpcID := range sortedVPCKeys(summary.VPCResources) {
			fmt.Fprintf(&sb, "- %s:", vpcID)
			for _, resourceType := range sortedIntKeys(summary.VPCResources[vpcID]) {
				fmt.Fprintf(&sb, " %s=%d", resourceType, summary.VPCResources[vpcID][resourceType])
			}
			sb.WriteString("\n")
		}
	}

	return []byte(sb.String())
}

func resourceLabel(res types.Resource) string {
	if res.Name != "" && res.Name != res.ID {
		return fmt.Sprintf("%s (%s)", res.ID, res.Name)
	}
	return res.ID
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func sortedResourceKeys(m map[string][]types.Resource) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedModifiedKeys(m map[string][]types.ModifiedResource) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedFieldKeys(m map[string]types.FieldChange) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedTypeKeys(m map[string]types.TypeChangeCounts) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSummaryKeys(m map[string]types.TypeSummary) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStringKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedValueChangeKeys(m map[string]types.ValueChange) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedIntKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedVPCKeys(m map[string]map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
