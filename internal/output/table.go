package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/yairfalse/kulut/pkg/types"
)

func (r *Renderer) colors() (added, removed, modified, heading func(format string, a ...interface{}) string) {
	if r.noColor {
		plain := fmt.Sprintf
		return plain, plain, plain, plain
	}
	return color.GreenString, color.RedString, color.YellowString, color.CyanString
}

func (r *Renderer) changeReportTable(report *types.ChangeReport) []byte {
	green, red, yellow, cyan := r.colors()
	var sb strings.Builder

	sb.WriteString(cyan("Inventory Changes: %s → %s\n", report.Metadata.StartDate, report.Metadata.EndDate))
	fmt.Fprintf(&sb, "%d days between snapshots\n\n", report.Metadata.DaysBetween)

	fmt.Fprintf(&sb, "Summary:\n")
	fmt.Fprintf(&sb, "  Added:    %d\n", report.Summary.ResourcesAdded)
	fmt.Fprintf(&sb, "  Removed:  %d\n", report.Summary.ResourcesRemoved)
	fmt.Fprintf(&sb, "  Modified: %d\n", report.Summary.ResourcesModified)
	fmt.Fprintf(&sb, "  Est. cost impact: %s/month (heuristic estimate, not billing data)\n\n",
		money(report.Summary.CostImpact))

	cs := report.Changes
	if cs == nil || cs.Empty() {
		sb.WriteString("No changes detected\n")
		return []byte(sb.String())
	}

	for _, resourceType := range sortedResourceKeys(cs.Added) {
		for _, res := range cs.Added[resourceType] {
			sb.WriteString(green("  + %s %s\n", resourceType, resourceLabel(res)))
		}
	}
	for _, resourceType := range sortedResourceKeys(cs.Removed) {
		for _, res := range cs.Removed[resourceType] {
			sb.WriteString(red("  - %s %s\n", resourceType, resourceLabel(res)))
		}
	}
	for _, resourceType := range sortedModifiedKeys(cs.Modified) {
		for _, mod := range cs.Modified[resourceType] {
			sb.WriteString(yellow("  ~ %s %s\n", resourceType, mod.ResourceID))
			for _, field := range sortedFieldKeys(mod.FieldChanges) {
				change := mod.FieldChanges[field]
				switch change.Kind {
				case types.FieldAdded:
					fmt.Fprintf(&sb, "      %s: (added) %v\n", field, change.Value)
				case types.FieldRemoved:
					fmt.Fprintf(&sb, "      %s: (removed) %v\n", field, change.Value)
				default:
					fmt.Fprintf(&sb, "      %s: %v → %v\n", field, change.From, change.To)
				}
			}
			for _, key := range sortedStringKeys(mod.TagChanges.Added) {
				fmt.Fprintf(&sb, "      tag %s: (added) %s\n", key, mod.TagChanges.Added[key])
			}
			for _, key := range sortedStringKeys(mod.TagChanges.Removed) {
				fmt.Fprintf(&sb, "      tag %s: (removed) %s\n", key, mod.TagChanges.Removed[key])
			}
			for _, key := range sortedValueChangeKeys(mod.TagChanges.Modified) {
				change := mod.TagChanges.Modified[key]
				fmt.Fprintf(&sb, "      tag %s: %s → %s\n", key, change.From, change.To)
			}
		}
	}

	return []byte(sb.String())
}

func (r *Renderer) summaryTable(summary *types.Summary) []byte {
	_, _, _, cyan := r.colors()
	var sb strings.Builder

	sb.WriteString(cyan("Inventory Summary: %s\n", summary.SourceDate))
	fmt.Fprintf(&sb, "Total resources: %d\n\n", summary.TotalResources)

	for _, resourceType := range sortedSummaryKeys(summary.ByType) {
		entry := summary.ByType[resourceType]
		fmt.Fprintf(&sb, "  %-28s %d\n", resourceType, entry.Count)
		for _, key := range sortedIntKeys(entry.TagsSummary) {
			fmt.Fprintf(&sb, "      tag %-20s %d\n", key, entry.TagsSummary[key])
		}
	}

	return []byte(sb.String())
}

func (r *Renderer) resourceTrendText(trend *types.ResourceCountTrend) []byte {
	_, _, _, cyan := r.colors()
	var sb strings.Builder

	sb.WriteString(cyan("Resource count trend\n"))
	for _, point := range trend.Points {
		fmt.Fprintf(&sb, "  %s  %d resources\n", point.Date, point.TotalResources)
	}
	return []byte(sb.String())
}

func (r *Renderer) costTrendText(trend *types.CostTrend) []byte {
	_, _, _, cyan := r.colors()
	var sb strings.Builder

	sb.WriteString(cyan("Monthly cost trend (heuristic estimates)\n"))
	for _, point := range trend.Points {
		fmt.Fprintf(&sb, "  %s  %s\n", point.Date, money(point.TotalCost))
	}
	return []byte(sb.String())
}
