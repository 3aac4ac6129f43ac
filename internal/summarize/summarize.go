package summarize

import (
	"strings"
	"time"

	"github.com/yairfalse/kulut/pkg/types"
)

// GroupFunc extracts the grouping key for one resource, e.g. a region or
// an availability attribute. Returning "" excludes the resource from the
// grouping histogram.
type GroupFunc func(types.Resource) string

// vpcTypes are the resource types whose records carry a VpcId field and
// participate in the per-VPC rollup.
var vpcTypes = []string{
	"EC2_Instances",
	"EC2_Subnets",
	"EC2_SecurityGroups",
	"EC2_LoadBalancers",
	"RDS_Instances",
}

// Options configures a summary run.
type Options struct {
	// GroupBy supplies the grouping histogram per type. When nil,
	// RegionFromAZ is used.
	GroupBy GroupFunc
}

// Summarize computes the per-snapshot rollup: counts by type, tag-key
// usage, a grouping histogram, and per-VPC resource counts. A pure
// function of one snapshot; no cross-snapshot state.
func Summarize(snapshot *types.Snapshot, opts Options) *types.Summary {
	groupBy := opts.GroupBy
	if groupBy == nil {
		groupBy = RegionFromAZ
	}

	summary := &types.Summary{
		GeneratedAt:    time.Now().UTC(),
		SourceDate:     snapshot.Date,
		TotalResources: snapshot.ResourceCount(),
		ByType:         map[string]types.TypeSummary{},
		VPCResources:   summarizeVPCs(snapshot),
	}

	for resourceType, list := range snapshot.Resources {
		summary.ByType[resourceType] = types.TypeSummary{
			Count:        len(list),
			TagsSummary:  tagHistogram(list),
			GroupSummary: groupHistogram(list, groupBy),
		}
	}

	return summary
}

// tagHistogram counts how many resources carry each tag key.
func tagHistogram(list []types.Resource) map[string]int {
	counts := map[string]int{}
	for i := range list {
		for key := range list[i].TagMap() {
			counts[key]++
		}
	}
	return counts
}

func groupHistogram(list []types.Resource, groupBy GroupFunc) map[string]int {
	counts := map[string]int{}
	for i := range list {
		key := groupBy(list[i])
		if key == "" {
			continue
		}
		counts[key]++
	}
	if len(counts) == 0 {
		return nil
	}
	return counts
}

// summarizeVPCs counts resources per VPC across the VPC-bearing types.
func summarizeVPCs(snapshot *types.Snapshot) map[string]map[string]int {
	vpcs := map[string]map[string]int{}
	for _, resourceType := range vpcTypes {
		for _, res := range snapshot.Resources[resourceType] {
			vpcID := res.StringField("VpcId")
			if vpcID == "" {
				continue
			}
			if vpcs[vpcID] == nil {
				vpcs[vpcID] = map[string]int{}
			}
			vpcs[vpcID][resourceType]++
		}
	}
	if len(vpcs) == 0 {
		return nil
	}
	return vpcs
}

// RegionFromAZ derives a region grouping key from a record's AZ field:
// "ap-northeast-1a" groups under "ap", matching how the original
// inventory tooling bucketed regions. Records without an AZ are skipped.
func RegionFromAZ(res types.Resource) string {
	az := res.StringField("AZ")
	if az == "" {
		return ""
	}
	if i := strings.Index(az, "-"); i > 0 {
		return az[:i]
	}
	return az
}
