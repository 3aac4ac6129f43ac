package summarize

import (
	"reflect"
	"testing"

	"github.com/yairfalse/kulut/pkg/types"
)

func TestSummarize_CountsAndTags(t *testing.T) {
	snapshot := types.NewSnapshot("2025-03-01", map[string][]types.Resource{
		"EC2_Instances": {
			{
				ID:     "i-1",
				Fields: map[string]any{"AZ": "ap-northeast-1a"},
				Tags:   []types.Tag{{Key: "Env", Value: "Prod"}, {Key: "Team", Value: "X"}},
			},
			{
				ID:     "i-2",
				Fields: map[string]any{"AZ": "us-east-1b"},
				Tags:   []types.Tag{{Key: "Env", Value: "Dev"}},
			},
		},
		"S3_Buckets": {
			{ID: "bkt-1"},
		},
	})

	summary := Summarize(snapshot, Options{})

	if summary.SourceDate != "2025-03-01" {
		t.Errorf("source date: want 2025-03-01, got %s", summary.SourceDate)
	}
	if summary.TotalResources != 3 {
		t.Errorf("total resources: want 3, got %d", summary.TotalResources)
	}

	ec2 := summary.ByType["EC2_Instances"]
	if ec2.Count != 2 {
		t.Errorf("EC2 count: want 2, got %d", ec2.Count)
	}
	wantTags := map[string]int{"Env": 2, "Team": 1}
	if !reflect.DeepEqual(ec2.TagsSummary, wantTags) {
		t.Errorf("tag histogram = %v, want %v", ec2.TagsSummary, wantTags)
	}
	wantGroups := map[string]int{"ap": 1, "us": 1}
	if !reflect.DeepEqual(ec2.GroupSummary, wantGroups) {
		t.Errorf("group histogram = %v, want %v", ec2.GroupSummary, wantGroups)
	}

	s3 := summary.ByType["S3_Buckets"]
	if s3.Count != 1 {
		t.Errorf("S3 count: want 1, got %d", s3.Count)
	}
	if s3.GroupSummary != nil {
		t.Errorf("resources without an AZ must not form groups, got %v", s3.GroupSummary)
	}
}

func TestSummarize_VPCRollup(t *testing.T) {
	snapshot := types.NewSnapshot("2025-03-01", map[string][]types.Resource{
		"EC2_Instances": {
			{ID: "i-1", Fields: map[string]any{"VpcId": "vpc-1"}},
			{ID: "i-2", Fields: map[string]any{"VpcId": "vpc-1"}},
			{ID: "i-3"},
		},
		"EC2_SecurityGroups": {
			{ID: "sg-1", Fields: map[string]any{"VpcId": "vpc-1"}},
			{ID: "sg-2", Fields: map[string]any{"VpcId": "vpc-2"}},
		},
		"S3_Buckets": {
			{ID: "bkt-1", Fields: map[string]any{"VpcId": "vpc-1"}},
		},
	})

	summary := Summarize(snapshot, Options{})

	want := map[string]map[string]int{
		"vpc-1": {"EC2_Instances": 2, "EC2_SecurityGroups": 1},
		"vpc-2": {"EC2_SecurityGroups": 1},
	}
	if !reflect.DeepEqual(summary.VPCResources, want) {
		t.Errorf("VPC rollup = %v, want %v", summary.VPCResources, want)
	}
}

func TestSummarize_CustomGroupFunc(t *testing.T) {
	snapshot := types.NewSnapshot("2025-03-01", map[string][]types.Resource{
		"EC2_Instances": {
			{ID: "i-1", Fields: map[string]any{"State": "running"}},
			{ID: "i-2", Fields: map[string]any{"State": "stopped"}},
			{ID: "i-3", Fields: map[string]any{"State": "running"}},
		},
	})

	byState := func(res types.Resource) string { return res.StringField("State") }
	summary := Summarize(snapshot, Options{GroupBy: byState})

	want := map[string]int{"running": 2, "stopped": 1}
	if !reflect.DeepEqual(summary.ByType["EC2_Instances"].GroupSummary, want) {
		t.Errorf("group histogram = %v, want %v", summary.ByType["EC2_Instances"].GroupSummary, want)
	}
}

func TestRegionFromAZ(t *testing.T) {
	tests := []struct {
		az   string
		want string
	}{
		{"ap-northeast-1a", "ap"},
		{"us-east-1b", "us"},
		{"eu-west-2c", "eu"},
		{"nodash", "nodash"},
		{"", ""},
	}
	for _, tt := range tests {
		res := types.Resource{ID: "r", Fields: map[string]any{"AZ": tt.az}}
		if tt.az == "" {
			res.Fields = nil
		}
		if got := RegionFromAZ(res); got != tt.want {
			t.Errorf("RegionFromAZ(%q) = %q, want %q", tt.az, got, tt.want)
		}
	}
}
