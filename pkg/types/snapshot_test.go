package types

import (
	"reflect"
	"testing"
)

func TestNewSnapshot_DerivesTotalCount(t *testing.T) {
	s := NewSnapshot("2025-03-01", map[string][]Resource{
		"EC2_Instances": {{ID: "i-1"}, {ID: "i-2"}},
		"S3_Buckets":    {{ID: "bkt-1"}},
	})

	if s.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", s.TotalCount)
	}

	empty := NewSnapshot("2025-03-01", nil)
	if empty.Resources == nil {
		t.Errorf("nil input must yield an empty map, not nil")
	}
	if empty.TotalCount != 0 {
		t.Errorf("empty snapshot TotalCount = %d, want 0", empty.TotalCount)
	}
}

func TestSnapshot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"valid", "2025-03-01", false},
		{"not a date", "march first", true},
		{"wrong layout", "01-03-2025", true},
		{"impossible date", "2025-02-30", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSnapshot(tt.date, nil)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSnapshot_CountsByType(t *testing.T) {
	s := NewSnapshot("2025-03-01", map[string][]Resource{
		"EC2_Instances": {{ID: "i-1"}, {ID: "i-2"}},
		"IAM_Roles":     {},
	})

	want := map[string]int{"EC2_Instances": 2, "IAM_Roles": 0}
	if got := s.CountsByType(); !reflect.DeepEqual(got, want) {
		t.Errorf("CountsByType() = %v, want %v", got, want)
	}
}

func TestSnapshot_TypeNames(t *testing.T) {
	s := NewSnapshot("2025-03-01", map[string][]Resource{
		"S3_Buckets":    {},
		"EC2_Instances": {},
		"RDS_Instances": {},
	})

	want := []string{"EC2_Instances", "RDS_Instances", "S3_Buckets"}
	if got := s.TypeNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("TypeNames() = %v, want %v", got, want)
	}
}

func TestSnapshot_GetResource(t *testing.T) {
	s := NewSnapshot("2025-03-01", map[string][]Resource{
		"EC2_Instances": {{ID: "i-1", Name: "web"}},
	})

	if res := s.GetResource("EC2_Instances", "i-1"); res == nil || res.Name != "web" {
		t.Errorf("GetResource(existing) = %+v", res)
	}
	if res := s.GetResource("EC2_Instances", "i-404"); res != nil {
		t.Errorf("GetResource(missing id) must be nil, got %+v", res)
	}
	if res := s.GetResource("No_Such_Type", "i-1"); res != nil {
		t.Errorf("GetResource(missing type) must be nil, got %+v", res)
	}
}

func TestSnapshot_NonDiffableCount(t *testing.T) {
	s := NewSnapshot("2025-03-01", map[string][]Resource{
		"EC2_Instances": {{ID: "i-1"}, {ID: ""}, {ID: "  "}},
		"S3_Buckets":    {{ID: "bkt-1"}},
	})

	if got := s.NonDiffableCount(); got != 2 {
		t.Errorf("NonDiffableCount() = %d, want 2", got)
	}
}

func TestSnapshot_Clone(t *testing.T) {
	original := NewSnapshot("2025-03-01", map[string][]Resource{
		"EC2_Instances": {{ID: "i-1", Fields: map[string]any{"State": "running"}}},
	})

	clone := original.Clone()
	if !reflect.DeepEqual(original, clone) {
		t.Fatalf("clone differs from original")
	}

	clone.Resources["EC2_Instances"][0].Fields["State"] = "stopped"
	if original.Resources["EC2_Instances"][0].Fields["State"] != "running" {
		t.Errorf("mutating the clone leaked into the original")
	}
}
