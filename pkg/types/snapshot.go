package types

import (
	"errors"
	"sort"
	"time"
)

// DateFormat is the calendar-date layout used for snapshot addressing.
// ISO 8601 dates sort correctly as plain strings, which the snapshot store
// relies on.
const DateFormat = "2006-01-02"

// Snapshot is the complete resource inventory captured for one calendar
// date. Snapshots are immutable after creation; a re-save for the same
// date replaces the prior snapshot wholesale.
type Snapshot struct {
	Date        string                `json:"date"`
	GeneratedAt time.Time             `json:"generated_at"`
	Resources   map[string][]Resource `json:"resources"`
	TotalCount  int                   `json:"total_count"`
}

// NewSnapshot builds a snapshot for the given date, recomputing TotalCount
// from the resource buckets. The count is always derived, never trusted
// from input.
func NewSnapshot(date string, resources map[string][]Resource) *Snapshot {
	if resources == nil {
		resources = map[string][]Resource{}
	}
	s := &Snapshot{
		Date:        date,
		GeneratedAt: time.Now().UTC(),
		Resources:   resources,
	}
	s.TotalCount = s.ResourceCount()
	return s
}

// Validate checks the snapshot has a well-formed date and a non-nil
// resource map.
func (s *Snapshot) Validate() error {
	if _, err := time.Parse(DateFormat, s.Date); err != nil {
		return errors.New("snapshot date must be YYYY-MM-DD")
	}
	if s.Resources == nil {
		return errors.New("snapshot resources cannot be nil")
	}
	return nil
}

// ResourceCount returns the total number of records across all buckets.
func (s *Snapshot) ResourceCount() int {
	n := 0
	for _, list := range s.Resources {
		n += len(list)
	}
	return n
}

// CountsByType returns the number of records per resource type.
func (s *Snapshot) CountsByType() map[string]int {
	counts := make(map[string]int, len(s.Resources))
	for resourceType, list := range s.Resources {
		counts[resourceType] = len(list)
	}
	return counts
}

// TypeNames returns the resource-type bucket names in sorted order.
func (s *Snapshot) TypeNames() []string {
	names := make([]string, 0, len(s.Resources))
	for name := range s.Resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetResource looks a record up by type bucket and ID.
func (s *Snapshot) GetResource(resourceType, id string) *Resource {
	for i := range s.Resources[resourceType] {
		if s.Resources[resourceType][i].ID == id {
			return &s.Resources[resourceType][i]
		}
	}
	return nil
}

// NonDiffableCount returns how many records lack a resource ID and are
// therefore excluded from identity-based diffing.
func (s *Snapshot) NonDiffableCount() int {
	n := 0
	for _, list := range s.Resources {
		for i := range list {
			if !list[i].Diffable() {
				n++
			}
		}
	}
	return n
}

// Clone creates a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	clone := &Snapshot{
		Date:        s.Date,
		GeneratedAt: s.GeneratedAt,
		TotalCount:  s.TotalCount,
	}
	if s.Resources != nil {
		clone.Resources = make(map[string][]Resource, len(s.Resources))
		for resourceType, list := range s.Resources {
			copied := make([]Resource, len(list))
			for i := range list {
				copied[i] = *list[i].Clone()
			}
			clone.Resources[resourceType] = copied
		}
	}
	return clone
}
