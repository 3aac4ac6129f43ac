package types

// FieldChangeKind tells whether a field appeared, disappeared, or changed
// value between two records.
type FieldChangeKind string

const (
	FieldAdded    FieldChangeKind = "added"
	FieldRemoved  FieldChangeKind = "removed"
	FieldModified FieldChangeKind = "modified"
)

// FieldChange records one field-level difference. From/To are set for
// modified fields, Value for presence-only changes.
type FieldChange struct {
	Kind  FieldChangeKind `json:"kind"`
	From  any             `json:"from,omitempty"`
	To    any             `json:"to,omitempty"`
	Value any             `json:"value,omitempty"`
}

// ValueChange is an old/new pair for a modified tag value.
type ValueChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TagChanges is the key-level tag diff for one resource, independent of
// field-level diffing.
type TagChanges struct {
	Added    map[string]string      `json:"added,omitempty"`
	Removed  map[string]string      `json:"removed,omitempty"`
	Modified map[string]ValueChange `json:"modified,omitempty"`
}

// Empty reports whether no tag changed.
func (tc TagChanges) Empty() bool {
	return len(tc.Added) == 0 && len(tc.Removed) == 0 && len(tc.Modified) == 0
}

// ModifiedResource captures one record that exists on both sides of a diff
// with differing content.
type ModifiedResource struct {
	ResourceID   string                 `json:"resource_id"`
	Before       Resource               `json:"before"`
	After        Resource               `json:"after"`
	FieldChanges map[string]FieldChange `json:"field_changes,omitempty"`
	TagChanges   TagChanges             `json:"tag_changes"`
}

// ChangeSet is the structured result of comparing two snapshots, scoped
// per resource type.
type ChangeSet struct {
	BeforeDate string                        `json:"before_date"`
	AfterDate  string                        `json:"after_date"`
	Added      map[string][]Resource         `json:"added"`
	Removed    map[string][]Resource         `json:"removed"`
	Modified   map[string][]ModifiedResource `json:"modified"`
}

// NewChangeSet returns an empty change set between two dates.
func NewChangeSet(beforeDate, afterDate string) *ChangeSet {
	return &ChangeSet{
		BeforeDate: beforeDate,
		AfterDate:  afterDate,
		Added:      map[string][]Resource{},
		Removed:    map[string][]Resource{},
		Modified:   map[string][]ModifiedResource{},
	}
}

// Empty reports whether the change set records no changes at all.
func (cs *ChangeSet) Empty() bool {
	return len(cs.Added) == 0 && len(cs.Removed) == 0 && len(cs.Modified) == 0
}

// AddedCount returns the total number of added resources across types.
func (cs *ChangeSet) AddedCount() int {
	n := 0
	for _, list := range cs.Added {
		n += len(list)
	}
	return n
}

// RemovedCount returns the total number of removed resources across types.
func (cs *ChangeSet) RemovedCount() int {
	n := 0
	for _, list := range cs.Removed {
		n += len(list)
	}
	return n
}

// ModifiedCount returns the total number of modified resources across types.
func (cs *ChangeSet) ModifiedCount() int {
	n := 0
	for _, list := range cs.Modified {
		n += len(list)
	}
	return n
}
