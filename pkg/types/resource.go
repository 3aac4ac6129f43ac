package types

import "strings"

// Tag is a single key-value tag as collectors report it. Order in a
// resource's tag list carries no meaning; comparisons always go through
// TagMap.
type Tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// Resource represents one inventoried cloud object. The resource type is
// not stored on the record itself; it is the key of the snapshot bucket
// the record belongs to. Fields holds every attribute the collector saw,
// heterogeneous per resource type, with no fixed schema.
type Resource struct {
	ID     string         `json:"ResourceId"`
	Name   string         `json:"ResourceName,omitempty"`
	Fields map[string]any `json:"Fields,omitempty"`
	Tags   []Tag          `json:"Tags,omitempty"`
}

// Diffable reports whether the record can participate in identity-based
// comparison. Records without an ID are still counted and summarized but
// are invisible to the diff.
func (r *Resource) Diffable() bool {
	return strings.TrimSpace(r.ID) != ""
}

// TagMap collapses the tag list into a key-value map. A later duplicate
// key overwrites an earlier one.
func (r *Resource) TagMap() map[string]string {
	if len(r.Tags) == 0 {
		return map[string]string{}
	}
	m := make(map[string]string, len(r.Tags))
	for _, t := range r.Tags {
		if t.Key == "" {
			continue
		}
		m[t.Key] = t.Value
	}
	return m
}

// GetTag returns the value of a specific tag, or empty string if not set.
func (r *Resource) GetTag(key string) string {
	return r.TagMap()[key]
}

// GetField returns a field value by key.
func (r *Resource) GetField(key string) (any, bool) {
	if r.Fields == nil {
		return nil, false
	}
	v, ok := r.Fields[key]
	return v, ok
}

// StringField returns a field value as a string, or empty string when the
// field is absent or not a string.
func (r *Resource) StringField(key string) string {
	v, ok := r.GetField(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Clone creates a deep copy of the resource. Field values are copied
// recursively for maps and slices, which covers everything collectors emit
// after a JSON round trip.
func (r *Resource) Clone() *Resource {
	clone := &Resource{
		ID:   r.ID,
		Name: r.Name,
	}

	if r.Fields != nil {
		clone.Fields = make(map[string]any, len(r.Fields))
		for k, v := range r.Fields {
			clone.Fields[k] = cloneValue(v)
		}
	}

	if r.Tags != nil {
		clone.Tags = make([]Tag, len(r.Tags))
		copy(clone.Tags, r.Tags)
	}

	return clone
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = cloneValue(item)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = cloneValue(item)
		}
		return s
	default:
		return v
	}
}
