package differ

import (
	"reflect"
	"sort"

	"github.com/yairfalse/kulut/pkg/types"
)

// Differ compares two snapshots and emits a structured change set. It is
// stateless and purely functional: the output is a deterministic
// transform of the two inputs.
type Differ struct{}

// New creates a Differ.
func New() *Differ {
	return &Differ{}
}

// Compare diffs two snapshots. Resource identity is the (type bucket,
// resource ID) pair; records without an ID never appear in the result.
// A record that moves between type buckets surfaces as a removal in the
// old bucket and an addition in the new one.
func (d *Differ) Compare(before, after *types.Snapshot) *types.ChangeSet {
	cs := types.NewChangeSet(before.Date, after.Date)

	for _, resourceType := range unionTypes(before, after) {
		beforeMap := identityMap(before.Resources[resourceType])
		afterMap := identityMap(after.Resources[resourceType])

		var added []types.Resource
		for _, id := range sortedKeys(afterMap) {
			if _, ok := beforeMap[id]; !ok {
				added = append(added, afterMap[id])
			}
		}
		if len(added) > 0 {
			cs.Added[resourceType] = added
		}

		var removed []types.Resource
		for _, id := range sortedKeys(beforeMap) {
			if _, ok := afterMap[id]; !ok {
				removed = append(removed, beforeMap[id])
			}
		}
		if len(removed) > 0 {
			cs.Removed[resourceType] = removed
		}

		var modified []types.ModifiedResource
		for _, id := range sortedKeys(beforeMap) {
			afterRes, ok := afterMap[id]
			if !ok {
				continue
			}
			beforeRes := beforeMap[id]
			if !resourceModified(&beforeRes, &afterRes) {
				continue
			}
			modified = append(modified, types.ModifiedResource{
				ResourceID:   id,
				Before:       beforeRes,
				After:        afterRes,
				FieldChanges: fieldChanges(&beforeRes, &afterRes),
				TagChanges:   diffTags(beforeRes.TagMap(), afterRes.TagMap()),
			})
		}
		if len(modified) > 0 {
			cs.Modified[resourceType] = modified
		}
	}

	return cs
}

// unionTypes returns every resource type present in either snapshot,
// sorted for deterministic output.
func unionTypes(before, after *types.Snapshot) []string {
	seen := map[string]bool{}
	for resourceType := range before.Resources {
		seen[resourceType] = true
	}
	for resourceType := range after.Resources {
		seen[resourceType] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// identityMap indexes a bucket's records by ID. Records without an ID
// are excluded and therefore unobservable to the diff.
func identityMap(list []types.Resource) map[string]types.Resource {
	m := make(map[string]types.Resource, len(list))
	for i := range list {
		if !list[i].Diffable() {
			continue
		}
		m[list[i].ID] = list[i]
	}
	return m
}

func sortedKeys(m map[string]types.Resource) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// resourceModified reports whether any non-tag field deep-differs or the
// tag maps differ. Values are compared as raw representations: an integer
// 0 and a string "0" are different, which deliberately surfaces upstream
// API drift.
func resourceModified(before, after *types.Resource) bool {
	union := map[string]bool{}
	for k := range before.Fields {
		union[k] = true
	}
	for k := range after.Fields {
		union[k] = true
	}
	for k := range union {
		bv, bok := before.GetField(k)
		av, aok := after.GetField(k)
		if bok != aok || !reflect.DeepEqual(bv, av) {
			return true
		}
	}
	if before.Name != after.Name {
		return true
	}
	return !reflect.DeepEqual(before.TagMap(), after.TagMap())
}

// fieldChanges builds the per-field change map for a modified record.
// The resource name is carried outside the field map but still reported
// as a field-level change under "ResourceName".
func fieldChanges(before, after *types.Resource) map[string]types.FieldChange {
	changes := diffFields(before.Fields, after.Fields)
	if before.Name != after.Name {
		if changes == nil {
			changes = map[string]types.FieldChange{}
		}
		changes["ResourceName"] = types.FieldChange{
			Kind: types.FieldModified,
			From: before.Name,
			To:   after.Name,
		}
	}
	return changes
}

// diffFields captures per-field changes over the union of both field
// sets: presence-only changes versus value changes. Tags are handled by
// the dedicated tag diff, never here.
func diffFields(before, after map[string]any) map[string]types.FieldChange {
	changes := map[string]types.FieldChange{}

	for k, bv := range before {
		av, ok := after[k]
		if !ok {
			changes[k] = types.FieldChange{Kind: types.FieldRemoved, Value: bv}
			continue
		}
		if !reflect.DeepEqual(bv, av) {
			changes[k] = types.FieldChange{Kind: types.FieldModified, From: bv, To: av}
		}
	}
	for k, av := range after {
		if _, ok := before[k]; !ok {
			changes[k] = types.FieldChange{Kind: types.FieldAdded, Value: av}
		}
	}

	if len(changes) == 0 {
		return nil
	}
	return changes
}

// diffTags computes the key-level tag diff between two tag maps.
func diffTags(before, after map[string]string) types.TagChanges {
	tc := types.TagChanges{}

	for k, av := range after {
		bv, ok := before[k]
		if !ok {
			if tc.Added == nil {
				tc.Added = map[string]string{}
			}
			tc.Added[k] = av
		} else if bv != av {
			if tc.Modified == nil {
				tc.Modified = map[string]types.ValueChange{}
			}
			tc.Modified[k] = types.ValueChange{From: bv, To: av}
		}
	}
	for k, bv := range before {
		if _, ok := after[k]; !ok {
			if tc.Removed == nil {
				tc.Removed = map[string]string{}
			}
			tc.Removed[k] = bv
		}
	}

	return tc
}
