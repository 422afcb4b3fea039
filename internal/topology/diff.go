package topology

import "reflect"

// ChangeType classifies a manifest difference.
type ChangeType string

// Change types.
const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeUpdated ChangeType = "updated"
)

// Change is one declaration that differs between two manifests.
type Change struct {
	ID   string
	Kind Kind
	Type ChangeType
}

// Diff compares two manifests by declaration ID. Both should come from
// ParseManifest so property values share the same representation.
// Removed declarations are reported first in old order, then additions and
// updates in new order.
func Diff(old, current *Manifest) []Change {
	oldByID := make(map[string]ManifestEntry, len(old.Declarations))
	for _, e := range old.Declarations {
		oldByID[e.ID] = e
	}
	currentIDs := make(map[string]bool, len(current.Declarations))
	for _, e := range current.Declarations {
		currentIDs[e.ID] = true
	}

	var changes []Change
	for _, e := range old.Declarations {
		if !currentIDs[e.ID] {
			changes = append(changes, Change{ID: e.ID, Kind: e.Kind, Type: ChangeRemoved})
		}
	}
	for _, e := range current.Declarations {
		prev, ok := oldByID[e.ID]
		switch {
		case !ok:
			changes = append(changes, Change{ID: e.ID, Kind: e.Kind, Type: ChangeAdded})
		case prev.Kind != e.Kind ||
			!reflect.DeepEqual(prev.DependsOn, e.DependsOn) ||
			!reflect.DeepEqual(prev.Properties, e.Properties):
			changes = append(changes, Change{ID: e.ID, Kind: e.Kind, Type: ChangeUpdated})
		}
	}
	return changes
}
