package storage

import (
	"errors"
	"fmt"

	"github.com/yairfalse/kulut/pkg/types"
)

// Store persists and retrieves full inventories addressed by calendar
// date. Pure storage; no diffing or aggregation logic lives here.
type Store interface {
	// Save writes a complete inventory for the given date, fully
	// replacing any prior snapshot stored under the same date.
	Save(date string, resources map[string][]types.Resource) (*types.Snapshot, error)

	// Load retrieves the snapshot for a date. Returns a
	// *SnapshotNotFoundError when no snapshot exists for it.
	Load(date string) (*types.Snapshot, error)

	// ListDates returns all stored snapshot dates in ascending order.
	// Only strict YYYY-MM-DD entries are considered.
	ListDates() ([]string, error)

	// LatestDate returns the most recent stored date, or "" when the
	// store is empty.
	LatestDate() (string, error)

	// PreviousDate returns the most recent stored date strictly before
	// the given one, or "" when there is none.
	PreviousDate(before string) (string, error)
}

// SnapshotNotFoundError reports a date with no stored snapshot. It is
// fatal to the operation that needed it; callers must never treat it as
// an empty snapshot.
type SnapshotNotFoundError struct {
	Date string
}

func (e *SnapshotNotFoundError) Error() string {
	return fmt.Sprintf("no snapshot stored for date %s", e.Date)
}

// IsNotFound reports whether err indicates a missing snapshot.
func IsNotFound(err error) bool {
	var nf *SnapshotNotFoundError
	return errors.As(err, &nf)
}
