package booking

import (
	"context"
	"errors"
)

// ErrScheduleRead indicates the schedule store was unreachable or returned
// rows this package could not use. The matcher never runs on a partial
// read; a failed read surfaces to the caller with no outcome.
var ErrScheduleRead = errors.New("schedule read failed")

// Store supplies booking records for matching. Implementations are
// read-only: nothing in this core mutates booking state.
//
// A Store is meant to be opened, used for one read, and closed within the
// scope of a single matching call. Callers must Close on all exit paths.
type Store interface {
	// ListRecords returns every booking record in the schedule.
	ListRecords(ctx context.Context) ([]Record, error)

	// Close releases the store's connection.
	Close() error
}
