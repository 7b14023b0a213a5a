package schedule

import (
	"context"
	"time"
)

// HistoryRepository is append-only: entries are inserted and listed, never
// updated or removed. The log is the audit trail for schedule changes.
type HistoryRepository interface {
	Append(ctx context.Context, entry HistoryEntry) (HistoryEntry, error)
	// ListByEmployee returns the employee's entries ordered by EffectiveFrom
	// ascending.
	ListByEmployee(ctx context.Context, employeeID string) ([]HistoryEntry, error)
	// LatestOnOrBefore returns nil, nil when no entry is in force yet.
	LatestOnOrBefore(ctx context.Context, employeeID string, date time.Time) (*HistoryEntry, error)
}
