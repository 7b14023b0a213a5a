package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for consolidated
// attendance rows. At most one row exists per (employee, date).
type AttendanceRepository interface {
	// GetByEmployeeAndDate returns nil, nil when no row exists yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// Upsert writes the consolidated row for (EmployeeID, Date), creating or
	// replacing its punch boundaries. Any write clears the Synced flag.
	Upsert(ctx context.Context, record Record) (Record, error)

	// ListByEmployeeAndRange returns rows with Date in [start, end], both
	// ends inclusive, ordered by date.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Record, error)

	// MarkPaid flags every row of the employee within the range as paid.
	MarkPaid(ctx context.Context, employeeID string, start, end time.Time) error
}

// UnmatchedRepository stores punch buckets pending employee assignment.
type UnmatchedRepository interface {
	// GetByBiometricAndDate returns nil, nil when no bucket exists.
	GetByBiometricAndDate(ctx context.Context, biometricID string, date time.Time) (*UnmatchedPunch, error)
	GetByID(ctx context.Context, id string) (UnmatchedPunch, error)
	// Upsert stores the bucket's (deduplicated, sorted) time set.
	Upsert(ctx context.Context, bucket UnmatchedPunch) (UnmatchedPunch, error)
	List(ctx context.Context) ([]UnmatchedPunch, error)
	Delete(ctx context.Context, id string) error
}

// BlocklistRepository stores biometric ids whose punches must be dropped.
type BlocklistRepository interface {
	Add(ctx context.Context, blocked BlockedID) error
	IsBlocked(ctx context.Context, biometricID string) (bool, error)
	List(ctx context.Context) ([]BlockedID, error)
}
