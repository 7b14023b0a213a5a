package attendance

import (
	"context"
	"time"
)

// Record is the single authoritative attendance row for one employee on one
// calendar date. CheckOut may be chronologically before CheckIn on the same
// date stamp; that encodes an overnight shift and is resolved by adding 24h
// when durations are computed.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time // day-granular, midnight UTC
	CheckIn    *time.Time
	CheckOut   *time.Time
	Source     Source
	Synced     bool // synced-to-cloud flag, cleared on every write
	Paid       bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Source string

const (
	SourceDevice   Source = "device"
	SourcePull     Source = "pull"
	SourceImport   Source = "import"
	SourceManual   Source = "manual"
	SourceResolved Source = "resolved"
)

// UnmatchedPunch is a bucket of punch times for a biometric id that has no
// employee mapping yet, keyed by (BiometricID, Date). Times is a set:
// duplicates within or across batches never double-count.
type UnmatchedPunch struct {
	ID          string
	BiometricID string
	Date        time.Time
	Times       []string // "15:04:05", sorted, unique
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BlockedID drops punches for a biometric id before they are stored or
// surfaced as unmatched. Termination adds the departing employee's id here.
type BlockedID struct {
	BiometricID string
	Reason      string
	BlockedAt   time.Time
}

// RawPunch is one timestamped check event as delivered by any source:
// network push device, scheduled pull, spreadsheet import or manual entry.
type RawPunch struct {
	BiometricID string `json:"biometric_id"`
	Date        string `json:"date"` // "2006-01-02"
	Time        string `json:"time"` // "15:04" or "15:04:05"
}

// PunchSource is a transport that can be polled for pending punches. The
// vendor protocol behind it is out of scope here.
type PunchSource interface {
	Pull(ctx context.Context) ([]RawPunch, error)
}
