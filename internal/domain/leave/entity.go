package leave

import "time"

type Request struct {
	ID         string
	EmployeeID string
	Type       Type
	Status     Status
	StartDate  time.Time
	EndDate    time.Time
	// DeductFromSalary marks an otherwise-paid leave as salary-deductible.
	DeductFromSalary bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Type string

const (
	TypeAnnual Type = "annual"
	TypeSick   Type = "sick"
	TypeUnpaid Type = "unpaid"
	TypeOther  Type = "other"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsDeductible reports whether an approved request reduces salary: unpaid
// leave always does, any other type only when explicitly flagged.
func (r Request) IsDeductible() bool {
	return r.Type == TypeUnpaid || r.DeductFromSalary
}

// Covers reports whether the request's range includes the given date.
func (r Request) Covers(date time.Time) bool {
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}
