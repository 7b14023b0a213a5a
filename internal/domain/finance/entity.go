package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advance is salary paid out ahead of the period. Approved advances stay
// outstanding until salary delivery explicitly consumes them.
type Advance struct {
	ID         string
	EmployeeID string
	Amount     decimal.Decimal
	Currency   string
	Date       time.Time
	Status     AdvanceStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type AdvanceStatus string

const (
	AdvanceStatusPending  AdvanceStatus = "pending"
	AdvanceStatusApproved AdvanceStatus = "approved"
	AdvanceStatusRejected AdvanceStatus = "rejected"
	AdvanceStatusPaid     AdvanceStatus = "paid"
)

type Bonus struct {
	ID         string
	EmployeeID string
	Amount     decimal.Decimal
	Currency   string
	Date       time.Time
	Note       *string
	CreatedAt  time.Time
}

type Deduction struct {
	ID         string
	EmployeeID string
	Amount     decimal.Decimal
	Currency   string
	Date       time.Time
	Note       *string
	CreatedAt  time.Time
}
