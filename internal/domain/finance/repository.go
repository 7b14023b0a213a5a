package finance

import (
	"context"
	"time"
)

type AdvanceRepository interface {
	Create(ctx context.Context, advance Advance) (Advance, error)
	GetByID(ctx context.Context, id string) (Advance, error)
	// ListOutstanding returns every approved, not-yet-paid advance for the
	// employee regardless of date or currency.
	ListOutstanding(ctx context.Context, employeeID string) ([]Advance, error)
	UpdateStatus(ctx context.Context, id string, status AdvanceStatus) error
	MarkPaid(ctx context.Context, ids []string) error
}

type BonusRepository interface {
	Create(ctx context.Context, bonus Bonus) (Bonus, error)
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Bonus, error)
}

type DeductionRepository interface {
	Create(ctx context.Context, deduction Deduction) (Deduction, error)
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Deduction, error)
}
