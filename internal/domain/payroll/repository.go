package payroll

import (
	"context"
	"time"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment Payment) (Payment, error)
	GetByEmployeeAndPeriod(ctx context.Context, employeeID string, year int, month time.Month) (Payment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Payment, error)
}

type TerminationRepository interface {
	Create(ctx context.Context, termination Termination) (Termination, error)
	GetByEmployee(ctx context.Context, employeeID string) (Termination, error)
}
