package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/paytrack/paytrack-backend-go/internal/domain/payroll"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/database"
)

type paymentRepository struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payroll.PaymentRepository {
	return &paymentRepository{db: db}
}

// Create implements payroll.PaymentRepository.
func (r *paymentRepository) Create(ctx context.Context, payment payroll.Payment) (payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)

	payment.ID = uuid.NewString()
	err := q.QueryRow(ctx, `
		INSERT INTO salary_payments (id, employee_id, period_year, period_month, gross_salary, advances_deducted, net_salary, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING paid_at
	`, payment.ID, payment.EmployeeID, payment.PeriodYear, int(payment.PeriodMonth),
		payment.GrossSalary, payment.AdvancesDeducted, payment.NetSalary, payment.PaidAt).
		Scan(&payment.PaidAt)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.Payment{}, payroll.ErrPaymentAlreadyExists
		}
		return payroll.Payment{}, fmt.Errorf("failed to create salary payment: %w", err)
	}
	return payment, nil
}

// GetByEmployeeAndPeriod implements payroll.PaymentRepository.
func (r *paymentRepository) GetByEmployeeAndPeriod(ctx context.Context, employeeID string, year int, month time.Month) (payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)

	var p payroll.Payment
	var periodMonth int
	err := q.QueryRow(ctx, `
		SELECT id, employee_id, period_year, period_month, gross_salary, advances_deducted, net_salary, paid_at
		FROM salary_payments
		WHERE employee_id = $1 AND period_year = $2 AND period_month = $3
	`, employeeID, year, int(month)).Scan(
		&p.ID, &p.EmployeeID, &p.PeriodYear, &periodMonth,
		&p.GrossSalary, &p.AdvancesDeducted, &p.NetSalary, &p.PaidAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.Payment{}, payroll.ErrPaymentNotFound
	}
	if err != nil {
		return payroll.Payment{}, fmt.Errorf("failed to get salary payment: %w", err)
	}
	p.PeriodMonth = time.Month(periodMonth)
	return p, nil
}

// ListByEmployee implements payroll.PaymentRepository.
func (r *paymentRepository) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, period_year, period_month, gross_salary, advances_deducted, net_salary, paid_at
		FROM salary_payments
		WHERE employee_id = $1
		ORDER BY period_year DESC, period_month DESC
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary payments: %w", err)
	}
	defer rows.Close()

	var payments []payroll.Payment
	for rows.Next() {
		var p payroll.Payment
		var periodMonth int
		err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.PeriodYear, &periodMonth,
			&p.GrossSalary, &p.AdvancesDeducted, &p.NetSalary, &p.PaidAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary payment: %w", err)
		}
		p.PeriodMonth = time.Month(periodMonth)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

type terminationRepository struct {
	db *database.DB
}

func NewTerminationRepository(db *database.DB) payroll.TerminationRepository {
	return &terminationRepository{db: db}
}

// Create implements payroll.TerminationRepository. The settlement snapshot is
// stored as JSONB so the computed breakdown survives later schedule or rate
// changes untouched.
func (r *terminationRepository) Create(ctx context.Context, termination payroll.Termination) (payroll.Termination, error) {
	q := GetQuerier(ctx, r.db)

	settlement, err := json.Marshal(termination.Settlement)
	if err != nil {
		return payroll.Termination{}, fmt.Errorf("failed to marshal settlement: %w", err)
	}

	termination.ID = uuid.NewString()
	err = q.QueryRow(ctx, `
		INSERT INTO terminations (id, employee_id, date, reason, settlement)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, termination.ID, termination.EmployeeID, termination.Date, termination.Reason, settlement).
		Scan(&termination.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.Termination{}, payroll.ErrAlreadyTerminated
		}
		return payroll.Termination{}, fmt.Errorf("failed to create termination: %w", err)
	}
	return termination, nil
}

// GetByEmployee implements payroll.TerminationRepository.
func (r *terminationRepository) GetByEmployee(ctx context.Context, employeeID string) (payroll.Termination, error) {
	q := GetQuerier(ctx, r.db)

	var t payroll.Termination
	var settlement []byte
	err := q.QueryRow(ctx, `
		SELECT id, employee_id, date, reason, settlement, created_at
		FROM terminations
		WHERE employee_id = $1
	`, employeeID).Scan(&t.ID, &t.EmployeeID, &t.Date, &t.Reason, &settlement, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.Termination{}, payroll.ErrTerminationNotFound
	}
	if err != nil {
		return payroll.Termination{}, fmt.Errorf("failed to get termination: %w", err)
	}
	if err := json.Unmarshal(settlement, &t.Settlement); err != nil {
		return payroll.Termination{}, fmt.Errorf("failed to unmarshal settlement: %w", err)
	}
	return t, nil
}
