package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/paytrack/paytrack-backend-go/internal/domain/finance"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/database"
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) finance.AdvanceRepository {
	return &advanceRepository{db: db}
}

// Create implements finance.AdvanceRepository.
func (r *advanceRepository) Create(ctx context.Context, advance finance.Advance) (finance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	advance.ID = uuid.NewString()
	err := q.QueryRow(ctx, `
		INSERT INTO salary_advances (id, employee_id, amount, currency, date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, advance.ID, advance.EmployeeID, advance.Amount, advance.Currency, advance.Date, advance.Status).
		Scan(&advance.CreatedAt, &advance.UpdatedAt)
	if err != nil {
		return finance.Advance{}, fmt.Errorf("failed to create salary advance: %w", err)
	}
	return advance, nil
}

// GetByID implements finance.AdvanceRepository.
func (r *advanceRepository) GetByID(ctx context.Context, id string) (finance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	var a finance.Advance
	err := q.QueryRow(ctx, `
		SELECT id, employee_id, amount, currency, date, status, created_at, updated_at
		FROM salary_advances
		WHERE id = $1
	`, id).Scan(&a.ID, &a.EmployeeID, &a.Amount, &a.Currency, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return finance.Advance{}, finance.ErrAdvanceNotFound
	}
	if err != nil {
		return finance.Advance{}, fmt.Errorf("failed to get salary advance: %w", err)
	}
	return a, nil
}

// ListOutstanding implements finance.AdvanceRepository.
func (r *advanceRepository) ListOutstanding(ctx context.Context, employeeID string) ([]finance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, amount, currency, date, status, created_at, updated_at
		FROM salary_advances
		WHERE employee_id = $1 AND status = $2
		ORDER BY date ASC
	`, employeeID, finance.AdvanceStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list outstanding advances: %w", err)
	}
	defer rows.Close()

	var advances []finance.Advance
	for rows.Next() {
		var a finance.Advance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Amount, &a.Currency, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan salary advance: %w", err)
		}
		advances = append(advances, a)
	}
	return advances, rows.Err()
}

// UpdateStatus implements finance.AdvanceRepository.
func (r *advanceRepository) UpdateStatus(ctx context.Context, id string, status finance.AdvanceStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE salary_advances
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update salary advance status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return finance.ErrAdvanceNotFound
	}
	return nil
}

// MarkPaid implements finance.AdvanceRepository.
func (r *advanceRepository) MarkPaid(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE salary_advances
		SET status = $2, updated_at = NOW()
		WHERE id = ANY($1)
	`, ids, finance.AdvanceStatusPaid)
	if err != nil {
		return fmt.Errorf("failed to mark advances paid: %w", err)
	}
	return nil
}

type bonusRepository struct {
	db *database.DB
}

func NewBonusRepository(db *database.DB) finance.BonusRepository {
	return &bonusRepository{db: db}
}

// Create implements finance.BonusRepository.
func (r *bonusRepository) Create(ctx context.Context, bonus finance.Bonus) (finance.Bonus, error) {
	q := GetQuerier(ctx, r.db)

	bonus.ID = uuid.NewString()
	err := q.QueryRow(ctx, `
		INSERT INTO bonuses (id, employee_id, amount, currency, date, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, bonus.ID, bonus.EmployeeID, bonus.Amount, bonus.Currency, bonus.Date, bonus.Note).
		Scan(&bonus.CreatedAt)
	if err != nil {
		return finance.Bonus{}, fmt.Errorf("failed to create bonus: %w", err)
	}
	return bonus, nil
}

// ListByEmployeeAndRange implements finance.BonusRepository.
func (r *bonusRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]finance.Bonus, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, amount, currency, date, note, created_at
		FROM bonuses
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonuses: %w", err)
	}
	defer rows.Close()

	var bonuses []finance.Bonus
	for rows.Next() {
		var b finance.Bonus
		if err := rows.Scan(&b.ID, &b.EmployeeID, &b.Amount, &b.Currency, &b.Date, &b.Note, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bonus: %w", err)
		}
		bonuses = append(bonuses, b)
	}
	return bonuses, rows.Err()
}

type deductionRepository struct {
	db *database.DB
}

func NewDeductionRepository(db *database.DB) finance.DeductionRepository {
	return &deductionRepository{db: db}
}

// Create implements finance.DeductionRepository.
func (r *deductionRepository) Create(ctx context.Context, deduction finance.Deduction) (finance.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	deduction.ID = uuid.NewString()
	err := q.QueryRow(ctx, `
		INSERT INTO deductions (id, employee_id, amount, currency, date, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, deduction.ID, deduction.EmployeeID, deduction.Amount, deduction.Currency, deduction.Date, deduction.Note).
		Scan(&deduction.CreatedAt)
	if err != nil {
		return finance.Deduction{}, fmt.Errorf("failed to create deduction: %w", err)
	}
	return deduction, nil
}

// ListByEmployeeAndRange implements finance.DeductionRepository.
func (r *deductionRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]finance.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, amount, currency, date, note, created_at
		FROM deductions
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}
	defer rows.Close()

	var deductions []finance.Deduction
	for rows.Next() {
		var d finance.Deduction
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.Amount, &d.Currency, &d.Date, &d.Note, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deduction: %w", err)
		}
		deductions = append(deductions, d)
	}
	return deductions, rows.Err()
}
