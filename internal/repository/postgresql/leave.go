package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/paytrack/paytrack-backend-go/internal/domain/leave"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	req.ID = uuid.NewString()
	err := q.QueryRow(ctx, `
		INSERT INTO leave_requests (id, employee_id, type, status, start_date, end_date, deduct_from_salary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, req.ID, req.EmployeeID, req.Type, req.Status, req.StartDate, req.EndDate, req.DeductFromSalary).
		Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return req, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	var req leave.Request
	err := q.QueryRow(ctx, `
		SELECT id, employee_id, type, status, start_date, end_date, deduct_from_salary, created_at, updated_at
		FROM leave_requests
		WHERE id = $1
	`, id).Scan(
		&req.ID, &req.EmployeeID, &req.Type, &req.Status,
		&req.StartDate, &req.EndDate, &req.DeductFromSalary,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

// ListApprovedInRange implements leave.LeaveRepository.
func (r *leaveRepository) ListApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, type, status, start_date, end_date, deduct_from_salary, created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1
			AND status = $2
			AND start_date <= $3
			AND end_date >= $4
		ORDER BY start_date ASC
	`, employeeID, leave.StatusApproved, end, start)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var req leave.Request
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.Type, &req.Status,
			&req.StartDate, &req.EndDate, &req.DeductFromSalary,
			&req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// UpdateStatus implements leave.LeaveRepository.
func (r *leaveRepository) UpdateStatus(ctx context.Context, id string, status leave.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}
