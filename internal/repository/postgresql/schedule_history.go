package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/paytrack/paytrack-backend-go/internal/domain/schedule"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/database"
)

type scheduleHistoryRepository struct {
	db *database.DB
}

func NewScheduleHistoryRepository(db *database.DB) schedule.HistoryRepository {
	return &scheduleHistoryRepository{db: db}
}

// Append implements schedule.HistoryRepository.
func (r *scheduleHistoryRepository) Append(ctx context.Context, entry schedule.HistoryEntry) (schedule.HistoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	entry.ID = uuid.NewString()
	err := q.QueryRow(ctx, `
		INSERT INTO schedule_history (id, employee_id, effective_from, daily_hours)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, entry.ID, entry.EmployeeID, entry.EffectiveFrom, entry.DailyHours).Scan(&entry.CreatedAt)
	if err != nil {
		return schedule.HistoryEntry{}, fmt.Errorf("failed to append schedule history: %w", err)
	}
	return entry, nil
}

// ListByEmployee implements schedule.HistoryRepository.
func (r *scheduleHistoryRepository) ListByEmployee(ctx context.Context, employeeID string) ([]schedule.HistoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, effective_from, daily_hours, created_at
		FROM schedule_history
		WHERE employee_id = $1
		ORDER BY effective_from ASC, created_at ASC
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule history: %w", err)
	}
	defer rows.Close()

	var entries []schedule.HistoryEntry
	for rows.Next() {
		var e schedule.HistoryEntry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.EffectiveFrom, &e.DailyHours, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LatestOnOrBefore implements schedule.HistoryRepository.
func (r *scheduleHistoryRepository) LatestOnOrBefore(ctx context.Context, employeeID string, date time.Time) (*schedule.HistoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	var e schedule.HistoryEntry
	err := q.QueryRow(ctx, `
		SELECT id, employee_id, effective_from, daily_hours, created_at
		FROM schedule_history
		WHERE employee_id = $1 AND effective_from <= $2
		ORDER BY effective_from DESC, created_at DESC
		LIMIT 1
	`, employeeID, date).Scan(&e.ID, &e.EmployeeID, &e.EffectiveFrom, &e.DailyHours, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule history entry: %w", err)
	}
	return &e, nil
}
