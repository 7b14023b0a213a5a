package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/paytrack/paytrack-backend-go/internal/domain/attendance"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/database"
)

type unmatchedRepository struct {
	db *database.DB
}

func NewUnmatchedRepository(db *database.DB) attendance.UnmatchedRepository {
	return &unmatchedRepository{db: db}
}

// GetByBiometricAndDate implements attendance.UnmatchedRepository.
func (r *unmatchedRepository) GetByBiometricAndDate(ctx context.Context, biometricID string, date time.Time) (*attendance.UnmatchedPunch, error) {
	q := GetQuerier(ctx, r.db)

	var bucket attendance.UnmatchedPunch
	err := q.QueryRow(ctx, `
		SELECT id, biometric_id, date, times, created_at, updated_at
		FROM unmatched_punches
		WHERE biometric_id = $1 AND date = $2
	`, biometricID, date).Scan(
		&bucket.ID, &bucket.BiometricID, &bucket.Date, &bucket.Times,
		&bucket.CreatedAt, &bucket.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get unmatched bucket: %w", err)
	}
	return &bucket, nil
}

// GetByID implements attendance.UnmatchedRepository.
func (r *unmatchedRepository) GetByID(ctx context.Context, id string) (attendance.UnmatchedPunch, error) {
	q := GetQuerier(ctx, r.db)

	var bucket attendance.UnmatchedPunch
	err := q.QueryRow(ctx, `
		SELECT id, biometric_id, date, times, created_at, updated_at
		FROM unmatched_punches
		WHERE id = $1
	`, id).Scan(
		&bucket.ID, &bucket.BiometricID, &bucket.Date, &bucket.Times,
		&bucket.CreatedAt, &bucket.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.UnmatchedPunch{}, attendance.ErrBucketNotFound
		}
		return attendance.UnmatchedPunch{}, fmt.Errorf("failed to get unmatched bucket: %w", err)
	}
	return bucket, nil
}

// Upsert implements attendance.UnmatchedRepository.
func (r *unmatchedRepository) Upsert(ctx context.Context, bucket attendance.UnmatchedPunch) (attendance.UnmatchedPunch, error) {
	q := GetQuerier(ctx, r.db)

	if bucket.ID == "" {
		bucket.ID = uuid.NewString()
	}

	err := q.QueryRow(ctx, `
		INSERT INTO unmatched_punches (id, biometric_id, date, times)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (biometric_id, date) DO UPDATE SET
			times = EXCLUDED.times,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`, bucket.ID, bucket.BiometricID, bucket.Date, bucket.Times).
		Scan(&bucket.ID, &bucket.CreatedAt, &bucket.UpdatedAt)
	if err != nil {
		return attendance.UnmatchedPunch{}, fmt.Errorf("failed to upsert unmatched bucket: %w", err)
	}
	return bucket, nil
}

// List implements attendance.UnmatchedRepository.
func (r *unmatchedRepository) List(ctx context.Context) ([]attendance.UnmatchedPunch, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, biometric_id, date, times, created_at, updated_at
		FROM unmatched_punches
		ORDER BY date, biometric_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list unmatched buckets: %w", err)
	}
	defer rows.Close()

	var result []attendance.UnmatchedPunch
	for rows.Next() {
		var bucket attendance.UnmatchedPunch
		if err := rows.Scan(
			&bucket.ID, &bucket.BiometricID, &bucket.Date, &bucket.Times,
			&bucket.CreatedAt, &bucket.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan unmatched bucket: %w", err)
		}
		result = append(result, bucket)
	}
	return result, rows.Err()
}

// Delete implements attendance.UnmatchedRepository.
func (r *unmatchedRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM unmatched_punches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete unmatched bucket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrBucketNotFound
	}
	return nil
}
