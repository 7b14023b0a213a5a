package postgresql

import (
	"context"
	"fmt"

	"github.com/paytrack/paytrack-backend-go/internal/domain/attendance"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/database"
)

type blocklistRepository struct {
	db *database.DB
}

func NewBlocklistRepository(db *database.DB) attendance.BlocklistRepository {
	return &blocklistRepository{db: db}
}

// Add implements attendance.BlocklistRepository. Re-blocking an already
// blocked id refreshes the reason rather than failing.
func (r *blocklistRepository) Add(ctx context.Context, blocked attendance.BlockedID) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO blocked_identifiers (biometric_id, reason, blocked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (biometric_id) DO UPDATE SET
			reason = EXCLUDED.reason,
			blocked_at = EXCLUDED.blocked_at
	`, blocked.BiometricID, blocked.Reason, blocked.BlockedAt)
	if err != nil {
		return fmt.Errorf("failed to block identifier: %w", err)
	}
	return nil
}

// IsBlocked implements attendance.BlocklistRepository.
func (r *blocklistRepository) IsBlocked(ctx context.Context, biometricID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var blocked bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM blocked_identifiers WHERE biometric_id = $1)`,
		biometricID,
	).Scan(&blocked)
	if err != nil {
		return false, fmt.Errorf("failed to check blocklist: %w", err)
	}
	return blocked, nil
}

// List implements attendance.BlocklistRepository.
func (r *blocklistRepository) List(ctx context.Context) ([]attendance.BlockedID, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT biometric_id, reason, blocked_at
		FROM blocked_identifiers
		ORDER BY blocked_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked identifiers: %w", err)
	}
	defer rows.Close()

	var result []attendance.BlockedID
	for rows.Next() {
		var b attendance.BlockedID
		if err := rows.Scan(&b.BiometricID, &b.Reason, &b.BlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blocked identifier: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}
