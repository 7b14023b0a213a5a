package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/paytrack/paytrack-backend-go/internal/domain/attendance"
	"github.com/paytrack/paytrack-backend-go/internal/domain/employee"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/database"
)

type IngestServiceImpl struct {
	tx             database.TxRunner
	attendanceRepo attendance.AttendanceRepository
	unmatchedRepo  attendance.UnmatchedRepository
	blocklistRepo  attendance.BlocklistRepository
	employeeRepo   employee.EmployeeRepository
}

func NewIngestService(
	tx database.TxRunner,
	attendanceRepo attendance.AttendanceRepository,
	unmatchedRepo attendance.UnmatchedRepository,
	blocklistRepo attendance.BlocklistRepository,
	employeeRepo employee.EmployeeRepository,
) *IngestServiceImpl {
	return &IngestServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		unmatchedRepo:  unmatchedRepo,
		blocklistRepo:  blocklistRepo,
		employeeRepo:   employeeRepo,
	}
}

// punchKey buckets punches per external id per day during one batch.
type punchKey struct {
	biometricID string
	date        time.Time
}

// Ingest consolidates one raw punch batch. Malformed and blocked punches are
// skipped without aborting the batch; unknown ids land in unmatched buckets.
// The whole batch is applied in one transaction so readers never observe a
// half-merged day.
func (s *IngestServiceImpl) Ingest(ctx context.Context, source attendance.Source, punches []attendance.RawPunch) (attendance.IngestResult, error) {
	var result attendance.IngestResult

	// Bucket locally first; nothing process-wide accumulates between calls.
	buckets := make(map[punchKey][]time.Time)
	order := make([]punchKey, 0)

	for _, punch := range punches {
		key, punchTime, err := parsePunch(punch)
		if err != nil {
			result.Skipped++
			continue
		}

		blocked, err := s.blocklistRepo.IsBlocked(ctx, key.biometricID)
		if err != nil {
			return attendance.IngestResult{}, fmt.Errorf("failed to check blocklist: %w", err)
		}
		if blocked {
			result.Skipped++
			continue
		}

		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], punchTime)
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, key := range order {
			times := buckets[key]

			emp, err := s.employeeRepo.GetByBiometricID(txCtx, key.biometricID)
			if err != nil {
				if errors.Is(err, employee.ErrEmployeeNotFound) {
					if err := s.addUnmatched(txCtx, key, times); err != nil {
						return err
					}
					result.Unmatched++
					continue
				}
				return fmt.Errorf("failed to resolve biometric id %s: %w", key.biometricID, err)
			}

			if err := s.mergeDay(txCtx, emp.ID, key.date, times, source); err != nil {
				return err
			}
			result.Consolidated++
		}
		return nil
	})
	if err != nil {
		return attendance.IngestResult{}, err
	}

	slog.Info("Punch batch ingested",
		"source", source,
		"consolidated", result.Consolidated,
		"unmatched", result.Unmatched,
		"skipped", result.Skipped,
	)
	return result, nil
}

// mergeDay applies the consolidation rule against whatever row already
// exists for (employeeID, date) and writes the converged result back.
func (s *IngestServiceImpl) mergeDay(ctx context.Context, employeeID string, date time.Time, times []time.Time, source attendance.Source) error {
	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to load attendance row: %w", err)
	}

	checkIn, checkOut := attendance.MergePunchTimes(existing, date, times)

	record := attendance.Record{
		EmployeeID: employeeID,
		Date:       date,
		CheckIn:    &checkIn,
		CheckOut:   checkOut,
		Source:     source,
		Synced:     false, // any write resets the cloud-sync flag
	}
	if existing != nil {
		record.ID = existing.ID
		record.Paid = existing.Paid
	}

	if _, err := s.attendanceRepo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to upsert attendance row: %w", err)
	}
	return nil
}

func (s *IngestServiceImpl) addUnmatched(ctx context.Context, key punchKey, times []time.Time) error {
	existing, err := s.unmatchedRepo.GetByBiometricAndDate(ctx, key.biometricID, key.date)
	if err != nil {
		return fmt.Errorf("failed to load unmatched bucket: %w", err)
	}

	set := make(map[string]struct{})
	if existing != nil {
		for _, t := range existing.Times {
			set[t] = struct{}{}
		}
	}
	for _, t := range times {
		set[t.Format("15:04:05")] = struct{}{}
	}

	merged := make([]string, 0, len(set))
	for t := range set {
		merged = append(merged, t)
	}
	sort.Strings(merged)

	bucket := attendance.UnmatchedPunch{
		BiometricID: key.biometricID,
		Date:        key.date,
		Times:       merged,
	}
	if existing != nil {
		bucket.ID = existing.ID
	}

	if _, err := s.unmatchedRepo.Upsert(ctx, bucket); err != nil {
		return fmt.Errorf("failed to upsert unmatched bucket: %w", err)
	}
	return nil
}

// ResolveUnmatched atomically assigns the bucket's biometric id to the
// employee, replays the bucket's punch set through the merge rule, and
// deletes the bucket. Double resolution surfaces as a conflict; partial
// application cannot occur.
func (s *IngestServiceImpl) ResolveUnmatched(ctx context.Context, bucketID, employeeID string) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		bucket, err := s.unmatchedRepo.GetByID(txCtx, bucketID)
		if err != nil {
			if errors.Is(err, attendance.ErrBucketNotFound) {
				return attendance.ErrBucketAlreadyResolved
			}
			return err
		}

		emp, err := s.employeeRepo.GetByID(txCtx, employeeID)
		if err != nil {
			return err
		}

		if err := s.employeeRepo.SetBiometricID(txCtx, emp.ID, bucket.BiometricID); err != nil {
			return err
		}

		times := make([]time.Time, 0, len(bucket.Times))
		for _, clock := range bucket.Times {
			t, err := parseClock(clock)
			if err != nil {
				return fmt.Errorf("corrupt bucket time %q: %w", clock, err)
			}
			times = append(times, t)
		}
		if err := s.mergeDay(txCtx, emp.ID, bucket.Date, times, attendance.SourceResolved); err != nil {
			return err
		}

		return s.unmatchedRepo.Delete(txCtx, bucket.ID)
	})
}

// ListAttendance returns the employee's consolidated rows over an inclusive
// date range.
func (s *IngestServiceImpl) ListAttendance(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, start, end)
}

// ListUnmatched returns every pending bucket.
func (s *IngestServiceImpl) ListUnmatched(ctx context.Context) ([]attendance.UnmatchedPunch, error) {
	return s.unmatchedRepo.List(ctx)
}

// Block adds a biometric id to the blocklist.
func (s *IngestServiceImpl) Block(ctx context.Context, biometricID, reason string) error {
	return s.blocklistRepo.Add(ctx, attendance.BlockedID{
		BiometricID: biometricID,
		Reason:      reason,
		BlockedAt:   time.Now().UTC(),
	})
}

// ListBlocked returns the current blocklist.
func (s *IngestServiceImpl) ListBlocked(ctx context.Context) ([]attendance.BlockedID, error) {
	return s.blocklistRepo.List(ctx)
}

func parsePunch(punch attendance.RawPunch) (punchKey, time.Time, error) {
	if punch.BiometricID == "" || punch.Date == "" || punch.Time == "" {
		return punchKey{}, time.Time{}, attendance.ErrInvalidPunch
	}
	date, err := time.Parse("2006-01-02", punch.Date)
	if err != nil {
		return punchKey{}, time.Time{}, attendance.ErrInvalidPunch
	}
	punchTime, err := parseClock(punch.Time)
	if err != nil {
		return punchKey{}, time.Time{}, attendance.ErrInvalidPunch
	}
	return punchKey{biometricID: punch.BiometricID, date: date}, punchTime, nil
}

func parseClock(clock string) (time.Time, error) {
	var lastErr error
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, clock)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
