package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/paytrack/paytrack-backend-go/internal/config"
	"github.com/paytrack/paytrack-backend-go/internal/domain/employee"
	"github.com/paytrack/paytrack-backend-go/internal/domain/schedule"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	tx          database.TxRunner
	repo        employee.EmployeeRepository
	historyRepo schedule.HistoryRepository
	now         func() time.Time
}

func NewEmployeeService(
	tx database.TxRunner,
	repo employee.EmployeeRepository,
	historyRepo schedule.HistoryRepository,
	now func() time.Time,
) *EmployeeServiceImpl {
	if now == nil {
		now = time.Now
	}
	return &EmployeeServiceImpl{tx: tx, repo: repo, historyRepo: historyRepo, now: now}
}

// Create inserts the profile together with its first schedule-history entry,
// effective on the creation date. One transaction: a profile without its
// opening history row must never be observable.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	workdays, err := config.ParseWorkdays(strings.Join(req.Workdays, ","))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("invalid workdays: %w", err)
	}

	emp := employee.Employee{
		FullName:           req.FullName,
		BiometricID:        req.BiometricID,
		PaymentType:        employee.PaymentType(req.PaymentType),
		HourlyRate:         req.HourlyRate,
		MonthlySalary:      req.MonthlySalary,
		WeeklySalary:       req.WeeklySalary,
		AgreedDailyHours:   req.AgreedDailyHours,
		CheckInWindowStart: req.CheckInWindowStart,
		CheckInWindowEnd:   req.CheckInWindowEnd,
		CheckOutWindowEnd:  req.CheckOutWindowEnd,
		Workdays:           workdays,
		Currency:           req.Currency,
		FixedDivisor:       req.FixedDivisor,
		FlatRateCategoryID: req.FlatRateCategoryID,
		IsActive:           true,
	}
	if req.LatenessPerMinute != nil {
		emp.LatenessPerMinute = *req.LatenessPerMinute
	}
	if req.OvertimeMultiplier != nil {
		emp.OvertimeMultiplier = *req.OvertimeMultiplier
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.repo.Create(txCtx, emp)
		if err != nil {
			return err
		}
		emp = created

		_, err = s.historyRepo.Append(txCtx, schedule.HistoryEntry{
			EmployeeID:    emp.ID,
			EffectiveFrom: today(s.now()),
			DailyHours:    emp.AgreedDailyHours,
		})
		return err
	})
	if err != nil {
		return employee.Employee{}, err
	}

	slog.Info("Employee created", "employee_id", emp.ID, "biometric_id", emp.BiometricID)
	return emp, nil
}

// Update applies profile changes. A change to the agreed daily hours also
// appends a schedule-history entry effective today; history rows themselves
// are never rewritten.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}

	hoursChanged := req.AgreedDailyHours != nil && *req.AgreedDailyHours != emp.AgreedDailyHours

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.AgreedDailyHours != nil {
		emp.AgreedDailyHours = *req.AgreedDailyHours
	}
	if req.HourlyRate != nil {
		emp.HourlyRate = req.HourlyRate
	}
	if req.MonthlySalary != nil {
		emp.MonthlySalary = req.MonthlySalary
	}
	if req.WeeklySalary != nil {
		emp.WeeklySalary = req.WeeklySalary
	}
	if req.CheckInWindowStart != nil {
		emp.CheckInWindowStart = req.CheckInWindowStart
	}
	if req.CheckInWindowEnd != nil {
		emp.CheckInWindowEnd = req.CheckInWindowEnd
	}
	if req.CheckOutWindowEnd != nil {
		emp.CheckOutWindowEnd = req.CheckOutWindowEnd
	}
	if len(req.Workdays) > 0 {
		workdays, err := config.ParseWorkdays(strings.Join(req.Workdays, ","))
		if err != nil {
			return employee.Employee{}, fmt.Errorf("invalid workdays: %w", err)
		}
		emp.Workdays = workdays
	}
	if req.LatenessPerMinute != nil {
		emp.LatenessPerMinute = *req.LatenessPerMinute
	}
	if req.OvertimeMultiplier != nil {
		emp.OvertimeMultiplier = *req.OvertimeMultiplier
	}
	if req.FixedDivisor != nil {
		emp.FixedDivisor = *req.FixedDivisor
	}
	if req.FlatRateCategoryID != nil {
		emp.FlatRateCategoryID = req.FlatRateCategoryID
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, emp); err != nil {
			return err
		}
		if hoursChanged {
			_, err := s.historyRepo.Append(txCtx, schedule.HistoryEntry{
				EmployeeID:    emp.ID,
				EffectiveFrom: today(s.now()),
				DailyHours:    emp.AgreedDailyHours,
			})
			return err
		}
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}

	return emp, nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EmployeeServiceImpl) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	return s.repo.List(ctx, activeOnly)
}

// ListScheduleHistory returns the full append-only schedule log, oldest first.
func (s *EmployeeServiceImpl) ListScheduleHistory(ctx context.Context, employeeID string) ([]schedule.HistoryEntry, error) {
	if _, err := s.repo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByEmployee(ctx, employeeID)
}

// HoursEffectiveOn answers the point-in-time schedule question for a date.
func (s *EmployeeServiceImpl) HoursEffectiveOn(ctx context.Context, employeeID string, date time.Time) (float64, error) {
	emp, err := s.repo.GetByID(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	entry, err := s.historyRepo.LatestOnOrBefore(ctx, employeeID, date)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return emp.AgreedDailyHours, nil
	}
	return entry.DailyHours, nil
}

func today(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
