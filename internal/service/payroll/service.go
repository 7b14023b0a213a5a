package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paytrack/paytrack-backend-go/internal/domain/attendance"
	"github.com/paytrack/paytrack-backend-go/internal/domain/employee"
	"github.com/paytrack/paytrack-backend-go/internal/domain/finance"
	"github.com/paytrack/paytrack-backend-go/internal/domain/leave"
	"github.com/paytrack/paytrack-backend-go/internal/domain/payroll"
	"github.com/paytrack/paytrack-backend-go/internal/domain/schedule"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/database"
)

// Defaults carries company-wide fallbacks injected from configuration.
type Defaults struct {
	Workdays           []time.Weekday
	OvertimeMultiplier float64
}

type PayrollServiceImpl struct {
	tx              database.TxRunner
	employeeRepo    employee.EmployeeRepository
	attendanceRepo  attendance.AttendanceRepository
	blocklistRepo   attendance.BlocklistRepository
	historyRepo     schedule.HistoryRepository
	leaveRepo       leave.LeaveRepository
	advanceRepo     finance.AdvanceRepository
	bonusRepo       finance.BonusRepository
	deductionRepo   finance.DeductionRepository
	paymentRepo     payroll.PaymentRepository
	terminationRepo payroll.TerminationRepository
	defaults        Defaults
	now             func() time.Time
}

func NewPayrollService(
	tx database.TxRunner,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	blocklistRepo attendance.BlocklistRepository,
	historyRepo schedule.HistoryRepository,
	leaveRepo leave.LeaveRepository,
	advanceRepo finance.AdvanceRepository,
	bonusRepo finance.BonusRepository,
	deductionRepo finance.DeductionRepository,
	paymentRepo payroll.PaymentRepository,
	terminationRepo payroll.TerminationRepository,
	defaults Defaults,
	now func() time.Time,
) *PayrollServiceImpl {
	if now == nil {
		now = time.Now
	}
	return &PayrollServiceImpl{
		tx:              tx,
		employeeRepo:    employeeRepo,
		attendanceRepo:  attendanceRepo,
		blocklistRepo:   blocklistRepo,
		historyRepo:     historyRepo,
		leaveRepo:       leaveRepo,
		advanceRepo:     advanceRepo,
		bonusRepo:       bonusRepo,
		deductionRepo:   deductionRepo,
		paymentRepo:     paymentRepo,
		terminationRepo: terminationRepo,
		defaults:        defaults,
		now:             now,
	}
}

// Compute snapshot-reads every input and runs the engine over it. It never
// writes; callers needing freshness re-invoke it after their own reads.
func (s *PayrollServiceImpl) Compute(ctx context.Context, employeeID string, startDate, endDate time.Time) (payroll.Result, error) {
	if endDate.Before(startDate) {
		return payroll.Result{}, payroll.ErrInvalidPeriod
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.Result{}, err
	}

	input, err := s.snapshotInput(ctx, emp, startDate, endDate)
	if err != nil {
		return payroll.Result{}, err
	}

	return Compute(input)
}

func (s *PayrollServiceImpl) snapshotInput(ctx context.Context, emp employee.Employee, startDate, endDate time.Time) (EngineInput, error) {
	rows, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, emp.ID, startDate, endDate)
	if err != nil {
		return EngineInput{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	history, err := s.historyRepo.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return EngineInput{}, fmt.Errorf("failed to list schedule history: %w", err)
	}

	leaves, err := s.leaveRepo.ListApprovedInRange(ctx, emp.ID, startDate, endDate)
	if err != nil {
		return EngineInput{}, fmt.Errorf("failed to list approved leaves: %w", err)
	}

	bonuses, err := s.bonusRepo.ListByEmployeeAndRange(ctx, emp.ID, startDate, endDate)
	if err != nil {
		return EngineInput{}, fmt.Errorf("failed to list bonuses: %w", err)
	}

	deductions, err := s.deductionRepo.ListByEmployeeAndRange(ctx, emp.ID, startDate, endDate)
	if err != nil {
		return EngineInput{}, fmt.Errorf("failed to list deductions: %w", err)
	}

	advances, err := s.advanceRepo.ListOutstanding(ctx, emp.ID)
	if err != nil {
		return EngineInput{}, fmt.Errorf("failed to list outstanding advances: %w", err)
	}

	return EngineInput{
		Employee:                   emp,
		StartDate:                  startDate,
		EndDate:                    endDate,
		Today:                      s.now().UTC().Truncate(24 * time.Hour),
		Attendance:                 rows,
		ScheduleHistory:            history,
		ApprovedLeaves:             leaves,
		Bonuses:                    bonuses,
		Deductions:                 deductions,
		OutstandingAdvances:        advances,
		DefaultWorkdays:            s.defaults.Workdays,
		OvertimeMultiplierFallback: s.defaults.OvertimeMultiplier,
	}, nil
}

// DeliverSalary recomputes the calendar month, optionally consumes the
// selected outstanding advances, persists the payment, and marks the
// month's attendance rows and the consumed advances as paid. One atomic
// transaction end to end. Weekly employees are paid their flat weekly
// salary without a full recomputation.
func (s *PayrollServiceImpl) DeliverSalary(ctx context.Context, employeeID string, year int, month time.Month, advanceIDs []string) (payroll.Payment, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.Payment{}, err
	}

	periodStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)

	var gross decimal.Decimal
	if emp.PaymentType == employee.PaymentTypeWeekly {
		if emp.WeeklySalary == nil {
			return payroll.Payment{}, employee.ErrMissingSalaryFields
		}
		gross = *emp.WeeklySalary
	} else {
		input, err := s.snapshotInput(ctx, emp, periodStart, periodEnd)
		if err != nil {
			return payroll.Payment{}, err
		}
		result, err := Compute(input)
		if err != nil {
			return payroll.Payment{}, err
		}
		gross = result.NetSalary
	}

	outstanding, err := s.advanceRepo.ListOutstanding(ctx, employeeID)
	if err != nil {
		return payroll.Payment{}, fmt.Errorf("failed to list outstanding advances: %w", err)
	}
	outstandingSet := make(map[string]finance.Advance, len(outstanding))
	for _, adv := range outstanding {
		outstandingSet[adv.ID] = adv
	}

	advancesDeducted := decimal.Zero
	for _, id := range advanceIDs {
		adv, ok := outstandingSet[id]
		if !ok {
			return payroll.Payment{}, payroll.ErrAdvanceNotSelectable
		}
		advancesDeducted = advancesDeducted.Add(adv.Amount)
	}

	payment := payroll.Payment{
		EmployeeID:       employeeID,
		PeriodYear:       year,
		PeriodMonth:      month,
		GrossSalary:      gross,
		AdvancesDeducted: advancesDeducted,
		NetSalary:        gross.Sub(advancesDeducted),
		PaidAt:           s.now().UTC(),
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.paymentRepo.Create(txCtx, payment)
		if err != nil {
			return err
		}
		payment = created

		if err := s.attendanceRepo.MarkPaid(txCtx, employeeID, periodStart, periodEnd); err != nil {
			return fmt.Errorf("failed to mark attendance paid: %w", err)
		}
		if len(advanceIDs) > 0 {
			if err := s.advanceRepo.MarkPaid(txCtx, advanceIDs); err != nil {
				return fmt.Errorf("failed to mark advances paid: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return payroll.Payment{}, err
	}

	slog.Info("Salary delivered",
		"employee_id", employeeID,
		"period", fmt.Sprintf("%d-%02d", year, int(month)),
		"net", payment.NetSalary,
	)
	return payment, nil
}

// Terminate settles the partial final period [first of the termination
// month, terminationDate], snapshots the result on a termination record,
// deactivates the employee, and blocks their biometric id so punches from a
// reissued badge are dropped rather than misattributed.
func (s *PayrollServiceImpl) Terminate(ctx context.Context, employeeID string, terminationDate time.Time, reason string) (payroll.Termination, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.Termination{}, err
	}

	if _, err := s.terminationRepo.GetByEmployee(ctx, employeeID); err == nil {
		return payroll.Termination{}, payroll.ErrAlreadyTerminated
	} else if !errors.Is(err, payroll.ErrTerminationNotFound) {
		return payroll.Termination{}, err
	}

	periodStart := time.Date(terminationDate.Year(), terminationDate.Month(), 1, 0, 0, 0, 0, time.UTC)

	input, err := s.snapshotInput(ctx, emp, periodStart, terminationDate)
	if err != nil {
		return payroll.Termination{}, err
	}
	settlement, err := Compute(input)
	if err != nil {
		return payroll.Termination{}, err
	}

	termination := payroll.Termination{
		EmployeeID: employeeID,
		Date:       terminationDate,
		Reason:     reason,
		Settlement: settlement,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.terminationRepo.Create(txCtx, termination)
		if err != nil {
			return err
		}
		termination = created

		if err := s.employeeRepo.Deactivate(txCtx, employeeID); err != nil {
			return err
		}

		return s.blocklistRepo.Add(txCtx, attendance.BlockedID{
			BiometricID: emp.BiometricID,
			Reason:      fmt.Sprintf("terminated: %s", reason),
			BlockedAt:   s.now().UTC(),
		})
	})
	if err != nil {
		return payroll.Termination{}, err
	}

	slog.Info("Employee terminated",
		"employee_id", employeeID,
		"date", terminationDate.Format("2006-01-02"),
	)
	return termination, nil
}

// ListPayments returns the employee's delivered salaries, newest period first.
func (s *PayrollServiceImpl) ListPayments(ctx context.Context, employeeID string) ([]payroll.Payment, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByEmployee(ctx, employeeID)
}

// GetTermination returns the settlement record for a departed employee.
func (s *PayrollServiceImpl) GetTermination(ctx context.Context, employeeID string) (payroll.Termination, error) {
	return s.terminationRepo.GetByEmployee(ctx, employeeID)
}
