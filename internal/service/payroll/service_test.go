package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paytrack/paytrack-backend-go/internal/domain/attendance"
	"github.com/paytrack/paytrack-backend-go/internal/domain/employee"
	"github.com/paytrack/paytrack-backend-go/internal/domain/finance"
	"github.com/paytrack/paytrack-backend-go/internal/domain/leave"
	"github.com/paytrack/paytrack-backend-go/internal/domain/payroll"
	"github.com/paytrack/paytrack-backend-go/internal/domain/schedule"
)

// In-memory fakes. The service only needs the repository contracts, so tests
// run without a database.

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByBiometricID(ctx context.Context, biometricID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.BiometricID == biometricID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if !activeOnly || emp.IsActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, emp employee.Employee) error {
	if _, ok := f.employees[emp.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	f.employees[emp.ID] = emp
	return nil
}

func (f *fakeEmployeeRepo) SetBiometricID(ctx context.Context, employeeID, biometricID string) error {
	emp, ok := f.employees[employeeID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.BiometricID = biometricID
	f.employees[employeeID] = emp
	return nil
}

func (f *fakeEmployeeRepo) Deactivate(ctx context.Context, employeeID string) error {
	emp, ok := f.employees[employeeID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.IsActive = false
	f.employees[employeeID] = emp
	return nil
}

func (f *fakeEmployeeRepo) GetCategoryByID(ctx context.Context, id string) (employee.FlatRateCategory, error) {
	return employee.FlatRateCategory{}, employee.ErrCategoryNotFound
}

type fakeAttendanceRepo struct {
	rows []attendance.Record
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, d time.Time) (*attendance.Record, error) {
	for i := range f.rows {
		if f.rows[i].EmployeeID == employeeID && f.rows[i].Date.Equal(d) {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	for i := range f.rows {
		if f.rows[i].EmployeeID == record.EmployeeID && f.rows[i].Date.Equal(record.Date) {
			f.rows[i] = record
			return record, nil
		}
	}
	f.rows = append(f.rows, record)
	return record, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, row := range f.rows {
		if row.EmployeeID == employeeID && !row.Date.Before(start) && !row.Date.After(end) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) MarkPaid(ctx context.Context, employeeID string, start, end time.Time) error {
	for i := range f.rows {
		if f.rows[i].EmployeeID == employeeID && !f.rows[i].Date.Before(start) && !f.rows[i].Date.After(end) {
			f.rows[i].Paid = true
		}
	}
	return nil
}

type fakeBlocklistRepo struct {
	blocked map[string]attendance.BlockedID
}

func (f *fakeBlocklistRepo) Add(ctx context.Context, b attendance.BlockedID) error {
	f.blocked[b.BiometricID] = b
	return nil
}

func (f *fakeBlocklistRepo) IsBlocked(ctx context.Context, biometricID string) (bool, error) {
	_, ok := f.blocked[biometricID]
	return ok, nil
}

func (f *fakeBlocklistRepo) List(ctx context.Context) ([]attendance.BlockedID, error) {
	var out []attendance.BlockedID
	for _, b := range f.blocked {
		out = append(out, b)
	}
	return out, nil
}

type fakeHistoryRepo struct {
	entries []schedule.HistoryEntry
}

func (f *fakeHistoryRepo) Append(ctx context.Context, e schedule.HistoryEntry) (schedule.HistoryEntry, error) {
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeHistoryRepo) ListByEmployee(ctx context.Context, employeeID string) ([]schedule.HistoryEntry, error) {
	var out []schedule.HistoryEntry
	for _, e := range f.entries {
		if e.EmployeeID == employeeID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) LatestOnOrBefore(ctx context.Context, employeeID string, d time.Time) (*schedule.HistoryEntry, error) {
	var latest *schedule.HistoryEntry
	for i := range f.entries {
		e := f.entries[i]
		if e.EmployeeID == employeeID && !e.EffectiveFrom.After(d) {
			latest = &e
		}
	}
	return latest, nil
}

type fakeLeaveRepo struct {
	requests []leave.Request
}

func (f *fakeLeaveRepo) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	f.requests = append(f.requests, req)
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.Request, error) {
	for _, req := range f.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return leave.Request{}, leave.ErrLeaveRequestNotFound
}

func (f *fakeLeaveRepo) ListApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Request, error) {
	var out []leave.Request
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && req.Status == leave.StatusApproved &&
			!req.StartDate.After(end) && !req.EndDate.Before(start) {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, id string, status leave.Status) error {
	for i := range f.requests {
		if f.requests[i].ID == id {
			f.requests[i].Status = status
			return nil
		}
	}
	return leave.ErrLeaveRequestNotFound
}

type fakeAdvanceRepo struct {
	advances []finance.Advance
}

func (f *fakeAdvanceRepo) Create(ctx context.Context, a finance.Advance) (finance.Advance, error) {
	f.advances = append(f.advances, a)
	return a, nil
}

func (f *fakeAdvanceRepo) GetByID(ctx context.Context, id string) (finance.Advance, error) {
	for _, a := range f.advances {
		if a.ID == id {
			return a, nil
		}
	}
	return finance.Advance{}, finance.ErrAdvanceNotFound
}

func (f *fakeAdvanceRepo) ListOutstanding(ctx context.Context, employeeID string) ([]finance.Advance, error) {
	var out []finance.Advance
	for _, a := range f.advances {
		if a.EmployeeID == employeeID && a.Status == finance.AdvanceStatusApproved {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAdvanceRepo) UpdateStatus(ctx context.Context, id string, status finance.AdvanceStatus) error {
	for i := range f.advances {
		if f.advances[i].ID == id {
			f.advances[i].Status = status
			return nil
		}
	}
	return finance.ErrAdvanceNotFound
}

func (f *fakeAdvanceRepo) MarkPaid(ctx context.Context, ids []string) error {
	for _, id := range ids {
		for i := range f.advances {
			if f.advances[i].ID == id {
				f.advances[i].Status = finance.AdvanceStatusPaid
			}
		}
	}
	return nil
}

type fakeBonusRepo struct{ bonuses []finance.Bonus }

func (f *fakeBonusRepo) Create(ctx context.Context, b finance.Bonus) (finance.Bonus, error) {
	f.bonuses = append(f.bonuses, b)
	return b, nil
}

func (f *fakeBonusRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]finance.Bonus, error) {
	var out []finance.Bonus
	for _, b := range f.bonuses {
		if b.EmployeeID == employeeID && !b.Date.Before(start) && !b.Date.After(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeDeductionRepo struct{ deductions []finance.Deduction }

func (f *fakeDeductionRepo) Create(ctx context.Context, d finance.Deduction) (finance.Deduction, error) {
	f.deductions = append(f.deductions, d)
	return d, nil
}

func (f *fakeDeductionRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]finance.Deduction, error) {
	var out []finance.Deduction
	for _, d := range f.deductions {
		if d.EmployeeID == employeeID && !d.Date.Before(start) && !d.Date.After(end) {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakePaymentRepo struct{ payments []payroll.Payment }

func (f *fakePaymentRepo) Create(ctx context.Context, p payroll.Payment) (payroll.Payment, error) {
	for _, existing := range f.payments {
		if existing.EmployeeID == p.EmployeeID && existing.PeriodYear == p.PeriodYear && existing.PeriodMonth == p.PeriodMonth {
			return payroll.Payment{}, payroll.ErrPaymentAlreadyExists
		}
	}
	p.ID = "pay-1"
	f.payments = append(f.payments, p)
	return p, nil
}

func (f *fakePaymentRepo) GetByEmployeeAndPeriod(ctx context.Context, employeeID string, year int, month time.Month) (payroll.Payment, error) {
	for _, p := range f.payments {
		if p.EmployeeID == employeeID && p.PeriodYear == year && p.PeriodMonth == month {
			return p, nil
		}
	}
	return payroll.Payment{}, payroll.ErrPaymentNotFound
}

func (f *fakePaymentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Payment, error) {
	var out []payroll.Payment
	for _, p := range f.payments {
		if p.EmployeeID == employeeID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeTerminationRepo struct{ terminations []payroll.Termination }

func (f *fakeTerminationRepo) Create(ctx context.Context, t payroll.Termination) (payroll.Termination, error) {
	for _, existing := range f.terminations {
		if existing.EmployeeID == t.EmployeeID {
			return payroll.Termination{}, payroll.ErrAlreadyTerminated
		}
	}
	t.ID = "term-1"
	f.terminations = append(f.terminations, t)
	return t, nil
}

func (f *fakeTerminationRepo) GetByEmployee(ctx context.Context, employeeID string) (payroll.Termination, error) {
	for _, t := range f.terminations {
		if t.EmployeeID == employeeID {
			return t, nil
		}
	}
	return payroll.Termination{}, payroll.ErrTerminationNotFound
}

type payrollFixture struct {
	svc          *PayrollServiceImpl
	employees    *fakeEmployeeRepo
	attendance   *fakeAttendanceRepo
	blocklist    *fakeBlocklistRepo
	history      *fakeHistoryRepo
	leaves       *fakeLeaveRepo
	advances     *fakeAdvanceRepo
	payments     *fakePaymentRepo
	terminations *fakeTerminationRepo
}

func newPayrollFixture(now time.Time) *payrollFixture {
	f := &payrollFixture{
		employees:    &fakeEmployeeRepo{employees: map[string]employee.Employee{}},
		attendance:   &fakeAttendanceRepo{},
		blocklist:    &fakeBlocklistRepo{blocked: map[string]attendance.BlockedID{}},
		history:      &fakeHistoryRepo{},
		leaves:       &fakeLeaveRepo{},
		advances:     &fakeAdvanceRepo{},
		payments:     &fakePaymentRepo{},
		terminations: &fakeTerminationRepo{},
	}
	f.svc = NewPayrollService(
		fakeTx{},
		f.employees,
		f.attendance,
		f.blocklist,
		f.history,
		f.leaves,
		f.advances,
		&fakeBonusRepo{},
		&fakeDeductionRepo{},
		f.payments,
		f.terminations,
		Defaults{
			Workdays:           []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
			OvertimeMultiplier: 1.5,
		},
		func() time.Time { return now },
	)
	return f
}

func monthlyEmployee() employee.Employee {
	return employee.Employee{
		ID:               "emp-1",
		FullName:         "Test Employee",
		BiometricID:      "42",
		PaymentType:      employee.PaymentTypeMonthly,
		MonthlySalary:    decPtr("900000"),
		AgreedDailyHours: 8,
		Currency:         "IQD",
		FixedDivisor:     true,
		IsActive:         true,
	}
}

func TestDeliverSalaryMarksAttendanceAndAdvancesPaid(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(date("2024-04-01"))
	f.employees.employees["emp-1"] = monthlyEmployee()
	f.attendance.rows = []attendance.Record{
		row("2024-03-04", "08:00", "16:00"),
		row("2024-03-05", "08:00", "16:00"),
	}
	f.advances.advances = []finance.Advance{
		{ID: "adv-1", EmployeeID: "emp-1", Amount: dec("100000"), Currency: "IQD", Status: finance.AdvanceStatusApproved},
		{ID: "adv-2", EmployeeID: "emp-1", Amount: dec("50000"), Currency: "IQD", Status: finance.AdvanceStatusApproved},
	}

	payment, err := f.svc.DeliverSalary(ctx, "emp-1", 2024, time.March, []string{"adv-1"})
	require.NoError(t, err)

	assert.True(t, dec("100000").Equal(payment.AdvancesDeducted))
	assert.True(t, payment.NetSalary.Equal(payment.GrossSalary.Sub(dec("100000"))))

	for _, rec := range f.attendance.rows {
		assert.True(t, rec.Paid, "attendance row %s must be marked paid", rec.Date.Format("2006-01-02"))
	}
	assert.Equal(t, finance.AdvanceStatusPaid, f.advances.advances[0].Status)
	assert.Equal(t, finance.AdvanceStatusApproved, f.advances.advances[1].Status, "unselected advance stays outstanding")
}

func TestDeliverSalaryRejectsUnknownAdvance(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(date("2024-04-01"))
	f.employees.employees["emp-1"] = monthlyEmployee()

	_, err := f.svc.DeliverSalary(ctx, "emp-1", 2024, time.March, []string{"adv-missing"})
	assert.ErrorIs(t, err, payroll.ErrAdvanceNotSelectable)
	assert.Empty(t, f.payments.payments, "nothing may persist when selection fails")
}

func TestDeliverSalaryWeeklySkipsRecomputation(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(date("2024-04-01"))
	emp := monthlyEmployee()
	emp.PaymentType = employee.PaymentTypeWeekly
	emp.MonthlySalary = nil
	emp.WeeklySalary = decPtr("250000")
	f.employees.employees["emp-1"] = emp

	payment, err := f.svc.DeliverSalary(ctx, "emp-1", 2024, time.March, nil)
	require.NoError(t, err)
	assert.True(t, dec("250000").Equal(payment.GrossSalary))
}

func TestDeliverSalaryDuplicatePeriod(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(date("2024-04-01"))
	f.employees.employees["emp-1"] = monthlyEmployee()

	_, err := f.svc.DeliverSalary(ctx, "emp-1", 2024, time.March, nil)
	require.NoError(t, err)

	_, err = f.svc.DeliverSalary(ctx, "emp-1", 2024, time.March, nil)
	assert.ErrorIs(t, err, payroll.ErrPaymentAlreadyExists)
}

func TestComputeServiceRejectsInvertedPeriod(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(date("2024-04-01"))
	f.employees.employees["emp-1"] = monthlyEmployee()

	_, err := f.svc.Compute(ctx, "emp-1", date("2024-03-31"), date("2024-03-01"))
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestComputeServiceIsReadOnly(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(date("2024-04-01"))
	f.employees.employees["emp-1"] = monthlyEmployee()
	f.attendance.rows = []attendance.Record{row("2024-03-04", "08:00", "16:00")}

	result, err := f.svc.Compute(ctx, "emp-1", date("2024-03-01"), date("2024-03-31"))
	require.NoError(t, err)
	assert.False(t, result.NetSalary.IsZero())

	assert.Empty(t, f.payments.payments)
	assert.False(t, f.attendance.rows[0].Paid)
}

func TestTerminateSettlesAndBlocksIdentifier(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(date("2024-03-20"))
	f.employees.employees["emp-1"] = monthlyEmployee()
	f.attendance.rows = []attendance.Record{row("2024-03-04", "08:00", "16:00")}

	termination, err := f.svc.Terminate(ctx, "emp-1", date("2024-03-15"), "contract ended")
	require.NoError(t, err)

	assert.Equal(t, date("2024-03-01"), termination.Settlement.PeriodStart)
	assert.Equal(t, date("2024-03-15"), termination.Settlement.PeriodEnd)
	assert.False(t, termination.Settlement.NetSalary.IsZero())

	emp, err := f.employees.GetByID(ctx, "emp-1")
	require.NoError(t, err)
	assert.False(t, emp.IsActive)

	blocked, err := f.blocklist.IsBlocked(ctx, "42")
	require.NoError(t, err)
	assert.True(t, blocked, "terminated employee's biometric id must be blocked")
}

func TestTerminateTwiceFails(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(date("2024-03-20"))
	f.employees.employees["emp-1"] = monthlyEmployee()

	_, err := f.svc.Terminate(ctx, "emp-1", date("2024-03-15"), "contract ended")
	require.NoError(t, err)

	_, err = f.svc.Terminate(ctx, "emp-1", date("2024-03-16"), "again")
	assert.ErrorIs(t, err, payroll.ErrAlreadyTerminated)
}

func TestTerminationSettlementSurvivesLaterChanges(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(date("2024-03-20"))
	f.employees.employees["emp-1"] = monthlyEmployee()

	termination, err := f.svc.Terminate(ctx, "emp-1", date("2024-03-15"), "contract ended")
	require.NoError(t, err)
	net := termination.Settlement.NetSalary

	// A later salary change must not affect the stored snapshot.
	emp := f.employees.employees["emp-1"]
	emp.MonthlySalary = decPtr("1")
	f.employees.employees["emp-1"] = emp

	stored, err := f.svc.GetTermination(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, net.Equal(stored.Settlement.NetSalary))
}
