package employee

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paytrack/paytrack-backend-go/internal/domain/employee"
	"github.com/paytrack/paytrack-backend-go/internal/domain/schedule"
)

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	emp.ID = fmt.Sprintf("emp-%d", len(f.employees)+1)
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
		if activeOnly && !emp.IsActive {
			continue
		}
		out = append(out, emp)
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

type fakeHistoryRepo struct {
	entries []schedule.HistoryEntry
}

func (f *fakeHistoryRepo) Append(ctx context.Context, entry schedule.HistoryEntry) (schedule.HistoryEntry, error) {
	entry.ID = fmt.Sprintf("hist-%d", len(f.entries)+1)
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeHistoryRepo) ListByEmployee(ctx context.Context, employeeID string) ([]schedule.HistoryEntry, error) {
	var out []schedule.HistoryEntry
	for _, entry := range f.entries {
		if entry.EmployeeID == employeeID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) LatestOnOrBefore(ctx context.Context, employeeID string, date time.Time) (*schedule.HistoryEntry, error) {
	var latest *schedule.HistoryEntry
	for i := range f.entries {
		entry := f.entries[i]
		if entry.EmployeeID != employeeID || entry.EffectiveFrom.After(date) {
			continue
		}
		if latest == nil || entry.EffectiveFrom.After(latest.EffectiveFrom) {
			latest = &entry
		}
	}
	return latest, nil
}

func monthlyCreateRequest() employee.CreateEmployeeRequest {
	salary := decimal.NewFromInt(900000)
	return employee.CreateEmployeeRequest{
		FullName:         "Amina Yusuf",
		BiometricID:      "42",
		PaymentType:      "monthly",
		MonthlySalary:    &salary,
		AgreedDailyHours: 8,
		Workdays:         []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
		Currency:         "IDR",
		FixedDivisor:     true,
	}
}

func TestCreateAppendsOpeningScheduleEntry(t *testing.T) {
	ctx := context.Background()
	repo := &fakeEmployeeRepo{employees: map[string]employee.Employee{}}
	history := &fakeHistoryRepo{}
	now := func() time.Time { return time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC) }
	svc := NewEmployeeService(fakeTx{}, repo, history, now)

	emp, err := svc.Create(ctx, monthlyCreateRequest())
	require.NoError(t, err)

	assert.True(t, emp.IsActive)
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}, emp.Workdays)

	require.Len(t, history.entries, 1)
	entry := history.entries[0]
	assert.Equal(t, emp.ID, entry.EmployeeID)
	assert.Equal(t, 8.0, entry.DailyHours)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), entry.EffectiveFrom)
}

func TestUpdateHoursChangeAppendsHistory(t *testing.T) {
	ctx := context.Background()
	repo := &fakeEmployeeRepo{employees: map[string]employee.Employee{}}
	history := &fakeHistoryRepo{}
	now := func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }
	svc := NewEmployeeService(fakeTx{}, repo, history, now)

	emp, err := svc.Create(ctx, monthlyCreateRequest())
	require.NoError(t, err)

	hours := 6.0
	updated, err := svc.Update(ctx, emp.ID, employee.UpdateEmployeeRequest{AgreedDailyHours: &hours})
	require.NoError(t, err)

	assert.Equal(t, 6.0, updated.AgreedDailyHours)
	require.Len(t, history.entries, 2)
	assert.Equal(t, 6.0, history.entries[1].DailyHours)
}

func TestUpdateWithoutHoursChangeLeavesHistoryAlone(t *testing.T) {
	ctx := context.Background()
	repo := &fakeEmployeeRepo{employees: map[string]employee.Employee{}}
	history := &fakeHistoryRepo{}
	svc := NewEmployeeService(fakeTx{}, repo, history, nil)

	emp, err := svc.Create(ctx, monthlyCreateRequest())
	require.NoError(t, err)

	name := "Amina Y. Hassan"
	sameHours := emp.AgreedDailyHours
	_, err = svc.Update(ctx, emp.ID, employee.UpdateEmployeeRequest{
		FullName:         &name,
		AgreedDailyHours: &sameHours,
	})
	require.NoError(t, err)

	assert.Len(t, history.entries, 1, "an unchanged hours value must not append history")
}

func TestHoursEffectiveOnFallsBackToProfile(t *testing.T) {
	ctx := context.Background()
	repo := &fakeEmployeeRepo{employees: map[string]employee.Employee{}}
	history := &fakeHistoryRepo{}
	now := func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }
	svc := NewEmployeeService(fakeTx{}, repo, history, now)

	emp, err := svc.Create(ctx, monthlyCreateRequest())
	require.NoError(t, err)

	// Before the opening entry came into force the profile value applies.
	hours, err := svc.HoursEffectiveOn(ctx, emp.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 8.0, hours)

	hours, err = svc.HoursEffectiveOn(ctx, emp.ID, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 8.0, hours)
}

func TestCreateRejectsUnknownWorkday(t *testing.T) {
	ctx := context.Background()
	repo := &fakeEmployeeRepo{employees: map[string]employee.Employee{}}
	svc := NewEmployeeService(fakeTx{}, repo, &fakeHistoryRepo{}, nil)

	req := monthlyCreateRequest()
	req.Workdays = []string{"Mon", "Funday"}
	_, err := svc.Create(ctx, req)
	require.Error(t, err)
	assert.Empty(t, repo.employees)
}
