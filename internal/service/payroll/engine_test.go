package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paytrack/paytrack-backend-go/internal/domain/attendance"
	"github.com/paytrack/paytrack-backend-go/internal/domain/employee"
	"github.com/paytrack/paytrack-backend-go/internal/domain/finance"
	"github.com/paytrack/paytrack-backend-go/internal/domain/leave"
	"github.com/paytrack/paytrack-backend-go/internal/domain/schedule"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func stamp(s string) *time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	t = t.UTC()
	return &t
}

func row(day, in, out string) attendance.Record {
	return attendance.Record{
		EmployeeID: "emp-1",
		Date:       date(day),
		CheckIn:    stamp(day + " " + in),
		CheckOut:   stamp(day + " " + out),
		Source:     attendance.SourceDevice,
	}
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, label string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s = %s, want %s", label, got, want)
}

func TestComputeMonthlyFixedDivisorBreakdown(t *testing.T) {
	emp := employee.Employee{
		ID:                 "emp-1",
		PaymentType:        employee.PaymentTypeMonthly,
		MonthlySalary:      decPtr("900000"),
		AgreedDailyHours:   8,
		CheckInWindowStart: strPtr("08:00"),
		CheckInWindowEnd:   strPtr("08:15"),
		Workdays:           []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		LatenessPerMinute:  dec("500"),
		Currency:           "IQD",
		FixedDivisor:       true,
	}

	result, err := Compute(EngineInput{
		Employee:  emp,
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-03-31"),
		Today:     date("2024-04-05"),
		Attendance: []attendance.Record{
			// 13h worked, 5h over the 8 agreed
			row("2024-03-04", "08:00", "21:00"),
			// 30 minutes past the window end, another 5h overtime
			row("2024-03-05", "08:45", "21:45"),
		},
		ApprovedLeaves: []leave.Request{{
			EmployeeID: "emp-1",
			Type:       leave.TypeUnpaid,
			Status:     leave.StatusApproved,
			StartDate:  date("2024-03-06"),
			EndDate:    date("2024-03-07"),
		}},
		Bonuses:    []finance.Bonus{{Amount: dec("100000"), Currency: "IQD"}},
		Deductions: []finance.Deduction{{Amount: dec("50000"), Currency: "IQD"}},
	})
	require.NoError(t, err)

	// Hourly rate: 900000 / 30 / 8 = 3750.
	assertMoney(t, "900000", result.BaseSalary, "BaseSalary")
	assert.Equal(t, 10.0, result.OvertimeHours)
	assertMoney(t, "56250", result.OvertimePay, "OvertimePay") // 10 * 3750 * 1.5
	assert.Equal(t, 30, result.LateMinutes)
	assertMoney(t, "15000", result.LatenessDeduction, "LatenessDeduction") // 30 * 500
	assert.Equal(t, 2, result.AbsentDays)                                  // the two unpaid leave days
	assertMoney(t, "60000", result.AbsenceDeduction, "AbsenceDeduction")   // 2 * 3750 * 8
	assertMoney(t, "100000", result.BonusesTotal, "BonusesTotal")
	assertMoney(t, "50000", result.ManualDeductionsTotal, "ManualDeductionsTotal")
	assertMoney(t, "125000", result.TotalDeductions, "TotalDeductions")
	assertMoney(t, "931250", result.NetSalary, "NetSalary")
	assert.True(t, result.AdvancesTotal.IsZero(), "advances are never applied automatically")
}

func TestComputeOvernightShiftWraps(t *testing.T) {
	emp := employee.Employee{
		ID:               "emp-1",
		PaymentType:      employee.PaymentTypeHourly,
		HourlyRate:       decPtr("10"),
		AgreedDailyHours: 8,
		Currency:         "USD",
	}

	// Checked in at 22:00, out stamped 02:00 on the same date: four hours.
	result, err := Compute(EngineInput{
		Employee:   emp,
		StartDate:  date("2024-03-11"),
		EndDate:    date("2024-03-11"),
		Today:      date("2024-03-20"),
		Attendance: []attendance.Record{row("2024-03-11", "22:00", "02:00")},
	})
	require.NoError(t, err)

	assert.Equal(t, 4.0, result.WorkedHours)
	assert.Equal(t, 0.0, result.OvertimeHours)
	assertMoney(t, "40", result.BaseSalary, "BaseSalary")
	assertMoney(t, "40", result.NetSalary, "NetSalary")
}

func TestComputeGraceRoundingInsideWindow(t *testing.T) {
	emp := employee.Employee{
		ID:                 "emp-1",
		PaymentType:        employee.PaymentTypeHourly,
		HourlyRate:         decPtr("10"),
		AgreedDailyHours:   8,
		CheckInWindowStart: strPtr("08:00"),
		CheckInWindowEnd:   strPtr("08:15"),
		Currency:           "USD",
	}

	// 08:10 is inside the grace window: counts as 08:00, zero late minutes.
	result, err := Compute(EngineInput{
		Employee:   emp,
		StartDate:  date("2024-03-11"),
		EndDate:    date("2024-03-11"),
		Today:      date("2024-03-20"),
		Attendance: []attendance.Record{row("2024-03-11", "08:10", "16:00")},
	})
	require.NoError(t, err)

	assert.Equal(t, 8.0, result.WorkedHours)
	assert.Equal(t, 0, result.LateMinutes)
	assert.True(t, result.LatenessDeduction.IsZero())
}

func TestComputeLatenessMeasuredFromUnroundedCheckIn(t *testing.T) {
	emp := employee.Employee{
		ID:                 "emp-1",
		PaymentType:        employee.PaymentTypeHourly,
		HourlyRate:         decPtr("60"),
		AgreedDailyHours:   8,
		CheckInWindowStart: strPtr("08:00"),
		CheckInWindowEnd:   strPtr("08:15"),
		Currency:           "USD",
	}

	result, err := Compute(EngineInput{
		Employee:   emp,
		StartDate:  date("2024-03-11"),
		EndDate:    date("2024-03-11"),
		Today:      date("2024-03-20"),
		Attendance: []attendance.Record{row("2024-03-11", "08:20", "16:20")},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.LateMinutes)
	// No per-minute rate configured: falls back to hourlyRate/60 = 1 per minute.
	assertMoney(t, "5", result.LatenessDeduction, "LatenessDeduction")
}

func TestComputeAbsenceWorkdayMode(t *testing.T) {
	emp := employee.Employee{
		ID:               "emp-1",
		PaymentType:      employee.PaymentTypeMonthly,
		MonthlySalary:    decPtr("210000"),
		AgreedDailyHours: 8,
		// Sunday through Thursday working week.
		Workdays: []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday},
		Currency: "IQD",
	}

	result, err := Compute(EngineInput{
		Employee:  emp,
		StartDate: date("2024-03-03"), // Sunday
		EndDate:   date("2024-03-09"), // Saturday
		Today:     date("2024-03-07"), // Thursday
		Attendance: []attendance.Record{
			row("2024-03-03", "08:00", "16:00"),
			row("2024-03-04", "08:00", "16:00"),
		},
		ApprovedLeaves: []leave.Request{{
			EmployeeID: "emp-1",
			Type:       leave.TypeAnnual, // paid, not deductible
			Status:     leave.StatusApproved,
			StartDate:  date("2024-03-06"),
			EndDate:    date("2024-03-06"),
		}},
	})
	require.NoError(t, err)

	// Tue 5th: workday, no attendance, no leave -> absent.
	// Wed 6th: covered by non-deductible approved leave -> excused.
	// Thu 7th: workday up to today, nothing -> absent.
	// Fri/Sat: not workdays.
	assert.Equal(t, 2, result.AbsentDays)
}

func TestComputeAbsenceIgnoresFutureWorkdays(t *testing.T) {
	emp := employee.Employee{
		ID:               "emp-1",
		PaymentType:      employee.PaymentTypeMonthly,
		MonthlySalary:    decPtr("210000"),
		AgreedDailyHours: 8,
		Workdays:         []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		Currency:         "IQD",
	}

	result, err := Compute(EngineInput{
		Employee:  emp,
		StartDate: date("2024-03-04"),
		EndDate:   date("2024-03-08"),
		Today:     date("2024-03-05"), // mid-period
		Attendance: []attendance.Record{
			row("2024-03-04", "08:00", "16:00"),
		},
	})
	require.NoError(t, err)

	// Only Tuesday the 5th counts; Wed through Fri are still in the future.
	assert.Equal(t, 1, result.AbsentDays)
}

func TestComputeDeductibleLeaveOnFutureWorkdaysStillCounts(t *testing.T) {
	emp := employee.Employee{
		ID:               "emp-1",
		PaymentType:      employee.PaymentTypeMonthly,
		MonthlySalary:    decPtr("210000"),
		AgreedDailyHours: 8,
		Workdays:         []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		Currency:         "IQD",
	}

	result, err := Compute(EngineInput{
		Employee:  emp,
		StartDate: date("2024-03-04"), // Monday
		EndDate:   date("2024-03-08"), // Friday
		Today:     date("2024-03-05"), // Tuesday
		ApprovedLeaves: []leave.Request{{
			EmployeeID: "emp-1",
			Type:       leave.TypeUnpaid,
			Status:     leave.StatusApproved,
			StartDate:  date("2024-03-07"),
			EndDate:    date("2024-03-08"),
		}},
	})
	require.NoError(t, err)

	// Mon 4th and Tue 5th: past workdays, no attendance -> absent.
	// Wed 6th: still in the future, no leave -> not counted.
	// Thu 7th and Fri 8th: unpaid approved leave charges them regardless of
	// being ahead of today.
	assert.Equal(t, 4, result.AbsentDays)
}

func TestComputeFlatRateSkipsEverything(t *testing.T) {
	categoryID := "cat-1"
	emp := employee.Employee{
		ID:                 "emp-1",
		PaymentType:        employee.PaymentTypeMonthly,
		MonthlySalary:      decPtr("900000"),
		AgreedDailyHours:   8,
		Currency:           "IQD",
		FlatRateCategoryID: &categoryID,
		FlatRateAmount:     decPtr("500000"),
	}

	result, err := Compute(EngineInput{
		Employee:   emp,
		StartDate:  date("2024-03-01"),
		EndDate:    date("2024-03-31"),
		Today:      date("2024-04-05"),
		Attendance: []attendance.Record{row("2024-03-04", "08:00", "23:00")},
		Bonuses:    []finance.Bonus{{Amount: dec("100000"), Currency: "IQD"}},
	})
	require.NoError(t, err)

	assertMoney(t, "500000", result.BaseSalary, "BaseSalary")
	assertMoney(t, "500000", result.NetSalary, "NetSalary")
	assert.True(t, result.OvertimePay.IsZero())
	assert.True(t, result.BonusesTotal.IsZero())
	assert.Equal(t, 0.0, result.WorkedHours)
}

func TestComputeFlatRateWithoutAmountFails(t *testing.T) {
	categoryID := "cat-1"
	emp := employee.Employee{
		ID:                 "emp-1",
		PaymentType:        employee.PaymentTypeMonthly,
		Currency:           "IQD",
		FlatRateCategoryID: &categoryID,
	}

	_, err := Compute(EngineInput{
		Employee:  emp,
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-03-31"),
		Today:     date("2024-04-05"),
	})
	assert.ErrorIs(t, err, employee.ErrCategoryNotFound)
}

func TestComputeWeeklyProRatesByDays(t *testing.T) {
	emp := employee.Employee{
		ID:               "emp-1",
		PaymentType:      employee.PaymentTypeWeekly,
		WeeklySalary:     decPtr("700"),
		AgreedDailyHours: 10,
		Currency:         "USD",
		FixedDivisor:     true,
	}

	result, err := Compute(EngineInput{
		Employee:  emp,
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-03-14"), // 14 days, two weeks
		Today:     date("2024-03-20"),
	})
	require.NoError(t, err)

	assertMoney(t, "1400", result.BaseSalary, "BaseSalary")
	assert.Equal(t, 0, result.AbsentDays, "fixed divisor mode counts only deductible leave days")
	assertMoney(t, "1400", result.NetSalary, "NetSalary")
}

func TestComputeOvertimeMultiplierFallbacks(t *testing.T) {
	emp := employee.Employee{
		ID:               "emp-1",
		PaymentType:      employee.PaymentTypeHourly,
		HourlyRate:       decPtr("10"),
		AgreedDailyHours: 8,
		Currency:         "USD",
	}
	input := EngineInput{
		Employee:   emp,
		StartDate:  date("2024-03-11"),
		EndDate:    date("2024-03-11"),
		Today:      date("2024-03-20"),
		Attendance: []attendance.Record{row("2024-03-11", "08:00", "18:00")}, // 2h overtime
	}

	// Configured fallback wins over the built-in default.
	input.OvertimeMultiplierFallback = 2
	result, err := Compute(input)
	require.NoError(t, err)
	assertMoney(t, "40", result.OvertimePay, "OvertimePay") // 2 * 10 * 2

	// No fallback configured: 1.5.
	input.OvertimeMultiplierFallback = 0
	result, err = Compute(input)
	require.NoError(t, err)
	assertMoney(t, "30", result.OvertimePay, "OvertimePay")

	// Employee's own multiplier beats both.
	input.Employee.OvertimeMultiplier = dec("3")
	result, err = Compute(input)
	require.NoError(t, err)
	assertMoney(t, "60", result.OvertimePay, "OvertimePay")
}

func TestComputeOvertimeThresholdWindow(t *testing.T) {
	emp := employee.Employee{
		ID:                "emp-1",
		PaymentType:       employee.PaymentTypeHourly,
		HourlyRate:        decPtr("10"),
		AgreedDailyHours:  8,
		CheckOutWindowEnd: strPtr("17:00"),
		Currency:          "USD",
	}

	result, err := Compute(EngineInput{
		Employee:   emp,
		StartDate:  date("2024-03-11"),
		EndDate:    date("2024-03-11"),
		Today:      date("2024-03-20"),
		Attendance: []attendance.Record{row("2024-03-11", "08:00", "19:30")},
	})
	require.NoError(t, err)

	// Overtime counts past the configured threshold, not past agreed hours.
	assert.Equal(t, 2.5, result.OvertimeHours)
	assert.Equal(t, 9.0, result.RegularHours)
}

func TestComputeScheduleHistoryDrivesAgreedHours(t *testing.T) {
	emp := employee.Employee{
		ID:               "emp-1",
		PaymentType:      employee.PaymentTypeHourly,
		HourlyRate:       decPtr("10"),
		AgreedDailyHours: 6, // current profile value
		Currency:         "USD",
	}
	history := []schedule.HistoryEntry{
		{EmployeeID: "emp-1", EffectiveFrom: date("2024-01-01"), DailyHours: 8},
		{EmployeeID: "emp-1", EffectiveFrom: date("2024-03-12"), DailyHours: 6},
	}

	result, err := Compute(EngineInput{
		Employee:  emp,
		StartDate: date("2024-03-11"),
		EndDate:   date("2024-03-12"),
		Today:     date("2024-03-20"),
		Attendance: []attendance.Record{
			// Both days 08:00-16:00: 8h. The 11th was still an 8h day (no
			// overtime); the 12th is a 6h day (2h overtime).
			row("2024-03-11", "08:00", "16:00"),
			row("2024-03-12", "08:00", "16:00"),
		},
		ScheduleHistory: history,
	})
	require.NoError(t, err)

	assert.Equal(t, 2.0, result.OvertimeHours)
	assert.Equal(t, 14.0, result.RegularHours)
}

func TestComputeIncompleteDaysAreSkipped(t *testing.T) {
	emp := employee.Employee{
		ID:               "emp-1",
		PaymentType:      employee.PaymentTypeHourly,
		HourlyRate:       decPtr("10"),
		AgreedDailyHours: 8,
		Currency:         "USD",
	}

	open := row("2024-03-11", "08:00", "16:00")
	open.CheckOut = nil

	result, err := Compute(EngineInput{
		Employee:   emp,
		StartDate:  date("2024-03-11"),
		EndDate:    date("2024-03-11"),
		Today:      date("2024-03-20"),
		Attendance: []attendance.Record{open},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.WorkedHours)
	assert.True(t, result.BaseSalary.IsZero())
}

func TestComputeMissingSalaryFields(t *testing.T) {
	emp := employee.Employee{
		ID:               "emp-1",
		PaymentType:      employee.PaymentTypeMonthly,
		AgreedDailyHours: 8,
		Currency:         "IQD",
	}

	_, err := Compute(EngineInput{
		Employee:  emp,
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-03-31"),
		Today:     date("2024-04-05"),
	})
	assert.ErrorIs(t, err, employee.ErrMissingSalaryFields)
}

func TestComputeDeterministic(t *testing.T) {
	emp := employee.Employee{
		ID:                 "emp-1",
		PaymentType:        employee.PaymentTypeMonthly,
		MonthlySalary:      decPtr("900000"),
		AgreedDailyHours:   8,
		CheckInWindowStart: strPtr("08:00"),
		CheckInWindowEnd:   strPtr("08:15"),
		Workdays:           []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		Currency:           "IQD",
		FixedDivisor:       true,
	}
	input := EngineInput{
		Employee:  emp,
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-03-31"),
		Today:     date("2024-04-05"),
		Attendance: []attendance.Record{
			row("2024-03-04", "08:10", "18:00"),
			row("2024-03-05", "08:45", "16:45"),
		},
		Bonuses: []finance.Bonus{{Amount: dec("25000"), Currency: "IQD"}},
	}

	first, err := Compute(input)
	require.NoError(t, err)
	second, err := Compute(input)
	require.NoError(t, err)

	assert.True(t, first.NetSalary.Equal(second.NetSalary))
	assert.Equal(t, first.WorkedHours, second.WorkedHours)
	assert.Equal(t, first.LateMinutes, second.LateMinutes)
	assert.Equal(t, first.AbsentDays, second.AbsentDays)
}
