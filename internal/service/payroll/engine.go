package payroll

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paytrack/paytrack-backend-go/internal/domain/attendance"
	"github.com/paytrack/paytrack-backend-go/internal/domain/employee"
	"github.com/paytrack/paytrack-backend-go/internal/domain/finance"
	"github.com/paytrack/paytrack-backend-go/internal/domain/leave"
	"github.com/paytrack/paytrack-backend-go/internal/domain/payroll"
	"github.com/paytrack/paytrack-backend-go/internal/domain/schedule"
)

// DefaultOvertimeMultiplier applies when the employee's multiplier is zero.
const DefaultOvertimeMultiplier = 1.5

// EngineInput is everything the computation reads. The engine itself never
// touches a store: callers snapshot-read these inputs first, so the result
// is a pure function of them. Today is the injected clock for the absence
// cutoff (future workdays are never counted absent).
type EngineInput struct {
	Employee            employee.Employee
	StartDate           time.Time
	EndDate             time.Time
	Today               time.Time
	Attendance          []attendance.Record
	ScheduleHistory     []schedule.HistoryEntry // ascending by EffectiveFrom
	ApprovedLeaves      []leave.Request
	Bonuses             []finance.Bonus
	Deductions          []finance.Deduction
	OutstandingAdvances []finance.Advance
	DefaultWorkdays     []time.Weekday
	// OvertimeMultiplierFallback replaces a zero employee multiplier.
	// Zero means DefaultOvertimeMultiplier.
	OvertimeMultiplierFallback float64
}

// Compute produces the full pay breakdown for the input's date range, both
// ends inclusive. Termination settlement and salary delivery both run
// through this same function.
func Compute(in EngineInput) (payroll.Result, error) {
	emp := in.Employee
	result := payroll.Result{
		EmployeeID:          emp.ID,
		PeriodStart:         in.StartDate,
		PeriodEnd:           in.EndDate,
		Currency:            emp.Currency,
		OutstandingAdvances: in.OutstandingAdvances,
	}

	// Flat-rate employees are exempt from every attendance-driven component;
	// their pay for the period is the configured category amount.
	if emp.FlatRateCategoryID != nil {
		if emp.FlatRateAmount == nil {
			return payroll.Result{}, employee.ErrCategoryNotFound
		}
		result.BaseSalary = *emp.FlatRateAmount
		result.NetSalary = result.BaseSalary
		return result, nil
	}

	hourlyRate, err := effectiveHourlyRate(emp, in.StartDate, in.DefaultWorkdays)
	if err != nil {
		return payroll.Result{}, err
	}

	tally := tallyAttendance(emp, in.Attendance, in.ScheduleHistory)
	result.WorkedHours = tally.worked
	result.RegularHours = tally.regular
	result.OvertimeHours = tally.overtime
	result.LateMinutes = tally.lateMinutes

	// Lateness charge: explicit per-minute rate when configured, otherwise
	// one sixtieth of the hourly rate per minute.
	perMinute := emp.LatenessPerMinute
	if !perMinute.IsPositive() {
		perMinute = hourlyRate.Div(decimal.NewFromInt(60))
	}
	result.LatenessDeduction = decimal.NewFromInt(int64(tally.lateMinutes)).Mul(perMinute)

	multiplier := emp.OvertimeMultiplier
	if !multiplier.IsPositive() {
		fallback := in.OvertimeMultiplierFallback
		if fallback <= 0 {
			fallback = DefaultOvertimeMultiplier
		}
		multiplier = decimal.NewFromFloat(fallback)
	}
	result.OvertimePay = decimal.NewFromFloat(tally.overtime).Mul(hourlyRate).Mul(multiplier)

	if emp.PaymentType == employee.PaymentTypeMonthly || emp.PaymentType == employee.PaymentTypeWeekly {
		absentDays := countAbsenceDays(emp, in)
		result.AbsentDays = absentDays
		dailyRate := hourlyRate.Mul(decimal.NewFromFloat(emp.AgreedDailyHours))
		result.AbsenceDeduction = decimal.NewFromInt(int64(absentDays)).Mul(dailyRate)
	}

	// Amounts sum numerically across currencies, matching the recorded
	// behavior of the system this replaces.
	for _, b := range in.Bonuses {
		result.BonusesTotal = result.BonusesTotal.Add(b.Amount)
	}
	for _, d := range in.Deductions {
		result.ManualDeductionsTotal = result.ManualDeductionsTotal.Add(d.Amount)
	}

	switch emp.PaymentType {
	case employee.PaymentTypeHourly:
		result.BaseSalary = decimal.NewFromFloat(tally.regular).Mul(hourlyRate)
	case employee.PaymentTypeWeekly:
		daysInRange := int(in.EndDate.Sub(in.StartDate).Hours()/24) + 1
		weeks := decimal.NewFromInt(int64(daysInRange)).Div(decimal.NewFromInt(7))
		result.BaseSalary = emp.WeeklySalary.Mul(weeks)
	default:
		result.BaseSalary = *emp.MonthlySalary
	}

	result.TotalDeductions = result.LatenessDeduction.
		Add(result.AbsenceDeduction).
		Add(result.ManualDeductionsTotal)
	result.NetSalary = result.BaseSalary.
		Add(result.OvertimePay).
		Add(result.BonusesTotal).
		Sub(result.TotalDeductions)

	return result, nil
}

// effectiveHourlyRate derives the hourly rate per the employee's payment
// type. Monthly and weekly employees without an explicit rate get one
// derived from their period salary, divisor and agreed daily hours.
func effectiveHourlyRate(emp employee.Employee, startDate time.Time, defaultWorkdays []time.Weekday) (decimal.Decimal, error) {
	if emp.HourlyRate != nil && emp.HourlyRate.IsPositive() {
		return *emp.HourlyRate, nil
	}

	if emp.AgreedDailyHours <= 0 {
		return decimal.Zero, employee.ErrMissingSalaryFields
	}
	agreedHours := decimal.NewFromFloat(emp.AgreedDailyHours)
	workdays := workdaySet(emp, defaultWorkdays)

	switch emp.PaymentType {
	case employee.PaymentTypeMonthly:
		if emp.MonthlySalary == nil {
			return decimal.Zero, employee.ErrMissingSalaryFields
		}
		divisor := int64(30)
		if !emp.FixedDivisor {
			divisor = int64(workdaysInMonth(startDate, workdays))
		}
		if divisor == 0 {
			return decimal.Zero, employee.ErrMissingSalaryFields
		}
		dailyRate := emp.MonthlySalary.Div(decimal.NewFromInt(divisor))
		return dailyRate.Div(agreedHours), nil

	case employee.PaymentTypeWeekly:
		if emp.WeeklySalary == nil {
			return decimal.Zero, employee.ErrMissingSalaryFields
		}
		divisor := int64(7)
		if !emp.FixedDivisor {
			divisor = int64(len(workdays))
		}
		if divisor == 0 {
			return decimal.Zero, employee.ErrMissingSalaryFields
		}
		dailyRate := emp.WeeklySalary.Div(decimal.NewFromInt(divisor))
		return dailyRate.Div(agreedHours), nil
	}

	return decimal.Zero, employee.ErrMissingSalaryFields
}

type attendanceTally struct {
	worked      float64
	regular     float64
	overtime    float64
	lateMinutes int
}

// tallyAttendance walks every complete attendance row in range, applying
// grace rounding, overnight wrap, per-date agreed hours and the overtime
// threshold.
func tallyAttendance(emp employee.Employee, rows []attendance.Record, history []schedule.HistoryEntry) attendanceTally {
	var tally attendanceTally

	for _, row := range rows {
		if row.CheckIn == nil || row.CheckOut == nil {
			continue
		}
		checkIn := *row.CheckIn
		checkOut := *row.CheckOut

		// Grace rounding: a check-in inside (windowStart, windowEnd] counts
		// as the window start.
		effectiveCheckIn := checkIn
		if emp.CheckInWindowStart != nil && emp.CheckInWindowEnd != nil {
			winStart := clockOnDate(row.Date, *emp.CheckInWindowStart)
			winEnd := clockOnDate(row.Date, *emp.CheckInWindowEnd)
			if checkIn.After(winStart) && !checkIn.After(winEnd) {
				effectiveCheckIn = winStart
			}
		}

		// Overnight wrap: a check-out stamped at or before the check-in on
		// the same date belongs to the next morning.
		if !checkOut.After(effectiveCheckIn) {
			checkOut = checkOut.Add(24 * time.Hour)
		}
		worked := checkOut.Sub(effectiveCheckIn).Hours()

		agreedHours := schedule.HoursEffectiveOn(history, row.Date, emp.AgreedDailyHours)

		var overtime float64
		if emp.CheckOutWindowEnd != nil {
			threshold := clockOnDate(row.Date, *emp.CheckOutWindowEnd)
			if threshold.Before(effectiveCheckIn) {
				threshold = threshold.Add(24 * time.Hour)
			}
			overtime = math.Max(0, checkOut.Sub(threshold).Hours())
		} else {
			overtime = math.Max(0, worked-agreedHours)
		}

		tally.worked += worked
		tally.overtime += overtime
		tally.regular += worked - overtime

		// Lateness is measured from the unrounded check-in.
		if emp.CheckInWindowEnd != nil {
			winEnd := clockOnDate(row.Date, *emp.CheckInWindowEnd)
			if checkIn.After(winEnd) {
				tally.lateMinutes += int(math.Floor(checkIn.Sub(winEnd).Minutes()))
			}
		}
	}

	return tally
}

// countAbsenceDays implements the two absence modes. With a fixed divisor,
// only days inside deductible approved leave count. Otherwise every
// configured workday up to today lacking both attendance and approved-leave
// coverage counts, plus distinct workdays under deductible approved leave.
func countAbsenceDays(emp employee.Employee, in EngineInput) int {
	deductibleLeaves := make([]leave.Request, 0, len(in.ApprovedLeaves))
	for _, l := range in.ApprovedLeaves {
		if l.Status == leave.StatusApproved && l.IsDeductible() {
			deductibleLeaves = append(deductibleLeaves, l)
		}
	}

	if emp.FixedDivisor {
		count := 0
		for d := in.StartDate; !d.After(in.EndDate); d = d.AddDate(0, 0, 1) {
			for _, l := range deductibleLeaves {
				if l.Covers(d) {
					count++
					break
				}
			}
		}
		return count
	}

	attended := make(map[string]bool, len(in.Attendance))
	for _, row := range in.Attendance {
		attended[dayKey(row.Date)] = true
	}

	workdays := make(map[time.Weekday]bool)
	for _, wd := range workdaySet(emp, in.DefaultWorkdays) {
		workdays[wd] = true
	}

	count := 0
	for d := in.StartDate; !d.After(in.EndDate); d = d.AddDate(0, 0, 1) {
		if !workdays[d.Weekday()] {
			continue
		}
		if deductible, covered := leaveCoverage(in.ApprovedLeaves, d); covered {
			// Deductible leave over a workday charges that day even when the
			// day is still ahead; any other approved leave excuses it.
			if deductible {
				count++
			}
			continue
		}
		// Only past days can be counted absent for lacking attendance.
		if d.After(in.Today) {
			continue
		}
		if !attended[dayKey(d)] {
			count++
		}
	}
	return count
}

// leaveCoverage reports whether any approved leave covers the date, and
// whether at least one covering leave is salary-deductible.
func leaveCoverage(leaves []leave.Request, date time.Time) (deductible, covered bool) {
	for _, l := range leaves {
		if l.Status != leave.StatusApproved || !l.Covers(date) {
			continue
		}
		covered = true
		if l.IsDeductible() {
			deductible = true
		}
	}
	return deductible, covered
}

func workdaySet(emp employee.Employee, defaults []time.Weekday) []time.Weekday {
	if len(emp.Workdays) > 0 {
		return emp.Workdays
	}
	return defaults
}

// workdaysInMonth counts the configured workday dates inside the calendar
// month containing ref.
func workdaysInMonth(ref time.Time, workdays []time.Weekday) int {
	set := make(map[time.Weekday]bool, len(workdays))
	for _, wd := range workdays {
		set[wd] = true
	}
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	count := 0
	for d := first; d.Month() == ref.Month(); d = d.AddDate(0, 0, 1) {
		if set[d.Weekday()] {
			count++
		}
	}
	return count
}

// clockOnDate pins an "HH:MM" or "HH:MM:SS" clock string onto a date.
func clockOnDate(date time.Time, clock string) time.Time {
	var t time.Time
	var err error
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err = time.Parse(layout, clock); err == nil {
			break
		}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func dayKey(date time.Time) string {
	return date.Format("2006-01-02")
}
