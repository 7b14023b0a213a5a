package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                 string
	FullName           string
	BiometricID        string
	PaymentType        PaymentType
	HourlyRate         *decimal.Decimal
	MonthlySalary      *decimal.Decimal
	WeeklySalary       *decimal.Decimal
	AgreedDailyHours   float64
	CheckInWindowStart *string // "15:04", start of the check-in grace window
	CheckInWindowEnd   *string // "15:04", lateness threshold
	CheckOutWindowEnd  *string // "15:04", overtime threshold
	Workdays           []time.Weekday
	LatenessPerMinute  decimal.Decimal
	OvertimeMultiplier decimal.Decimal
	Currency           string
	// FixedDivisor selects the flat divisor when deriving a daily rate:
	// 30 for monthly employees, 7 for weekly ones. When false the divisor
	// is the count of configured workdays in the relevant period.
	FixedDivisor       bool
	FlatRateCategoryID *string
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	FlatRateAmount *decimal.Decimal
}

type PaymentType string

const (
	PaymentTypeHourly  PaymentType = "hourly"
	PaymentTypeMonthly PaymentType = "monthly"
	PaymentTypeWeekly  PaymentType = "weekly"
)

// FlatRateCategory is an employee class whose members are paid a fixed
// monthly amount regardless of attendance.
type FlatRateCategory struct {
	ID            string
	Name          string
	MonthlyAmount decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
