package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/paytrack/paytrack-backend-go/internal/domain/finance"
)

// Result is the full pay breakdown for one employee over one date range.
// It is ephemeral: computed on demand and never persisted, except as the
// immutable settlement snapshot attached to a termination record.
type Result struct {
	EmployeeID   string          `json:"employee_id"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	Currency     string          `json:"currency"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	OvertimePay  decimal.Decimal `json:"overtime_pay"`
	BonusesTotal decimal.Decimal `json:"bonuses_total"`

	LatenessDeduction     decimal.Decimal `json:"lateness_deduction"`
	AbsenceDeduction      decimal.Decimal `json:"absence_deduction"`
	ManualDeductionsTotal decimal.Decimal `json:"manual_deductions_total"`
	// AdvancesTotal is always zero here: applying advances is an explicit
	// operator choice at delivery time, never automatic.
	AdvancesTotal   decimal.Decimal `json:"advances_total"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`

	WorkedHours   float64 `json:"worked_hours"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	LateMinutes   int     `json:"late_minutes"`
	AbsentDays    int     `json:"absent_days"`

	OutstandingAdvances []finance.Advance `json:"outstanding_advances"`
}

// Payment is a persisted salary delivery.
type Payment struct {
	ID               string
	EmployeeID       string
	PeriodYear       int
	PeriodMonth      time.Month
	GrossSalary      decimal.Decimal
	AdvancesDeducted decimal.Decimal
	NetSalary        decimal.Decimal
	PaidAt           time.Time
}

// Termination is the settlement record for a departing employee. Settlement
// is stored as an immutable JSONB snapshot of the final computation.
type Termination struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Reason     string
	Settlement Result
	CreatedAt  time.Time
}
