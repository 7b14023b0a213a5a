package employee

import (
	"github.com/paytrack/paytrack-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FullName           string           `json:"full_name"`
	BiometricID        string           `json:"biometric_id"`
	PaymentType        string           `json:"payment_type"`
	HourlyRate         *decimal.Decimal `json:"hourly_rate,omitempty"`
	MonthlySalary      *decimal.Decimal `json:"monthly_salary,omitempty"`
	WeeklySalary       *decimal.Decimal `json:"weekly_salary,omitempty"`
	AgreedDailyHours   float64          `json:"agreed_daily_hours"`
	CheckInWindowStart *string          `json:"check_in_window_start,omitempty"`
	CheckInWindowEnd   *string          `json:"check_in_window_end,omitempty"`
	CheckOutWindowEnd  *string          `json:"check_out_window_end,omitempty"`
	Workdays           []string         `json:"workdays,omitempty"`
	LatenessPerMinute  *decimal.Decimal `json:"lateness_per_minute,omitempty"`
	OvertimeMultiplier *decimal.Decimal `json:"overtime_multiplier,omitempty"`
	Currency           string           `json:"currency"`
	FixedDivisor       bool             `json:"fixed_divisor"`
	FlatRateCategoryID *string          `json:"flat_rate_category_id,omitempty"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if validator.IsEmpty(r.BiometricID) {
		errs = append(errs, validator.ValidationError{Field: "biometric_id", Message: "is required"})
	}

	switch PaymentType(r.PaymentType) {
	case PaymentTypeHourly:
		if r.HourlyRate == nil {
			errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "is required for hourly employees"})
		}
	case PaymentTypeMonthly:
		if r.MonthlySalary == nil {
			errs = append(errs, validator.ValidationError{Field: "monthly_salary", Message: "is required for monthly employees"})
		}
	case PaymentTypeWeekly:
		if r.WeeklySalary == nil {
			errs = append(errs, validator.ValidationError{Field: "weekly_salary", Message: "is required for weekly employees"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "payment_type", Message: "must be hourly, monthly or weekly"})
	}

	if r.AgreedDailyHours <= 0 || r.AgreedDailyHours > 24 {
		errs = append(errs, validator.ValidationError{Field: "agreed_daily_hours", Message: "must be between 0 and 24"})
	}

	for _, field := range []struct {
		name  string
		value *string
	}{
		{"check_in_window_start", r.CheckInWindowStart},
		{"check_in_window_end", r.CheckInWindowEnd},
		{"check_out_window_end", r.CheckOutWindowEnd},
	} {
		if field.value != nil {
			if _, ok := validator.IsValidClock(*field.value); !ok {
				errs = append(errs, validator.ValidationError{Field: field.name, Message: "must be a valid HH:MM time"})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	FullName           *string          `json:"full_name,omitempty"`
	AgreedDailyHours   *float64         `json:"agreed_daily_hours,omitempty"`
	HourlyRate         *decimal.Decimal `json:"hourly_rate,omitempty"`
	MonthlySalary      *decimal.Decimal `json:"monthly_salary,omitempty"`
	WeeklySalary       *decimal.Decimal `json:"weekly_salary,omitempty"`
	CheckInWindowStart *string          `json:"check_in_window_start,omitempty"`
	CheckInWindowEnd   *string          `json:"check_in_window_end,omitempty"`
	CheckOutWindowEnd  *string          `json:"check_out_window_end,omitempty"`
	Workdays           []string         `json:"workdays,omitempty"`
	LatenessPerMinute  *decimal.Decimal `json:"lateness_per_minute,omitempty"`
	OvertimeMultiplier *decimal.Decimal `json:"overtime_multiplier,omitempty"`
	FixedDivisor       *bool            `json:"fixed_divisor,omitempty"`
	FlatRateCategoryID *string          `json:"flat_rate_category_id,omitempty"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.AgreedDailyHours != nil && (*r.AgreedDailyHours <= 0 || *r.AgreedDailyHours > 24) {
		errs = append(errs, validator.ValidationError{Field: "agreed_daily_hours", Message: "must be between 0 and 24"})
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID               string   `json:"id"`
	FullName         string   `json:"full_name"`
	BiometricID      string   `json:"biometric_id"`
	PaymentType      string   `json:"payment_type"`
	AgreedDailyHours float64  `json:"agreed_daily_hours"`
	Currency         string   `json:"currency"`
	Workdays         []string `json:"workdays"`
	IsActive         bool     `json:"is_active"`
}
