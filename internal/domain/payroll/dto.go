package payroll

import (
	"github.com/paytrack/paytrack-backend-go/internal/pkg/validator"
)

type DeliverSalaryRequest struct {
	Year       int      `json:"year"`
	Month      int      `json:"month"`
	AdvanceIDs []string `json:"advance_ids,omitempty"`
}

func (r DeliverSalaryRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Year < 2000 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "is out of range"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	for _, id := range r.AdvanceIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "advance_ids", Message: "must contain valid ids"})
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TerminateRequest struct {
	Date   string `json:"date"` // "2006-01-02"
	Reason string `json:"reason"`
}

func (r TerminateRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaymentResponse struct {
	ID               string `json:"id"`
	EmployeeID       string `json:"employee_id"`
	PeriodYear       int    `json:"period_year"`
	PeriodMonth      int    `json:"period_month"`
	GrossSalary      string `json:"gross_salary"`
	AdvancesDeducted string `json:"advances_deducted"`
	NetSalary        string `json:"net_salary"`
	PaidAt           string `json:"paid_at"`
}

type TerminationResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
	Settlement Result `json:"settlement"`
}
