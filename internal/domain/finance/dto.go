package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/paytrack/paytrack-backend-go/internal/pkg/validator"
)

type CreateAdvanceRequest struct {
	EmployeeID string          `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Date       string          `json:"date"` // "2006-01-02"
}

func (r CreateAdvanceRequest) Validate() error {
	return validateMoneyEntry(r.EmployeeID, r.Amount, r.Currency, r.Date)
}

func (r CreateAdvanceRequest) ToAdvance() Advance {
	date, _ := time.Parse("2006-01-02", r.Date)
	return Advance{
		EmployeeID: r.EmployeeID,
		Amount:     r.Amount,
		Currency:   r.Currency,
		Date:       date,
		Status:     AdvanceStatusPending,
	}
}

type CreateBonusRequest struct {
	EmployeeID string          `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Date       string          `json:"date"` // "2006-01-02"
	Note       *string         `json:"note,omitempty"`
}

func (r CreateBonusRequest) Validate() error {
	return validateMoneyEntry(r.EmployeeID, r.Amount, r.Currency, r.Date)
}

func (r CreateBonusRequest) ToBonus() Bonus {
	date, _ := time.Parse("2006-01-02", r.Date)
	return Bonus{
		EmployeeID: r.EmployeeID,
		Amount:     r.Amount,
		Currency:   r.Currency,
		Date:       date,
		Note:       r.Note,
	}
}

type CreateDeductionRequest struct {
	EmployeeID string          `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Date       string          `json:"date"` // "2006-01-02"
	Note       *string         `json:"note,omitempty"`
}

func (r CreateDeductionRequest) Validate() error {
	return validateMoneyEntry(r.EmployeeID, r.Amount, r.Currency, r.Date)
}

func (r CreateDeductionRequest) ToDeduction() Deduction {
	date, _ := time.Parse("2006-01-02", r.Date)
	return Deduction{
		EmployeeID: r.EmployeeID,
		Amount:     r.Amount,
		Currency:   r.Currency,
		Date:       date,
		Note:       r.Note,
	}
}

type AdvanceResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

func ToAdvanceResponse(a Advance) AdvanceResponse {
	return AdvanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Amount:     a.Amount.String(),
		Currency:   a.Currency,
		Date:       a.Date.Format("2006-01-02"),
		Status:     string(a.Status),
	}
}

type BonusResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Amount     string  `json:"amount"`
	Currency   string  `json:"currency"`
	Date       string  `json:"date"`
	Note       *string `json:"note,omitempty"`
}

func ToBonusResponse(b Bonus) BonusResponse {
	return BonusResponse{
		ID:         b.ID,
		EmployeeID: b.EmployeeID,
		Amount:     b.Amount.String(),
		Currency:   b.Currency,
		Date:       b.Date.Format("2006-01-02"),
		Note:       b.Note,
	}
}

type DeductionResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Amount     string  `json:"amount"`
	Currency   string  `json:"currency"`
	Date       string  `json:"date"`
	Note       *string `json:"note,omitempty"`
}

func ToDeductionResponse(d Deduction) DeductionResponse {
	return DeductionResponse{
		ID:         d.ID,
		EmployeeID: d.EmployeeID,
		Amount:     d.Amount.String(),
		Currency:   d.Currency,
		Date:       d.Date.Format("2006-01-02"),
		Note:       d.Note,
	}
}

func validateMoneyEntry(employeeID string, amount decimal.Decimal, currency, date string) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if validator.IsEmpty(currency) {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
