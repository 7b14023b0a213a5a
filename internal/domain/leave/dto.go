package leave

import (
	"time"

	"github.com/paytrack/paytrack-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID       string `json:"employee_id"`
	Type             string `json:"type"`
	StartDate        string `json:"start_date"` // "2006-01-02"
	EndDate          string `json:"end_date"`   // "2006-01-02"
	DeductFromSalary bool   `json:"deduct_from_salary"`
}

func (r CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	switch Type(r.Type) {
	case TypeAnnual, TypeSick, TypeUnpaid, TypeOther:
	default:
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be annual, sick, unpaid or other"})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not precede start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToRequest builds the domain entity; callers must have validated first.
func (r CreateLeaveRequestRequest) ToRequest() Request {
	start, _ := time.Parse("2006-01-02", r.StartDate)
	end, _ := time.Parse("2006-01-02", r.EndDate)
	return Request{
		EmployeeID:       r.EmployeeID,
		Type:             Type(r.Type),
		Status:           StatusPending,
		StartDate:        start,
		EndDate:          end,
		DeductFromSalary: r.DeductFromSalary,
	}
}

type RequestResponse struct {
	ID               string `json:"id"`
	EmployeeID       string `json:"employee_id"`
	Type             string `json:"type"`
	Status           string `json:"status"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	DeductFromSalary bool   `json:"deduct_from_salary"`
}

func ToRequestResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		Type:             string(r.Type),
		Status:           string(r.Status),
		StartDate:        r.StartDate.Format("2006-01-02"),
		EndDate:          r.EndDate.Format("2006-01-02"),
		DeductFromSalary: r.DeductFromSalary,
	}
}
