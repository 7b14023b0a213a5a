package attendance

import "github.com/paytrack/paytrack-backend-go/internal/pkg/validator"

type IngestRequest struct {
	Source  string     `json:"source"`
	Punches []RawPunch `json:"punches"`
}

func (r IngestRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.Punches) == 0 {
		errs = append(errs, validator.ValidationError{Field: "punches", Message: "must not be empty"})
	}
	switch Source(r.Source) {
	case SourceDevice, SourcePull, SourceImport, SourceManual:
	default:
		errs = append(errs, validator.ValidationError{Field: "source", Message: "must be device, pull, import or manual"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IngestResult reports what one batch did. Malformed and blocked punches are
// counted as skipped; they never abort the batch.
type IngestResult struct {
	Consolidated int `json:"consolidated"`
	Unmatched    int `json:"unmatched"`
	Skipped      int `json:"skipped"`
}

type ResolveUnmatchedRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r ResolveUnmatchedRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	Source     string  `json:"source"`
	Synced     bool    `json:"synced"`
	Paid       bool    `json:"paid"`
}

type UnmatchedResponse struct {
	ID          string   `json:"id"`
	BiometricID string   `json:"biometric_id"`
	Date        string   `json:"date"`
	Times       []string `json:"times"`
}

type BlockedResponse struct {
	BiometricID string `json:"biometric_id"`
	Reason      string `json:"reason"`
	BlockedAt   string `json:"blocked_at"`
}

type BlockIdentifierRequest struct {
	BiometricID string `json:"biometric_id"`
	Reason      string `json:"reason"`
}

func (r BlockIdentifierRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.BiometricID) {
		errs = append(errs, validator.ValidationError{Field: "biometric_id", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
