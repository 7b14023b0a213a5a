package response

import (
	"errors"
	"net/http"

	"github.com/paytrack/paytrack-backend-go/internal/domain/attendance"
	"github.com/paytrack/paytrack-backend-go/internal/domain/employee"
	"github.com/paytrack/paytrack-backend-go/internal/domain/finance"
	"github.com/paytrack/paytrack-backend-go/internal/domain/leave"
	"github.com/paytrack/paytrack-backend-go/internal/domain/payroll"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrBiometricIDExists):
		Conflict(w, "Biometric ID already registered")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Conflict(w, "Employee is no longer active")
	case errors.Is(err, employee.ErrCategoryNotFound):
		NotFound(w, "Flat rate category not found")
	case errors.Is(err, employee.ErrMissingSalaryFields):
		BadRequest(w, "Salary fields do not match the payment type", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrBucketNotFound):
		NotFound(w, "Unmatched punch bucket not found")
	case errors.Is(err, attendance.ErrBucketAlreadyResolved):
		Conflict(w, "Unmatched punch bucket already resolved")
	case errors.Is(err, attendance.ErrInvalidPunch):
		BadRequest(w, "Invalid punch data", nil)
	case errors.Is(err, attendance.ErrIdentifierBlocked):
		Conflict(w, "Identifier is blocked")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Finance domain errors
	case errors.Is(err, finance.ErrAdvanceNotFound):
		NotFound(w, "Salary advance not found")
	case errors.Is(err, finance.ErrAdvanceNotApproved):
		Conflict(w, "Salary advance is not approved")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPaymentNotFound):
		NotFound(w, "Salary payment not found")
	case errors.Is(err, payroll.ErrTerminationNotFound):
		NotFound(w, "Termination record not found")
	case errors.Is(err, payroll.ErrAlreadyTerminated):
		Conflict(w, "Employee is already terminated")
	case errors.Is(err, payroll.ErrPaymentAlreadyExists):
		Conflict(w, "Salary for this period is already delivered")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Period end must not precede period start", nil)
	case errors.Is(err, payroll.ErrAdvanceNotSelectable):
		Conflict(w, "Selected advance is not outstanding for this employee")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
