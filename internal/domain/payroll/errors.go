package payroll

import "errors"

var (
	ErrPaymentNotFound      = errors.New("payment record not found")
	ErrTerminationNotFound  = errors.New("termination record not found")
	ErrAlreadyTerminated    = errors.New("employee is already terminated")
	ErrPaymentAlreadyExists = errors.New("payment already exists for this period")
	ErrInvalidPeriod        = errors.New("invalid payroll period")
	ErrAdvanceNotSelectable = errors.New("advance is not outstanding for this employee")
)
