package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrBiometricIDExists   = errors.New("biometric id already assigned to another employee")
	ErrEmployeeInactive    = errors.New("employee is inactive")
	ErrCategoryNotFound    = errors.New("flat-rate category not found")
	ErrMissingSalaryFields = errors.New("payment type is missing its salary fields")
)
