package employee

import "context"

// EmployeeRepository defines data access methods for employee profiles.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByBiometricID(ctx context.Context, biometricID string) (Employee, error)
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
	Update(ctx context.Context, emp Employee) error

	// SetBiometricID reassigns the external identifier, used when an
	// unmatched punch bucket is resolved to an employee.
	SetBiometricID(ctx context.Context, employeeID, biometricID string) error

	// Deactivate marks the employee inactive (termination path).
	Deactivate(ctx context.Context, employeeID string) error

	GetCategoryByID(ctx context.Context, id string) (FlatRateCategory, error)
}
