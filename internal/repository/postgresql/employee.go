package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/paytrack/paytrack-backend-go/internal/domain/employee"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, full_name, biometric_id, payment_type,
	hourly_rate, monthly_salary, weekly_salary, agreed_daily_hours,
	check_in_window_start, check_in_window_end, check_out_window_end,
	workdays, lateness_per_minute, overtime_multiplier, currency,
	fixed_divisor, flat_rate_category_id, is_active, created_at, updated_at
`

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	emp.ID = uuid.NewString()
	query := `
		INSERT INTO employees (
			id, full_name, biometric_id, payment_type,
			hourly_rate, monthly_salary, weekly_salary, agreed_daily_hours,
			check_in_window_start, check_in_window_end, check_out_window_end,
			workdays, lateness_per_minute, overtime_multiplier, currency,
			fixed_divisor, flat_rate_category_id, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.ID,
		emp.FullName,
		emp.BiometricID,
		emp.PaymentType,
		emp.HourlyRate,
		emp.MonthlySalary,
		emp.WeeklySalary,
		emp.AgreedDailyHours,
		emp.CheckInWindowStart,
		emp.CheckInWindowEnd,
		emp.CheckOutWindowEnd,
		weekdaysToInts(emp.Workdays),
		emp.LatenessPerMinute,
		emp.OvertimeMultiplier,
		emp.Currency,
		emp.FixedDivisor,
		emp.FlatRateCategoryID,
		emp.IsActive,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrBiometricIDExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.getOne(ctx, `WHERE e.id = $1`, id)
}

// GetByBiometricID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByBiometricID(ctx context.Context, biometricID string) (employee.Employee, error) {
	return r.getOne(ctx, `WHERE e.biometric_id = $1`, biometricID)
}

func (r *employeeRepository) getOne(ctx context.Context, where string, arg any) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT e.id, e.full_name, e.biometric_id, e.payment_type,
			   e.hourly_rate, e.monthly_salary, e.weekly_salary, e.agreed_daily_hours,
			   e.check_in_window_start, e.check_in_window_end, e.check_out_window_end,
			   e.workdays, e.lateness_per_minute, e.overtime_multiplier, e.currency,
			   e.fixed_divisor, e.flat_rate_category_id, e.is_active, e.created_at, e.updated_at,
			   c.monthly_amount
		FROM employees e
		LEFT JOIN flat_rate_categories c ON c.id = e.flat_rate_category_id
		%s
	`, where)

	emp, err := scanEmployee(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.full_name, e.biometric_id, e.payment_type,
			   e.hourly_rate, e.monthly_salary, e.weekly_salary, e.agreed_daily_hours,
			   e.check_in_window_start, e.check_in_window_end, e.check_out_window_end,
			   e.workdays, e.lateness_per_minute, e.overtime_multiplier, e.currency,
			   e.fixed_divisor, e.flat_rate_category_id, e.is_active, e.created_at, e.updated_at,
			   c.monthly_amount
		FROM employees e
		LEFT JOIN flat_rate_categories c ON c.id = e.flat_rate_category_id
		WHERE ($1 = false OR e.is_active = true)
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var result []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			full_name = $2, payment_type = $3,
			hourly_rate = $4, monthly_salary = $5, weekly_salary = $6,
			agreed_daily_hours = $7, check_in_window_start = $8,
			check_in_window_end = $9, check_out_window_end = $10,
			workdays = $11, lateness_per_minute = $12, overtime_multiplier = $13,
			currency = $14, fixed_divisor = $15, flat_rate_category_id = $16,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		emp.ID,
		emp.FullName,
		emp.PaymentType,
		emp.HourlyRate,
		emp.MonthlySalary,
		emp.WeeklySalary,
		emp.AgreedDailyHours,
		emp.CheckInWindowStart,
		emp.CheckInWindowEnd,
		emp.CheckOutWindowEnd,
		weekdaysToInts(emp.Workdays),
		emp.LatenessPerMinute,
		emp.OvertimeMultiplier,
		emp.Currency,
		emp.FixedDivisor,
		emp.FlatRateCategoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SetBiometricID implements employee.EmployeeRepository.
func (r *employeeRepository) SetBiometricID(ctx context.Context, employeeID, biometricID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET biometric_id = $2, updated_at = NOW() WHERE id = $1`,
		employeeID, biometricID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrBiometricIDExists
		}
		return fmt.Errorf("failed to set biometric id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Deactivate implements employee.EmployeeRepository.
func (r *employeeRepository) Deactivate(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET is_active = false, updated_at = NOW() WHERE id = $1`,
		employeeID,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// GetCategoryByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetCategoryByID(ctx context.Context, id string) (employee.FlatRateCategory, error) {
	q := GetQuerier(ctx, r.db)

	var cat employee.FlatRateCategory
	err := q.QueryRow(ctx, `
		SELECT id, name, monthly_amount, created_at, updated_at
		FROM flat_rate_categories
		WHERE id = $1
	`, id).Scan(&cat.ID, &cat.Name, &cat.MonthlyAmount, &cat.CreatedAt, &cat.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.FlatRateCategory{}, employee.ErrCategoryNotFound
		}
		return employee.FlatRateCategory{}, fmt.Errorf("failed to get flat-rate category: %w", err)
	}
	return cat, nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var workdays []int32
	err := row.Scan(
		&emp.ID, &emp.FullName, &emp.BiometricID, &emp.PaymentType,
		&emp.HourlyRate, &emp.MonthlySalary, &emp.WeeklySalary, &emp.AgreedDailyHours,
		&emp.CheckInWindowStart, &emp.CheckInWindowEnd, &emp.CheckOutWindowEnd,
		&workdays, &emp.LatenessPerMinute, &emp.OvertimeMultiplier, &emp.Currency,
		&emp.FixedDivisor, &emp.FlatRateCategoryID, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.FlatRateAmount,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	emp.Workdays = intsToWeekdays(workdays)
	return emp, nil
}

func weekdaysToInts(days []time.Weekday) []int32 {
	out := make([]int32, 0, len(days))
	for _, d := range days {
		out = append(out, int32(d))
	}
	return out
}

func intsToWeekdays(ints []int32) []time.Weekday {
	out := make([]time.Weekday, 0, len(ints))
	for _, i := range ints {
		out = append(out, time.Weekday(i))
	}
	return out
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
