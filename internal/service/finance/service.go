package finance

import (
	"context"

	"github.com/paytrack/paytrack-backend-go/internal/domain/employee"
	"github.com/paytrack/paytrack-backend-go/internal/domain/finance"
)

type FinanceServiceImpl struct {
	advanceRepo   finance.AdvanceRepository
	bonusRepo     finance.BonusRepository
	deductionRepo finance.DeductionRepository
	employeeRepo  employee.EmployeeRepository
}

func NewFinanceService(
	advanceRepo finance.AdvanceRepository,
	bonusRepo finance.BonusRepository,
	deductionRepo finance.DeductionRepository,
	employeeRepo employee.EmployeeRepository,
) *FinanceServiceImpl {
	return &FinanceServiceImpl{
		advanceRepo:   advanceRepo,
		bonusRepo:     bonusRepo,
		deductionRepo: deductionRepo,
		employeeRepo:  employeeRepo,
	}
}

func (s *FinanceServiceImpl) CreateAdvance(ctx context.Context, advance finance.Advance) (finance.Advance, error) {
	if _, err := s.employeeRepo.GetByID(ctx, advance.EmployeeID); err != nil {
		return finance.Advance{}, err
	}
	advance.Status = finance.AdvanceStatusPending
	return s.advanceRepo.Create(ctx, advance)
}

// SetAdvanceStatus moves a pending advance to approved or rejected. Paid is
// reserved for salary delivery.
func (s *FinanceServiceImpl) SetAdvanceStatus(ctx context.Context, id string, status finance.AdvanceStatus) error {
	current, err := s.advanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != finance.AdvanceStatusPending {
		return finance.ErrAdvanceNotApproved
	}
	return s.advanceRepo.UpdateStatus(ctx, id, status)
}

func (s *FinanceServiceImpl) ListOutstandingAdvances(ctx context.Context, employeeID string) ([]finance.Advance, error) {
	return s.advanceRepo.ListOutstanding(ctx, employeeID)
}

func (s *FinanceServiceImpl) CreateBonus(ctx context.Context, bonus finance.Bonus) (finance.Bonus, error) {
	if _, err := s.employeeRepo.GetByID(ctx, bonus.EmployeeID); err != nil {
		return finance.Bonus{}, err
	}
	return s.bonusRepo.Create(ctx, bonus)
}

func (s *FinanceServiceImpl) CreateDeduction(ctx context.Context, deduction finance.Deduction) (finance.Deduction, error) {
	if _, err := s.employeeRepo.GetByID(ctx, deduction.EmployeeID); err != nil {
		return finance.Deduction{}, err
	}
	return s.deductionRepo.Create(ctx, deduction)
}
