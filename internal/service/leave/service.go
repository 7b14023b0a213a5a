package leave

import (
	"context"
	"time"

	"github.com/paytrack/paytrack-backend-go/internal/domain/employee"
	"github.com/paytrack/paytrack-backend-go/internal/domain/leave"
)

type LeaveServiceImpl struct {
	repo         leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
}

func NewLeaveService(repo leave.LeaveRepository, employeeRepo employee.EmployeeRepository) *LeaveServiceImpl {
	return &LeaveServiceImpl{repo: repo, employeeRepo: employeeRepo}
}

func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.Request{}, err
	}
	req.Status = leave.StatusPending
	return s.repo.Create(ctx, req)
}

// SetStatus approves or rejects a pending request. Requests that already
// left the pending state stay as they are.
func (s *LeaveServiceImpl) SetStatus(ctx context.Context, id string, status leave.Status) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != leave.StatusPending {
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *LeaveServiceImpl) ListApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Request, error) {
	return s.repo.ListApprovedInRange(ctx, employeeID, start, end)
}
