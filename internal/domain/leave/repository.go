package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	// ListApprovedInRange returns approved requests overlapping [start, end].
	ListApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Request, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}
