package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, r LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string, companyID string) (LeaveRequest, error)

	// HasOverlap checks pending and approved requests of the employee against [start, end].
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// Review moves a pending request to its final status; applied is false when it was no longer pending.
	Review(ctx context.Context, r LeaveRequest) (applied bool, err error)

	// DeletePending removes a pending request; applied is false when it was no longer pending.
	DeletePending(ctx context.Context, id string, companyID string) (applied bool, err error)

	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)

	// ListApprovedOn returns approved requests covering the instant.
	ListApprovedOn(ctx context.Context, companyID string, at time.Time) ([]LeaveRequest, error)

	// Stats counts pending requests and approvals that start inside [monthStart, monthEnd].
	Stats(ctx context.Context, companyID string, monthStart, monthEnd time.Time) (Stats, error)
}
