package leave

import (
	"context"
)

type LeaveService interface {
	SubmitLeaveRequest(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	// ReviewLeaveRequest approves atomically with balance and attendance writes, or rejects with a reason.
	ReviewLeaveRequest(ctx context.Context, req ReviewLeaveRequest) (LeaveRequestResponse, error)
	CancelLeaveRequest(ctx context.Context, requestID string, employeeID string, companyID string) error
	GetLeaveRequest(ctx context.Context, requestID string, companyID string) (LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	ActiveLeavesToday(ctx context.Context, companyID string) ([]LeaveRequestResponse, error)
	Stats(ctx context.Context, companyID string) (StatsResponse, error)
}
