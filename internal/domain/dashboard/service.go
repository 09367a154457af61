package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns attendance, payroll and leave summaries for a month (YYYY-MM, default current).
	GetDashboard(ctx context.Context, companyID string, month string) (*DashboardResponse, error)

	GetAttendanceSummary(ctx context.Context, companyID string, month string) (*AttendanceSummaryResponse, error)

	GetPayrollSummary(ctx context.Context, companyID string, month string) (*PayrollSummaryResponse, error)
}
