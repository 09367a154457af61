package dashboard

import (
	"context"

	"github.com/shopspring/decimal"
)

// AttendanceAggregate is computed in a single query over the attendance ledger.
type AttendanceAggregate struct {
	Counts         map[string]int64 // keyed by attendance status
	TotalWorkHours decimal.Decimal
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetAttendanceAggregate counts records per status and sums work hours for [from, to] (YYYY-MM-DD).
	GetAttendanceAggregate(ctx context.Context, companyID string, from, to string) (*AttendanceAggregate, error)
}
