package dashboard

import "github.com/shopspring/decimal"

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	Month      string                    `json:"month"`
	Attendance AttendanceSummaryResponse `json:"attendance"`
	Payroll    PayrollSummaryResponse    `json:"payroll"`
	Leave      LeaveSummaryResponse      `json:"leave"`
}

// AttendanceSummaryResponse holds per-status counts and total work hours for a month
type AttendanceSummaryResponse struct {
	Month          string           `json:"month"`
	OnTime         int64            `json:"on_time"`
	Late           int64            `json:"late"`
	Absent         int64            `json:"absent"`
	AnnualLeave    int64            `json:"annual_leave"`
	Sick           int64            `json:"sick"`
	Manual         int64            `json:"manual"`
	TotalWorkHours decimal.Decimal  `json:"total_work_hours"`
	Counts         map[string]int64 `json:"counts"`
}

type PayrollStatusSummary struct {
	Count     int             `json:"count"`
	NetSalary decimal.Decimal `json:"net_salary"`
}

// PayrollSummaryResponse holds record counts and net salary sums per status for a month
type PayrollSummaryResponse struct {
	Month    string                          `json:"month"`
	ByStatus map[string]PayrollStatusSummary `json:"by_status"`
	Total    decimal.Decimal                 `json:"total"`
}

type LeaveSummaryResponse struct {
	Pending           int `json:"pending"`
	ApprovedThisMonth int `json:"approved_this_month"`
	OnLeaveToday      int `json:"on_leave_today"`
}
