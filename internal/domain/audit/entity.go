package audit

import "time"

type Action string

const (
	ActionAttendanceCorrected Action = "ATTENDANCE_CORRECTED"
	ActionLeaveApproved       Action = "LEAVE_APPROVED"
	ActionLeaveRejected       Action = "LEAVE_REJECTED"
	ActionPayrollGenerated    Action = "PAYROLL_GENERATED"
	ActionPayrollCalculated   Action = "PAYROLL_CALCULATED"
	ActionPayrollApproved     Action = "PAYROLL_APPROVED"
	ActionPayrollPaid         Action = "PAYROLL_PAID"
	ActionPayrollDeleted      Action = "PAYROLL_DELETED"
	ActionLeaveQuotaUpdated   Action = "LEAVE_QUOTA_UPDATED"
	ActionCompanyUpdated      Action = "COMPANY_SETTINGS_UPDATED"
)

type Event struct {
	ID        string
	CompanyID string
	ActorID   string
	Action    Action
	Target    string
	Details   map[string]any
	CreatedAt time.Time
}
