package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
)

type LeaveType string

const (
	LeaveTypeAnnual LeaveType = "annual"
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeOther  LeaveType = "other"
)

// DeductsBalance reports whether approval consumes the employee's leave balance.
func (t LeaveType) DeductsBalance() bool {
	return t == LeaveTypeAnnual
}

// AttendanceStatus is the day status written for an approved request of this type.
func (t LeaveType) AttendanceStatus() attendance.Status {
	if t == LeaveTypeSick {
		return attendance.StatusSick
	}
	return attendance.StatusAnnualLeave
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type LeaveRequest struct {
	ID             string
	CompanyID      string
	EmployeeID     string
	Type           LeaveType
	StartDate      time.Time // 00:00:00 tenant-local
	EndDate        time.Time // 23:59:59.999 tenant-local
	DaysTaken      int
	Reason         string
	Status         Status
	RejectedReason *string
	ReviewedBy     *string
	ReviewedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO / Join
	EmployeeName *string
}

// Overlaps uses inclusive bounds on both ends.
func (r LeaveRequest) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}

// Stats summarises the leave queue of a company.
type Stats struct {
	Pending           int
	ApprovedThisMonth int
	OnLeaveToday      int
}
