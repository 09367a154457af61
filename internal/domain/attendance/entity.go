package attendance

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOnTime      Status = "on_time"
	StatusLate        Status = "late"
	StatusAbsent      Status = "absent"
	StatusAnnualLeave Status = "annual_leave"
	StatusSick        Status = "sick"
	StatusManual      Status = "manual"
)

// AllStatuses lists the closed status set in display order.
var AllStatuses = []Status{StatusOnTime, StatusLate, StatusAbsent, StatusAnnualLeave, StatusSick, StatusManual}

// CompensableStatuses are counted as paid days by payroll calculation.
var CompensableStatuses = []Status{StatusOnTime, StatusLate, StatusAnnualLeave, StatusSick}

// IsLeave reports whether the status was written by leave approval.
func (s Status) IsLeave() bool {
	return s == StatusAnnualLeave || s == StatusSick
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type ClockType string

const (
	ClockIn  ClockType = "in"
	ClockOut ClockType = "out"
)

// Attendance is the single per-employee, per-calendar-day record.
type Attendance struct {
	ID                  string
	CompanyID           string
	EmployeeID          string
	Date                time.Time // tenant-local calendar date
	ClockIn             *time.Time
	ClockOut            *time.Time
	Status              Status
	IsLate              bool
	LateDurationMinutes int
	WorkHours           *decimal.Decimal
	ClockInLocation     *string
	ClockOutLocation    *string
	DeviceInfo          *string
	LeaveID             *string
	IsPayrollProcessed  bool
	PayrollID           *string
	Notes               *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// DTO / Join
	EmployeeName *string
}

// ComputeLateness compares an event with the scheduled start. Late only when strictly after;
// minutes round down but a late event always counts at least one minute.
func ComputeLateness(event, scheduled time.Time) (bool, int) {
	if !event.After(scheduled) {
		return false, 0
	}
	return true, max(int(math.Floor(event.Sub(scheduled).Minutes())), 1)
}

// ComputeWorkHours returns out-in in hours rounded to two decimals.
func ComputeWorkHours(in, out time.Time) decimal.Decimal {
	hours := decimal.NewFromInt(int64(out.Sub(in))).Div(decimal.NewFromInt(int64(time.Hour)))
	return hours.Round(2)
}
