package attendance

import (
	"context"
)

// AttendanceRepository defines data access methods for attendance records.
// Dates are tenant-local calendar dates formatted as YYYY-MM-DD.
type AttendanceRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when the employee has no record for the day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*Attendance, error)

	// UpsertClockIn inserts the day row, or fills clock-in on an existing row that has none,
	// is unlocked and is not leave-derived. applied is false when the conflict guard rejected it.
	UpsertClockIn(ctx context.Context, a Attendance) (result Attendance, applied bool, err error)

	// UpdateClockOut sets clock-out fields while clock_out is null and the row is unlocked.
	UpdateClockOut(ctx context.Context, a Attendance) (result Attendance, applied bool, err error)

	// UpsertLeaveDay creates or overwrites the day with a leave status; applied is false when the row is locked.
	UpsertLeaveDay(ctx context.Context, a Attendance) (applied bool, err error)

	// UpdateCorrection rewrites status and clock fields of an unlocked row.
	UpdateCorrection(ctx context.Context, a Attendance) (applied bool, err error)

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListInRange returns an employee's records in [from, to] limited to statuses when non-empty.
	ListInRange(ctx context.Context, employeeID string, from, to string, statuses []Status) ([]Attendance, error)

	// LockRange marks every record of the employee in [from, to] as consumed by payrollID.
	LockRange(ctx context.Context, employeeID string, from, to string, payrollID string) (int64, error)

	// UnlockByPayroll clears the lock on every record that references payrollID.
	UnlockByPayroll(ctx context.Context, payrollID string) (int64, error)

	ListByPayroll(ctx context.Context, payrollID string) ([]Attendance, error)
}
