package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// RecordClockEvent validates a clock-in/out against subscription, geofence, calendar and day state.
	RecordClockEvent(ctx context.Context, req ClockEventRequest) (AttendanceResponse, error)

	// CorrectAttendance is the manual admin edit; refused once payroll has locked the day.
	CorrectAttendance(ctx context.Context, req CorrectAttendanceRequest) (AttendanceResponse, error)

	GetAttendance(ctx context.Context, id string, companyID string) (AttendanceResponse, error)

	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
