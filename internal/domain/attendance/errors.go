package attendance

import "errors"

// Attendance domain errors
var (
	// Clock policy errors
	ErrOutOfRange             = errors.New("you are outside the allowed office radius")
	ErrNonWorkingDay          = errors.New("clock-in is not allowed on a non-working day")
	ErrAlreadyClockedIn       = errors.New("you have already clocked in today")
	ErrNoClockInFound         = errors.New("no clock-in found for today")
	ErrAlreadyClockedOut      = errors.New("you have already clocked out today")
	ErrConflictingLeaveStatus = errors.New("this day is already recorded as leave")

	// State errors
	ErrPayrollLocked = errors.New("attendance is locked by a processed payroll")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidCorrection  = errors.New("clock-out must be after clock-in")
)
