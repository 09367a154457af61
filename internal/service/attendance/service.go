package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/geo"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	settings company.SettingsProvider
	calendar holiday.Calendar
	gate     subscription.Gate
	audit    audit.Recorder
	now      func() time.Time
}

type Option func(*AttendanceServiceImpl)

// WithClock replaces the server clock that stamps clock events.
func WithClock(now func() time.Time) Option {
	return func(a *AttendanceServiceImpl) {
		a.now = now
	}
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	settings company.SettingsProvider,
	calendar holiday.Calendar,
	gate subscription.Gate,
	recorder audit.Recorder,
	opts ...Option,
) attendance.AttendanceService {
	svc := &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		settings:             settings,
		calendar:             calendar,
		gate:                 gate,
		audit:                recorder,
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// RecordClockEvent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordClockEvent(ctx context.Context, req attendance.ClockEventRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.gate.CheckActive(ctx, req.CompanyID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	settings, err := a.settings.Settings(ctx, req.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load company settings: %w", err)
	}
	loc := settings.Location

	eventTime := a.now()
	if req.Timestamp != nil {
		eventTime, _ = validator.IsValidDateTime(*req.Timestamp)
	}

	if settings.Fence != nil {
		point := geo.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
		distance, ok := settings.Fence.Check(point)
		if !ok {
			return attendance.AttendanceResponse{}, fmt.Errorf("%w: %.0f m from the office, allowed radius is %.0f m",
				attendance.ErrOutOfRange, distance, settings.Fence.RadiusMeters)
		}
	}

	day := timeutil.StartOfDay(eventTime, loc)
	dayKey := timeutil.FormatDate(day, loc)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, dayKey)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance for %s: %w", dayKey, err)
	}
	if existing != nil {
		if existing.IsPayrollProcessed {
			return attendance.AttendanceResponse{}, attendance.ErrPayrollLocked
		}
		if existing.Status.IsLeave() {
			return attendance.AttendanceResponse{}, attendance.ErrConflictingLeaveStatus
		}
	}

	var result attendance.Attendance
	switch req.Type {
	case attendance.ClockIn:
		result, err = a.clockIn(ctx, req, settings, existing, eventTime, day)
	case attendance.ClockOut:
		result, err = a.clockOut(ctx, req, existing, eventTime, day)
	}
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Clock event recorded",
		"type", req.Type,
		"employee_id", req.EmployeeID,
		"company_id", req.CompanyID,
		"date", dayKey,
		"status", result.Status,
	)
	return attendance.NewAttendanceResponse(result, loc), nil
}

func (a *AttendanceServiceImpl) clockIn(ctx context.Context, req attendance.ClockEventRequest, settings company.Settings, existing *attendance.Attendance, eventTime, day time.Time) (attendance.Attendance, error) {
	loc := settings.Location

	if existing != nil && existing.ClockIn != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
	}
	if timeutil.IsWeekend(eventTime, loc) {
		return attendance.Attendance{}, fmt.Errorf("%w: %s", attendance.ErrNonWorkingDay, day.Weekday())
	}
	label, isHoliday, err := a.calendar.IsHoliday(ctx, req.CompanyID, eventTime, loc)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if isHoliday {
		return attendance.Attendance{}, fmt.Errorf("%w: %s", attendance.ErrNonWorkingDay, label)
	}

	scheduled := timeutil.At(eventTime, loc, settings.WorkStartHour, settings.WorkStartMinute)
	isLate, lateMinutes := attendance.ComputeLateness(eventTime, scheduled)
	status := attendance.StatusOnTime
	if isLate {
		status = attendance.StatusLate
	}

	clockInAt := eventTime.UTC()
	location := req.Location()
	record := attendance.Attendance{
		ID:                  uuid.NewString(),
		CompanyID:           req.CompanyID,
		EmployeeID:          req.EmployeeID,
		Date:                day,
		ClockIn:             &clockInAt,
		Status:              status,
		IsLate:              isLate,
		LateDurationMinutes: lateMinutes,
		ClockInLocation:     &location,
	}
	if req.DeviceInfo != "" {
		device := req.DeviceInfo
		record.DeviceInfo = &device
	}

	result, applied, err := a.AttendanceRepository.UpsertClockIn(ctx, record)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if !applied {
		// Lost a race: report why the stored row refused the write.
		switch {
		case result.IsPayrollProcessed:
			return attendance.Attendance{}, attendance.ErrPayrollLocked
		case result.Status.IsLeave():
			return attendance.Attendance{}, attendance.ErrConflictingLeaveStatus
		default:
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
	}
	return result, nil
}

func (a *AttendanceServiceImpl) clockOut(ctx context.Context, req attendance.ClockEventRequest, existing *attendance.Attendance, eventTime, day time.Time) (attendance.Attendance, error) {
	if existing == nil || existing.ClockIn == nil {
		return attendance.Attendance{}, attendance.ErrNoClockInFound
	}
	if existing.ClockOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedOut
	}
	if eventTime.Before(*existing.ClockIn) {
		return attendance.Attendance{}, validator.ValidationErrors{{Field: "timestamp", Message: "clock-out must not be before clock-in"}}
	}

	clockOutAt := eventTime.UTC()
	workHours := attendance.ComputeWorkHours(*existing.ClockIn, clockOutAt)
	location := req.Location()

	result, applied, err := a.AttendanceRepository.UpdateClockOut(ctx, attendance.Attendance{
		EmployeeID:       req.EmployeeID,
		Date:             day,
		ClockOut:         &clockOutAt,
		WorkHours:        &workHours,
		ClockOutLocation: &location,
	})
	if err != nil {
		return attendance.Attendance{}, err
	}
	if !applied {
		switch {
		case result.ID == "" || result.ClockIn == nil:
			return attendance.Attendance{}, attendance.ErrNoClockInFound
		case result.IsPayrollProcessed:
			return attendance.Attendance{}, attendance.ErrPayrollLocked
		case result.Status.IsLeave():
			return attendance.Attendance{}, attendance.ErrConflictingLeaveStatus
		default:
			return attendance.Attendance{}, attendance.ErrAlreadyClockedOut
		}
	}
	return result, nil
}

// CorrectAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CorrectAttendance(ctx context.Context, req attendance.CorrectAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	current, err := a.AttendanceRepository.GetByID(ctx, req.ID, req.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if current.IsPayrollProcessed {
		return attendance.AttendanceResponse{}, attendance.ErrPayrollLocked
	}

	settings, err := a.settings.Settings(ctx, req.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load company settings: %w", err)
	}

	updated := current
	updated.Status = req.Status
	if req.ClockIn != nil {
		t, _ := validator.IsValidDateTime(*req.ClockIn)
		t = t.UTC()
		updated.ClockIn = &t
	}
	if req.ClockOut != nil {
		t, _ := validator.IsValidDateTime(*req.ClockOut)
		t = t.UTC()
		updated.ClockOut = &t
	}

	updated.WorkHours = nil
	if updated.ClockIn != nil && updated.ClockOut != nil {
		if updated.ClockOut.Before(*updated.ClockIn) {
			return attendance.AttendanceResponse{}, attendance.ErrInvalidCorrection
		}
		hours := attendance.ComputeWorkHours(*updated.ClockIn, *updated.ClockOut)
		updated.WorkHours = &hours
	}

	updated.IsLate, updated.LateDurationMinutes = false, 0
	if updated.Status == attendance.StatusLate && updated.ClockIn != nil {
		scheduled := timeutil.At(*updated.ClockIn, settings.Location, settings.WorkStartHour, settings.WorkStartMinute)
		_, minutes := attendance.ComputeLateness(*updated.ClockIn, scheduled)
		updated.IsLate, updated.LateDurationMinutes = true, minutes
	}
	reason := req.Reason
	updated.Notes = &reason

	applied, err := a.AttendanceRepository.UpdateCorrection(ctx, updated)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to correct attendance: %w", err)
	}
	if !applied {
		return attendance.AttendanceResponse{}, attendance.ErrPayrollLocked
	}

	a.audit.Record(ctx, audit.Event{
		CompanyID: req.CompanyID,
		ActorID:   req.ActorID,
		Action:    audit.ActionAttendanceCorrected,
		Target:    "attendance:" + current.ID,
		Details: map[string]any{
			"employee_id": current.EmployeeID,
			"date":        current.Date.Format(timeutil.DateLayout),
			"old_status":  current.Status,
			"new_status":  updated.Status,
			"reason":      req.Reason,
		},
	})

	result, err := a.AttendanceRepository.GetByID(ctx, req.ID, req.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(result, settings.Location), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string, companyID string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	settings, err := a.settings.Settings(ctx, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load company settings: %w", err)
	}
	return attendance.NewAttendanceResponse(record, settings.Location), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	settings, err := a.settings.Settings(ctx, filter.CompanyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to load company settings: %w", err)
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	resp := attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Attendances: make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, r := range records {
		resp.Attendances = append(resp.Attendances, attendance.NewAttendanceResponse(r, settings.Location))
	}
	return resp, nil
}

