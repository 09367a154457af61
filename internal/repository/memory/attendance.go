package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
)

type attendanceRepo struct{ s *Store }

func (r attendanceRepo) withName(a attendance.Attendance) attendance.Attendance {
	if e, ok := r.s.data.employees[a.EmployeeID]; ok {
		name := e.FullName
		a.EmployeeName = &name
	}
	return a
}

func (r attendanceRepo) findDay(employeeID, date string) (attendance.Attendance, bool) {
	for _, a := range r.s.data.attendances {
		if a.EmployeeID == employeeID && a.Date.Format("2006-01-02") == date {
			return a, true
		}
	}
	return attendance.Attendance{}, false
}

func (r attendanceRepo) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	defer r.s.lock(ctx)()
	a, ok := r.s.data.attendances[id]
	if !ok || a.CompanyID != companyID {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.withName(a), nil
}

func (r attendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*attendance.Attendance, error) {
	defer r.s.lock(ctx)()
	a, ok := r.findDay(employeeID, date)
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r attendanceRepo) UpsertClockIn(ctx context.Context, a attendance.Attendance) (attendance.Attendance, bool, error) {
	defer r.s.lock(ctx)()
	if err := r.s.check("attendance.UpsertClockIn"); err != nil {
		return attendance.Attendance{}, false, err
	}

	now := time.Now()
	existing, ok := r.findDay(a.EmployeeID, a.Date.Format("2006-01-02"))
	if !ok {
		a.CreatedAt, a.UpdatedAt = now, now
		r.s.data.attendances[a.ID] = a
		return a, true, nil
	}
	if existing.ClockIn != nil || existing.IsPayrollProcessed || existing.Status.IsLeave() {
		return existing, false, nil
	}
	existing.ClockIn = a.ClockIn
	existing.Status = a.Status
	existing.IsLate = a.IsLate
	existing.LateDurationMinutes = a.LateDurationMinutes
	existing.ClockInLocation = a.ClockInLocation
	existing.DeviceInfo = a.DeviceInfo
	existing.UpdatedAt = now
	r.s.data.attendances[existing.ID] = existing
	return existing, true, nil
}

func (r attendanceRepo) UpdateClockOut(ctx context.Context, a attendance.Attendance) (attendance.Attendance, bool, error) {
	defer r.s.lock(ctx)()
	if err := r.s.check("attendance.UpdateClockOut"); err != nil {
		return attendance.Attendance{}, false, err
	}

	existing, ok := r.findDay(a.EmployeeID, a.Date.Format("2006-01-02"))
	if !ok {
		return attendance.Attendance{}, false, nil
	}
	if existing.ClockIn == nil || existing.ClockOut != nil || existing.IsPayrollProcessed || existing.Status.IsLeave() {
		return existing, false, nil
	}
	existing.ClockOut = a.ClockOut
	existing.WorkHours = a.WorkHours
	existing.ClockOutLocation = a.ClockOutLocation
	existing.UpdatedAt = time.Now()
	r.s.data.attendances[existing.ID] = existing
	return existing, true, nil
}

func (r attendanceRepo) UpsertLeaveDay(ctx context.Context, a attendance.Attendance) (bool, error) {
	defer r.s.lock(ctx)()
	if err := r.s.check("attendance.UpsertLeaveDay"); err != nil {
		return false, err
	}

	now := time.Now()
	existing, ok := r.findDay(a.EmployeeID, a.Date.Format("2006-01-02"))
	if !ok {
		a.CreatedAt, a.UpdatedAt = now, now
		r.s.data.attendances[a.ID] = a
		return true, nil
	}
	if existing.IsPayrollProcessed {
		return false, nil
	}
	existing.Status = a.Status
	existing.LeaveID = a.LeaveID
	existing.IsLate, existing.LateDurationMinutes = false, 0
	existing.UpdatedAt = now
	r.s.data.attendances[existing.ID] = existing
	return true, nil
}

func (r attendanceRepo) UpdateCorrection(ctx context.Context, a attendance.Attendance) (bool, error) {
	defer r.s.lock(ctx)()
	if err := r.s.check("attendance.UpdateCorrection"); err != nil {
		return false, err
	}

	existing, ok := r.s.data.attendances[a.ID]
	if !ok || existing.CompanyID != a.CompanyID {
		return false, attendance.ErrAttendanceNotFound
	}
	if existing.IsPayrollProcessed {
		return false, nil
	}
	existing.Status = a.Status
	existing.ClockIn = a.ClockIn
	existing.ClockOut = a.ClockOut
	existing.WorkHours = a.WorkHours
	existing.IsLate = a.IsLate
	existing.LateDurationMinutes = a.LateDurationMinutes
	existing.Notes = a.Notes
	existing.UpdatedAt = time.Now()
	r.s.data.attendances[existing.ID] = existing
	return true, nil
}

func (r attendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	defer r.s.lock(ctx)()

	var out []attendance.Attendance
	for _, a := range r.s.data.attendances {
		if a.CompanyID != filter.CompanyID {
			continue
		}
		day := a.Date.Format("2006-01-02")
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.StartDate != nil && day < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && day > *filter.EndDate {
			continue
		}
		if filter.Status != nil && string(a.Status) != *filter.Status {
			continue
		}
		out = append(out, r.withName(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return page(out, filter.Page, filter.Limit), int64(len(out)), nil
}

func (r attendanceRepo) ListInRange(ctx context.Context, employeeID string, from, to string, statuses []attendance.Status) ([]attendance.Attendance, error) {
	defer r.s.lock(ctx)()

	var out []attendance.Attendance
	for _, a := range r.s.data.attendances {
		day := a.Date.Format("2006-01-02")
		if a.EmployeeID != employeeID || day < from || day > to {
			continue
		}
		if len(statuses) > 0 && !containsStatus(statuses, a.Status) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r attendanceRepo) LockRange(ctx context.Context, employeeID string, from, to string, payrollID string) (int64, error) {
	defer r.s.lock(ctx)()
	if err := r.s.check("attendance.LockRange"); err != nil {
		return 0, err
	}

	var n int64
	for id, a := range r.s.data.attendances {
		day := a.Date.Format("2006-01-02")
		if a.EmployeeID != employeeID || day < from || day > to {
			continue
		}
		pid := payrollID
		a.IsPayrollProcessed = true
		a.PayrollID = &pid
		r.s.data.attendances[id] = a
		n++
	}
	return n, nil
}

func (r attendanceRepo) UnlockByPayroll(ctx context.Context, payrollID string) (int64, error) {
	defer r.s.lock(ctx)()
	if err := r.s.check("attendance.UnlockByPayroll"); err != nil {
		return 0, err
	}

	var n int64
	for id, a := range r.s.data.attendances {
		if a.PayrollID == nil || *a.PayrollID != payrollID {
			continue
		}
		a.IsPayrollProcessed = false
		a.PayrollID = nil
		r.s.data.attendances[id] = a
		n++
	}
	return n, nil
}

func (r attendanceRepo) ListByPayroll(ctx context.Context, payrollID string) ([]attendance.Attendance, error) {
	defer r.s.lock(ctx)()

	var out []attendance.Attendance
	for _, a := range r.s.data.attendances {
		if a.PayrollID != nil && *a.PayrollID == payrollID {
			out = append(out, r.withName(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func containsStatus(statuses []attendance.Status, s attendance.Status) bool {
	for _, v := range statuses {
		if v == s {
			return true
		}
	}
	return false
}
