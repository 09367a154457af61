package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `a.id, a.company_id, a.employee_id, a.date, a.clock_in, a.clock_out,
	a.status, a.is_late, a.late_duration_minutes, a.work_hours,
	a.clock_in_location, a.clock_out_location, a.device_info, a.leave_id,
	a.is_payroll_processed, a.payroll_id, a.notes, a.created_at, a.updated_at`

// leaveStatuses must match attendance.Status.IsLeave.
const leaveStatuses = `('annual_leave', 'sick')`

// scanAttendance reads attendanceColumns, followed by e.full_name when withName is set.
func scanAttendance(row pgx.Row, withName bool) (attendance.Attendance, error) {
	var att attendance.Attendance
	dest := []any{
		&att.ID, &att.CompanyID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut,
		&att.Status, &att.IsLate, &att.LateDurationMinutes, &att.WorkHours,
		&att.ClockInLocation, &att.ClockOutLocation, &att.DeviceInfo, &att.LeaveID,
		&att.IsPayrollProcessed, &att.PayrollID, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
	}
	if withName {
		dest = append(dest, &att.EmployeeName)
	}
	err := row.Scan(dest...)
	return att, err
}

func (a *attendanceRepository) collect(ctx context.Context, withName bool, query string, args ...any) ([]attendance.Attendance, error) {
	rows, err := GetQuerier(ctx, a.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows, withName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	return attendances, rows.Err()
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `, e.full_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.company_id = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id, companyID), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.employee_id = $1 AND a.date = $2::date`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &att, nil
}

// UpsertClockIn implements attendance.AttendanceRepository.
// The conflict guard makes concurrent clock-ins for one day resolve to a single winner.
func (a *attendanceRepository) UpsertClockIn(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)
	day := att.Date.Format("2006-01-02")

	query := `
		INSERT INTO attendances AS a (
			id, company_id, employee_id, date, clock_in, status, is_late, late_duration_minutes,
			clock_in_location, device_info
		) VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10)
		ON CONFLICT ON CONSTRAINT uk_attendances_employee_date DO UPDATE
		SET clock_in = EXCLUDED.clock_in,
			status = EXCLUDED.status,
			is_late = EXCLUDED.is_late,
			late_duration_minutes = EXCLUDED.late_duration_minutes,
			clock_in_location = EXCLUDED.clock_in_location,
			device_info = EXCLUDED.device_info,
			updated_at = NOW()
		WHERE a.clock_in IS NULL
		  AND NOT a.is_payroll_processed
		  AND a.status NOT IN ` + leaveStatuses + `
		RETURNING ` + attendanceColumns

	result, err := scanAttendance(q.QueryRow(ctx, query,
		att.ID, att.CompanyID, att.EmployeeID, day, att.ClockIn, att.Status, att.IsLate,
		att.LateDurationMinutes, att.ClockInLocation, att.DeviceInfo,
	), false)
	if err == nil {
		return result, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, false, fmt.Errorf("failed to upsert clock-in: %w", err)
	}

	existing, err := a.GetByEmployeeAndDate(ctx, att.EmployeeID, day)
	if err != nil {
		return attendance.Attendance{}, false, err
	}
	if existing == nil {
		return attendance.Attendance{}, false, fmt.Errorf("clock-in conflict on %s without a visible row", day)
	}
	return *existing, false, nil
}

// UpdateClockOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateClockOut(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)
	day := att.Date.Format("2006-01-02")

	query := `
		UPDATE attendances a
		SET clock_out = $3, work_hours = $4, clock_out_location = $5, updated_at = NOW()
		WHERE a.employee_id = $1 AND a.date = $2::date
		  AND a.clock_in IS NOT NULL
		  AND a.clock_out IS NULL
		  AND NOT a.is_payroll_processed
		  AND a.status NOT IN ` + leaveStatuses + `
		RETURNING ` + attendanceColumns

	result, err := scanAttendance(q.QueryRow(ctx, query, att.EmployeeID, day, att.ClockOut, att.WorkHours, att.ClockOutLocation), false)
	if err == nil {
		return result, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, false, fmt.Errorf("failed to update clock-out: %w", err)
	}

	existing, err := a.GetByEmployeeAndDate(ctx, att.EmployeeID, day)
	if err != nil {
		return attendance.Attendance{}, false, err
	}
	if existing == nil {
		return attendance.Attendance{}, false, nil
	}
	return *existing, false, nil
}

// UpsertLeaveDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertLeaveDay(ctx context.Context, att attendance.Attendance) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances AS a (id, company_id, employee_id, date, status, leave_id)
		VALUES ($1, $2, $3, $4::date, $5, $6)
		ON CONFLICT ON CONSTRAINT uk_attendances_employee_date DO UPDATE
		SET status = EXCLUDED.status, leave_id = EXCLUDED.leave_id,
			is_late = FALSE, late_duration_minutes = 0, updated_at = NOW()
		WHERE NOT a.is_payroll_processed
	`

	tag, err := q.Exec(ctx, query, att.ID, att.CompanyID, att.EmployeeID, att.Date.Format("2006-01-02"), att.Status, att.LeaveID)
	if err != nil {
		return false, fmt.Errorf("failed to write leave attendance: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateCorrection implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateCorrection(ctx context.Context, att attendance.Attendance) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET status = $3, clock_in = $4, clock_out = $5, work_hours = $6,
			is_late = $7, late_duration_minutes = $8, notes = $9, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND NOT is_payroll_processed
	`

	tag, err := q.Exec(ctx, query,
		att.ID, att.CompanyID, att.Status, att.ClockIn, att.ClockOut, att.WorkHours,
		att.IsLate, att.LateDurationMinutes, att.Notes,
	)
	if err != nil {
		return false, fmt.Errorf("failed to correct attendance: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.company_id = $1"
	args := []interface{}{filter.CompanyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d::date", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM attendances a WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC, a.employee_id
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (max(filter.Page, 1) - 1) * limit
	args = append(args, limit, offset)

	attendances, err := a.collect(ctx, true, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return attendances, total, nil
}

// ListInRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListInRange(ctx context.Context, employeeID string, from, to string, statuses []attendance.Status) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date BETWEEN $2::date AND $3::date
	`
	args := []any{employeeID, from, to}
	if len(statuses) > 0 {
		names := make([]string, len(statuses))
		for i, s := range statuses {
			names[i] = string(s)
		}
		query += " AND a.status = ANY($4)"
		args = append(args, names)
	}
	query += " ORDER BY a.date"

	return a.collect(ctx, false, query, args...)
}

// LockRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) LockRange(ctx context.Context, employeeID string, from, to string, payrollID string) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET is_payroll_processed = TRUE, payroll_id = $4, updated_at = NOW()
		WHERE employee_id = $1 AND date BETWEEN $2::date AND $3::date
	`

	tag, err := q.Exec(ctx, query, employeeID, from, to, payrollID)
	if err != nil {
		return 0, fmt.Errorf("failed to lock attendance range: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UnlockByPayroll implements attendance.AttendanceRepository.
func (a *attendanceRepository) UnlockByPayroll(ctx context.Context, payrollID string) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET is_payroll_processed = FALSE, payroll_id = NULL, updated_at = NOW()
		WHERE payroll_id = $1
	`

	tag, err := q.Exec(ctx, query, payrollID)
	if err != nil {
		return 0, fmt.Errorf("failed to unlock attendance for payroll %s: %w", payrollID, err)
	}
	return tag.RowsAffected(), nil
}

// ListByPayroll implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByPayroll(ctx context.Context, payrollID string) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `, e.full_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.payroll_id = $1
		ORDER BY a.date
	`
	return a.collect(ctx, true, query, payrollID)
}
