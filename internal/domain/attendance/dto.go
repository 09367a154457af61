package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// CLOCK EVENT
// ========================================

type ClockEventRequest struct {
	EmployeeID string    `json:"-"` // From JWT
	CompanyID  string    `json:"-"` // From JWT
	Type       ClockType `json:"type"`
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	DeviceInfo string    `json:"device_info"`
	Timestamp  *string   `json:"-"` // RFC3339, in-process callers only; HTTP events use server time
}

func (r *ClockEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.Type != ClockIn && r.Type != ClockOut {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of: in, out"})
	}
	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude is required"})
	} else if !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude is required"})
	} else if !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if len(r.DeviceInfo) > 255 {
		errs = append(errs, validator.ValidationError{Field: "device_info", Message: "device_info must not exceed 255 characters"})
	}
	if r.Timestamp != nil {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp must be RFC3339"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Location renders the submitted coordinates as "lat,lon".
func (r *ClockEventRequest) Location() string {
	return fmt.Sprintf("%.6f,%.6f", *r.Latitude, *r.Longitude)
}

// ========================================
// MANUAL CORRECTION
// ========================================

type CorrectAttendanceRequest struct {
	ID        string  `json:"-"`
	CompanyID string  `json:"-"`
	ActorID   string  `json:"-"`
	Status    Status  `json:"status"`
	ClockIn   *string `json:"clock_in,omitempty"`  // RFC3339
	ClockOut  *string `json:"clock_out,omitempty"` // RFC3339
	Reason    string  `json:"reason"`
}

func (r *CorrectAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: " + joinStatuses(AllStatuses)})
	} else if r.Status.IsLeave() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "leave statuses are set by leave approval"})
	}
	if r.ClockIn != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "clock_in must be RFC3339"})
		}
	}
	if r.ClockOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "clock_out must be RFC3339"})
		}
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// LISTING
// ========================================

type AttendanceFilter struct {
	CompanyID  string  `json:"-"`
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	var start, end time.Time
	var okStart, okEnd bool
	if f.StartDate != nil {
		if start, okStart = validator.IsValidDate(*f.StartDate); !okStart {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must use YYYY-MM-DD format"})
		}
	}
	if f.EndDate != nil {
		if end, okEnd = validator.IsValidDate(*f.EndDate); !okEnd {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must use YYYY-MM-DD format"})
		}
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}
	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: " + joinStatuses(AllStatuses)})
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func joinStatuses(ss []Status) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// ========================================
// RESPONSES
// ========================================

type AttendanceResponse struct {
	ID                  string           `json:"id"`
	EmployeeID          string           `json:"employee_id"`
	EmployeeName        *string          `json:"employee_name,omitempty"`
	Date                string           `json:"date"`
	ClockIn             *string          `json:"clock_in,omitempty"`
	ClockOut            *string          `json:"clock_out,omitempty"`
	Status              Status           `json:"status"`
	IsLate              bool             `json:"is_late"`
	LateDurationMinutes int              `json:"late_duration_minutes"`
	WorkHours           *decimal.Decimal `json:"work_hours,omitempty"`
	ClockInLocation     *string          `json:"clock_in_location,omitempty"`
	ClockOutLocation    *string          `json:"clock_out_location,omitempty"`
	DeviceInfo          *string          `json:"device_info,omitempty"`
	LeaveID             *string          `json:"leave_id,omitempty"`
	IsPayrollProcessed  bool             `json:"is_payroll_processed"`
	PayrollID           *string          `json:"payroll_id,omitempty"`
	Notes               *string          `json:"notes,omitempty"`
}

// NewAttendanceResponse renders timestamps in loc.
func NewAttendanceResponse(a Attendance, loc *time.Location) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                  a.ID,
		EmployeeID:          a.EmployeeID,
		EmployeeName:        a.EmployeeName,
		Date:                a.Date.Format("2006-01-02"),
		Status:              a.Status,
		IsLate:              a.IsLate,
		LateDurationMinutes: a.LateDurationMinutes,
		WorkHours:           a.WorkHours,
		ClockInLocation:     a.ClockInLocation,
		ClockOutLocation:    a.ClockOutLocation,
		DeviceInfo:          a.DeviceInfo,
		LeaveID:             a.LeaveID,
		IsPayrollProcessed:  a.IsPayrollProcessed,
		PayrollID:           a.PayrollID,
		Notes:               a.Notes,
	}
	if a.ClockIn != nil {
		s := a.ClockIn.In(loc).Format(time.RFC3339)
		resp.ClockIn = &s
	}
	if a.ClockOut != nil {
		s := a.ClockOut.In(loc).Format(time.RFC3339)
		resp.ClockOut = &s
	}
	return resp
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}
