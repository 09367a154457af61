package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	EmployeeID string    `json:"-"` // From JWT
	CompanyID  string    `json:"-"` // From JWT
	Type       LeaveType `json:"type"`
	StartDate  string    `json:"start_date"` // YYYY-MM-DD
	EndDate    string    `json:"end_date"`   // YYYY-MM-DD
	Reason     string    `json:"reason"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	types := []string{string(LeaveTypeAnnual), string(LeaveTypeSick), string(LeaveTypeOther)}
	if !validator.IsInSlice(string(r.Type), types) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of: annual, sick, other"})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must use YYYY-MM-DD format"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must use YYYY-MM-DD format"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	} else if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason must not exceed 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewLeaveRequest struct {
	RequestID      string  `json:"-"`
	CompanyID      string  `json:"-"`
	ReviewerID     string  `json:"-"`
	Decision       Status  `json:"decision"`
	RejectedReason *string `json:"rejected_reason,omitempty"`
}

// Validate only checks shape; the reason rule is enforced by the service as a policy error.
func (r *ReviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Decision != StatusApproved && r.Decision != StatusRejected {
		errs = append(errs, validator.ValidationError{Field: "decision", Message: "decision must be one of: approved, rejected"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestFilter struct {
	CompanyID  string  `json:"-"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Type       *string `json:"type,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: pending, approved, rejected"})
	}
	if f.Type != nil && !validator.IsInSlice(*f.Type, []string{string(LeaveTypeAnnual), string(LeaveTypeSick), string(LeaveTypeOther)}) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of: annual, sick, other"})
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

type LeaveRequestResponse struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeName   *string   `json:"employee_name,omitempty"`
	Type           LeaveType `json:"type"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	DaysTaken      int       `json:"days_taken"`
	Reason         string    `json:"reason"`
	Status         Status    `json:"status"`
	RejectedReason *string   `json:"rejected_reason,omitempty"`
	ReviewedBy     *string   `json:"reviewed_by,omitempty"`
	ReviewedAt     *string   `json:"reviewed_at,omitempty"`
	CreatedAt      string    `json:"created_at"`
}

// NewLeaveRequestResponse renders calendar dates in loc.
func NewLeaveRequestResponse(r LeaveRequest, loc *time.Location) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		Type:           r.Type,
		StartDate:      r.StartDate.In(loc).Format("2006-01-02"),
		EndDate:        r.EndDate.In(loc).Format("2006-01-02"),
		DaysTaken:      r.DaysTaken,
		Reason:         r.Reason,
		Status:         r.Status,
		RejectedReason: r.RejectedReason,
		ReviewedBy:     r.ReviewedBy,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
	if r.ReviewedAt != nil {
		s := r.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &s
	}
	return resp
}

type ListLeaveRequestResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Requests   []LeaveRequestResponse `json:"requests"`
}

type StatsResponse struct {
	Pending           int `json:"pending"`
	ApprovedThisMonth int `json:"approved_this_month"`
	OnLeaveToday      int `json:"on_leave_today"`
}
