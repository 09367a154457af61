package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== ACTION DTOs ==========

type PeriodRequest struct {
	CompanyID string `json:"-"`
	ActorID   string `json:"-"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if r.Year < 2000 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 2000 and 9999"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordActionRequest struct {
	PayrollID string
	CompanyID string
	ActorID   string
}

type BulkPaymentRequest struct {
	CompanyID     string   `json:"-"`
	ActorID       string   `json:"-"`
	PayrollIDs    []string `json:"payroll_ids"`
	PaymentMethod string   `json:"payment_method,omitempty"`
}

func (r *BulkPaymentRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.PayrollIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "payroll_ids", Message: "payroll_ids must not be empty"})
	}
	for _, id := range r.PayrollIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "payroll_ids", Message: "payroll_ids must contain valid UUIDs"})
			break
		}
	}
	if len(r.PaymentMethod) > 50 {
		errs = append(errs, validator.ValidationError{Field: "payment_method", Message: "payment_method must not exceed 50 characters"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollFilter struct {
	CompanyID  string  `json:"-"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Month      *int    `json:"month,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.Month != nil && (*f.Month < 1 || *f.Month > 12) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if f.Year != nil && (*f.Year < 2000 || *f.Year > 9999) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 2000 and 9999"})
	}
	statuses := []string{string(StatusDraft), string(StatusReview), string(StatusApproved), string(StatusPaid)}
	if f.Status != nil && !validator.IsInSlice(*f.Status, statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: draft, review, approved, paid"})
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

// ========== RESPONSE DTOs ==========

type GenerateResult struct {
	Month   int `json:"month"`
	Year    int `json:"year"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type BulkResult struct {
	Updated int64 `json:"updated"`
}

type PayrollResponse struct {
	ID                         string          `json:"id"`
	EmployeeID                 string          `json:"employee_id"`
	EmployeeName               *string         `json:"employee_name,omitempty"`
	Month                      int             `json:"month"`
	Year                       int             `json:"year"`
	BasicSalary                decimal.Decimal `json:"basic_salary"`
	Allowances                 decimal.Decimal `json:"allowances"`
	MealAllowanceSnapshot      decimal.Decimal `json:"meal_allowance_snapshot"`
	TransportAllowanceSnapshot decimal.Decimal `json:"transport_allowance_snapshot"`
	LateDeductionRateSnapshot  decimal.Decimal `json:"late_deduction_rate_snapshot"`
	HourlyRateSnapshot         decimal.Decimal `json:"hourly_rate_snapshot"`
	TotalAttendance            int             `json:"total_attendance"`
	TotalLateMinutes           int             `json:"total_late_minutes"`
	Deductions                 decimal.Decimal `json:"deductions"`
	NetSalary                  decimal.Decimal `json:"net_salary"`
	Status                     PayrollStatus   `json:"status"`
	PaidAt                     *string         `json:"paid_at,omitempty"`
	PaymentMethod              *string         `json:"payment_method,omitempty"`
}

func NewPayrollResponse(r PayrollRecord) PayrollResponse {
	resp := PayrollResponse{
		ID:                         r.ID,
		EmployeeID:                 r.EmployeeID,
		EmployeeName:               r.EmployeeName,
		Month:                      r.Month,
		Year:                       r.Year,
		BasicSalary:                r.BasicSalary,
		Allowances:                 r.Allowances,
		MealAllowanceSnapshot:      r.MealAllowanceSnapshot,
		TransportAllowanceSnapshot: r.TransportAllowanceSnapshot,
		LateDeductionRateSnapshot:  r.LateDeductionRateSnapshot,
		HourlyRateSnapshot:         r.HourlyRateSnapshot,
		TotalAttendance:            r.TotalAttendance,
		TotalLateMinutes:           r.TotalLateMinutes,
		Deductions:                 r.Deductions,
		NetSalary:                  r.NetSalary,
		Status:                     r.Status,
		PaymentMethod:              r.PaymentMethod,
	}
	if r.PaidAt != nil {
		s := r.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &s
	}
	return resp
}

type PayrollDetailResponse struct {
	PayrollResponse
	Attendances []attendance.AttendanceResponse `json:"attendances"`
}

type ListPayrollResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Payrolls   []PayrollResponse `json:"payrolls"`
}

type StatusTotalResponse struct {
	Status    PayrollStatus   `json:"status"`
	Count     int             `json:"count"`
	NetSalary decimal.Decimal `json:"net_salary"`
}

type StatsResponse struct {
	TotalPaid decimal.Decimal       `json:"total_paid"`
	ByStatus  []StatusTotalResponse `json:"by_status"`
}
