package employee

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	CompanyID    string  `json:"-"`
	UserID       *string `json:"user_id,omitempty"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	PositionID   *string `json:"position_id,omitempty"`
	LeaveQuota   *int    `json:"leave_quota,omitempty"`
	JoinDate     string  `json:"join_date"` // YYYY-MM-DD
	ContractType string  `json:"contract_type"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "employee_code is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name is required"})
	}
	if r.PositionID != nil && !validator.IsValidUUID(*r.PositionID) {
		errs = append(errs, validator.ValidationError{Field: "position_id", Message: "position_id must be a valid UUID"})
	}
	if r.LeaveQuota != nil && *r.LeaveQuota < 0 {
		errs = append(errs, validator.ValidationError{Field: "leave_quota", Message: "leave_quota must be non-negative"})
	}
	if _, ok := validator.IsValidDate(r.JoinDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "join_date", Message: "join_date must use YYYY-MM-DD format"})
	}
	contractTypes := []string{string(ContractTypePermanent), string(ContractTypeContract), string(ContractTypeIntern)}
	if !validator.IsInSlice(r.ContractType, contractTypes) {
		errs = append(errs, validator.ValidationError{Field: "contract_type", Message: "contract_type must be one of: permanent, contract, intern"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveQuotaRequest struct {
	ActorID    string `json:"-"`
	EmployeeID string `json:"-"`
	CompanyID  string `json:"-"`
	LeaveQuota int    `json:"leave_quota"`
}

func (r *UpdateLeaveQuotaRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.LeaveQuota < 0 {
		errs = append(errs, validator.ValidationError{Field: "leave_quota", Message: "leave_quota must be non-negative"})
	}
	if r.LeaveQuota > 365 {
		errs = append(errs, validator.ValidationError{Field: "leave_quota", Message: "leave_quota must not exceed 365"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	CompanyID        string  `json:"company_id"`
	UserID           *string `json:"user_id,omitempty"`
	EmployeeCode     string  `json:"employee_code"`
	FullName         string  `json:"full_name"`
	PositionID       *string `json:"position_id,omitempty"`
	LeaveQuota       int     `json:"leave_quota"`
	LeaveBalance     int     `json:"leave_balance"`
	JoinDate         string  `json:"join_date"`
	ContractType     string  `json:"contract_type"`
	EmploymentStatus string  `json:"employment_status"`
	CreatedAt        string  `json:"created_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID,
		CompanyID:        e.CompanyID,
		UserID:           e.UserID,
		EmployeeCode:     e.EmployeeCode,
		FullName:         e.FullName,
		PositionID:       e.PositionID,
		LeaveQuota:       e.LeaveQuota,
		LeaveBalance:     e.LeaveBalance,
		JoinDate:         e.JoinDate.Format("2006-01-02"),
		ContractType:     string(e.ContractType),
		EmploymentStatus: string(e.EmploymentStatus),
		CreatedAt:        e.CreatedAt.Format(time.RFC3339),
	}
}
