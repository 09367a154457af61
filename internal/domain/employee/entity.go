package employee

import (
	"time"
)

type Employee struct {
	ID               string
	CompanyID        string
	UserID           *string
	EmployeeCode     string
	FullName         string
	PositionID       *string
	LeaveQuota       int
	LeaveBalance     int
	JoinDate         time.Time
	ContractType     ContractType
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type ContractType string

const (
	ContractTypePermanent ContractType = "permanent"
	ContractTypeContract  ContractType = "contract"
	ContractTypeIntern    ContractType = "intern"
)

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusInactive EmploymentStatus = "inactive"
	EmploymentStatusResigned EmploymentStatus = "resigned"
)

// IsPayrollEligible reports whether generation should create a payslip for e.
func (e Employee) IsPayrollEligible() bool {
	return e.EmploymentStatus == EmploymentStatusActive && e.PositionID != nil && *e.PositionID != ""
}

// DefaultLeaveQuota is used when a company does not override the yearly quota.
const DefaultLeaveQuota = 12
