package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	// GetByIDForUpdate locks the employee row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string, companyID string) (Employee, error)
	List(ctx context.Context, companyID string) ([]Employee, error)
	// ListPayrollEligible returns active employees that reference a position.
	ListPayrollEligible(ctx context.Context, companyID string) ([]Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)

	// DeductLeaveBalance subtracts days only if the balance covers them, else ErrInsufficientLeaveBalance.
	DeductLeaveBalance(ctx context.Context, id string, companyID string, days int) error

	// UpdateLeaveQuota sets the quota and shifts the balance by the quota difference, floored at zero.
	UpdateLeaveQuota(ctx context.Context, id string, companyID string, quota int) (Employee, error)
}
