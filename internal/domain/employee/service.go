package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string, companyID string) (EmployeeResponse, error)
	List(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	UpdateLeaveQuota(ctx context.Context, req UpdateLeaveQuotaRequest) (EmployeeResponse, error)
}
