package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	// CreateDraftIfAbsent inserts unless (employee, month, year) already exists; created reports which.
	CreateDraftIfAbsent(ctx context.Context, r PayrollRecord) (created bool, err error)

	GetByID(ctx context.Context, id string, companyID string) (PayrollRecord, error)

	// GetByIDForUpdate row-locks the record for the rest of the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string, companyID string) (PayrollRecord, error)

	SaveCalculation(ctx context.Context, r PayrollRecord) error

	// ApproveAll moves every review record of the period to approved.
	ApproveAll(ctx context.Context, companyID string, month, year int) (int64, error)

	// MarkPaid moves the given review/approved records to paid.
	MarkPaid(ctx context.Context, companyID string, ids []string, paidAt time.Time, method string) (int64, error)

	Delete(ctx context.Context, id string, companyID string) error

	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)

	// ListByEmployee is ordered newest period first.
	ListByEmployee(ctx context.Context, employeeID string, companyID string, statuses []PayrollStatus) ([]PayrollRecord, error)

	// Totals groups a period by status; month/year nil means all time.
	Totals(ctx context.Context, companyID string, month, year *int) ([]StatusTotal, error)
}
