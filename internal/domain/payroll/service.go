package payroll

import (
	"context"
	"io"
)

type PayrollService interface {
	// GeneratePayrollPeriod creates missing drafts for eligible employees. Safe to re-run.
	GeneratePayrollPeriod(ctx context.Context, req PeriodRequest) (GenerateResult, error)
	// CalculatePayroll aggregates and locks the month's attendance and moves the record to review.
	CalculatePayroll(ctx context.Context, req RecordActionRequest) (PayrollResponse, error)
	ApproveAllMonthly(ctx context.Context, req PeriodRequest) (BulkResult, error)
	RecordBulkPayment(ctx context.Context, req BulkPaymentRequest) (BulkResult, error)
	// DeletePayroll unlocks the record's attendance and deletes it in one transaction.
	DeletePayroll(ctx context.Context, req RecordActionRequest) error

	GetPayrollDetail(ctx context.Context, id string, companyID string) (PayrollDetailResponse, error)
	ListPayrolls(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
	ListMyPayrolls(ctx context.Context, employeeID string, companyID string) ([]PayrollResponse, error)
	Stats(ctx context.Context, companyID string, month, year *int) (StatsResponse, error)
	ExportPeriod(ctx context.Context, companyID string, month, year int, w io.Writer) error
}
