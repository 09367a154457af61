package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const payrollColumns = `p.id, p.company_id, p.employee_id, p.period_month, p.period_year,
	p.basic_salary, p.allowances, p.meal_allowance_snapshot, p.transport_allowance_snapshot,
	p.late_deduction_rate_snapshot, p.hourly_rate_snapshot,
	p.total_attendance, p.total_late_minutes, p.deductions, p.net_salary,
	p.status, p.paid_at, p.payment_method, p.created_at, p.updated_at, e.full_name`

func scanPayroll(row pgx.Row) (payroll.PayrollRecord, error) {
	var r payroll.PayrollRecord
	err := row.Scan(
		&r.ID, &r.CompanyID, &r.EmployeeID, &r.Month, &r.Year,
		&r.BasicSalary, &r.Allowances, &r.MealAllowanceSnapshot, &r.TransportAllowanceSnapshot,
		&r.LateDeductionRateSnapshot, &r.HourlyRateSnapshot,
		&r.TotalAttendance, &r.TotalLateMinutes, &r.Deductions, &r.NetSalary,
		&r.Status, &r.PaidAt, &r.PaymentMethod, &r.CreatedAt, &r.UpdatedAt, &r.EmployeeName,
	)
	return r, err
}

func (r *payrollRepositoryImpl) collect(ctx context.Context, query string, args ...any) ([]payroll.PayrollRecord, error) {
	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CreateDraftIfAbsent implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) CreateDraftIfAbsent(ctx context.Context, rec payroll.PayrollRecord) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrolls (
			id, company_id, employee_id, period_month, period_year,
			basic_salary, allowances, meal_allowance_snapshot, transport_allowance_snapshot,
			late_deduction_rate_snapshot, hourly_rate_snapshot, net_salary, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT ON CONSTRAINT uk_payrolls_employee_period DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		rec.ID, rec.CompanyID, rec.EmployeeID, rec.Month, rec.Year,
		rec.BasicSalary, rec.Allowances, rec.MealAllowanceSnapshot, rec.TransportAllowanceSnapshot,
		rec.LateDeductionRateSnapshot, rec.HourlyRateSnapshot, rec.NetSalary, rec.Status,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create payroll draft: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *payrollRepositoryImpl) get(ctx context.Context, id, companyID, suffix string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payrolls p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1 AND p.company_id = $2
	` + suffix

	rec, err := scanPayroll(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record %s: %w", id, err)
	}
	return rec, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	return r.get(ctx, id, companyID, "")
}

// GetByIDForUpdate implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	return r.get(ctx, id, companyID, "FOR UPDATE OF p")
}

// SaveCalculation implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) SaveCalculation(ctx context.Context, rec payroll.PayrollRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET total_attendance = $3, total_late_minutes = $4, deductions = $5, net_salary = $6,
			status = $7, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query,
		rec.ID, rec.CompanyID, rec.TotalAttendance, rec.TotalLateMinutes, rec.Deductions, rec.NetSalary, rec.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to save payroll calculation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}

// ApproveAll implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ApproveAll(ctx context.Context, companyID string, month, year int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET status = 'approved', updated_at = NOW()
		WHERE company_id = $1 AND period_month = $2 AND period_year = $3 AND status = 'review'
	`

	tag, err := q.Exec(ctx, query, companyID, month, year)
	if err != nil {
		return 0, fmt.Errorf("failed to approve payroll period: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MarkPaid implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) MarkPaid(ctx context.Context, companyID string, ids []string, paidAt time.Time, method string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET status = 'paid', paid_at = $3, payment_method = $4, updated_at = NOW()
		WHERE company_id = $1 AND id = ANY($2::uuid[]) AND status IN ('review', 'approved')
	`

	tag, err := q.Exec(ctx, query, companyID, ids, paidAt, method)
	if err != nil {
		return 0, fmt.Errorf("failed to mark payroll records paid: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payrolls WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "p.company_id = $1"
	args := []interface{}{filter.CompanyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil {
		baseWhere += fmt.Sprintf(" AND p.period_month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND p.period_year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM payrolls p WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	args = append(args, limit, (max(filter.Page, 1)-1)*limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payrolls p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY p.period_year DESC, p.period_month DESC, p.employee_id
		LIMIT $%d OFFSET $%d
	`, payrollColumns, baseWhere, argIdx, argIdx+1)

	records, err := r.collect(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByEmployee implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string, statuses []payroll.PayrollStatus) ([]payroll.PayrollRecord, error) {
	query := `
		SELECT ` + payrollColumns + `
		FROM payrolls p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.employee_id = $1 AND p.company_id = $2
	`
	args := []any{employeeID, companyID}
	if len(statuses) > 0 {
		names := make([]string, len(statuses))
		for i, s := range statuses {
			names[i] = string(s)
		}
		query += " AND p.status = ANY($3)"
		args = append(args, names)
	}
	query += " ORDER BY p.period_year DESC, p.period_month DESC"

	return r.collect(ctx, query, args...)
}

// Totals implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Totals(ctx context.Context, companyID string, month, year *int) ([]payroll.StatusTotal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*), COALESCE(SUM(net_salary), 0)
		FROM payrolls
		WHERE company_id = $1
		  AND ($2::int IS NULL OR period_month = $2)
		  AND ($3::int IS NULL OR period_year = $3)
		GROUP BY status
		ORDER BY status
	`

	rows, err := q.Query(ctx, query, companyID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to total payroll records: %w", err)
	}
	defer rows.Close()

	var totals []payroll.StatusTotal
	for rows.Next() {
		var t payroll.StatusTotal
		if err := rows.Scan(&t.Status, &t.Count, &t.NetSalary); err != nil {
			return nil, fmt.Errorf("failed to scan payroll total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
