package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, company_id, user_id, employee_code, full_name, position_id,
	leave_quota, leave_balance, join_date, contract_type, employment_status, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.UserID, &e.EmployeeCode, &e.FullName, &e.PositionID,
		&e.LeaveQuota, &e.LeaveBalance, &e.JoinDate, &e.ContractType, &e.EmploymentStatus,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepositoryImpl) query(ctx context.Context, query string, args ...any) ([]employee.Employee, error) {
	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *employeeRepositoryImpl) get(ctx context.Context, id string, companyID string, lock string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND company_id = $2 ` + lock

	e, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id %s: %w", id, err)
	}
	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	return r.get(ctx, id, companyID, "")
}

// GetByIDForUpdate implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	return r.get(ctx, id, companyID, "FOR UPDATE")
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return r.query(ctx, `SELECT `+employeeColumns+` FROM employees WHERE company_id = $1 ORDER BY employee_code`, companyID)
}

// ListPayrollEligible implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListPayrollEligible(ctx context.Context, companyID string) ([]employee.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND employment_status = 'active' AND position_id IS NOT NULL
		ORDER BY employee_code
	`
	return r.query(ctx, query, companyID)
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, company_id, user_id, employee_code, full_name, position_id,
			leave_quota, leave_balance, join_date, contract_type, employment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.CompanyID, e.UserID, e.EmployeeCode, e.FullName, e.PositionID,
		e.LeaveQuota, e.LeaveBalance, e.JoinDate, e.ContractType, e.EmploymentStatus,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "uk_employees_company_code") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return e, nil
}

// DeductLeaveBalance implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) DeductLeaveBalance(ctx context.Context, id string, companyID string, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET leave_balance = leave_balance - $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND leave_balance >= $3
	`

	tag, err := q.Exec(ctx, query, id, companyID, days)
	if err != nil {
		return fmt.Errorf("failed to deduct leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id, companyID); err != nil {
			return err
		}
		return employee.ErrInsufficientLeaveBalance
	}
	return nil
}

// UpdateLeaveQuota implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateLeaveQuota(ctx context.Context, id string, companyID string, quota int) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET leave_balance = GREATEST(leave_balance + ($3 - leave_quota), 0),
			leave_quota = $3,
			updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING ` + employeeColumns

	e, err := scanEmployee(q.QueryRow(ctx, query, id, companyID, quota))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update leave quota: %w", err)
	}
	return e, nil
}
