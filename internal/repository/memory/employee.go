package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
)

type employeeRepo struct{ s *Store }

func (r employeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	defer r.s.lock(ctx)()
	e, ok := r.s.data.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

// GetByIDForUpdate relies on the transaction holding the store mutex.
func (r employeeRepo) GetByIDForUpdate(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	return r.GetByID(ctx, id, companyID)
}

func (r employeeRepo) list(companyID string, keep func(employee.Employee) bool) []employee.Employee {
	var out []employee.Employee
	for _, e := range r.s.data.employees {
		if e.CompanyID == companyID && keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out
}

func (r employeeRepo) List(ctx context.Context, companyID string) ([]employee.Employee, error) {
	defer r.s.lock(ctx)()
	return r.list(companyID, func(employee.Employee) bool { return true }), nil
}

func (r employeeRepo) ListPayrollEligible(ctx context.Context, companyID string) ([]employee.Employee, error) {
	defer r.s.lock(ctx)()
	return r.list(companyID, employee.Employee.IsPayrollEligible), nil
}

func (r employeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	defer r.s.lock(ctx)()
	for _, existing := range r.s.data.employees {
		if existing.CompanyID == e.CompanyID && existing.EmployeeCode == e.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
	now := time.Now()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.data.employees[e.ID] = e
	return e, nil
}

func (r employeeRepo) DeductLeaveBalance(ctx context.Context, id string, companyID string, days int) error {
	defer r.s.lock(ctx)()
	if err := r.s.check("employee.DeductLeaveBalance"); err != nil {
		return err
	}
	e, ok := r.s.data.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.ErrEmployeeNotFound
	}
	if e.LeaveBalance < days {
		return employee.ErrInsufficientLeaveBalance
	}
	e.LeaveBalance -= days
	e.UpdatedAt = time.Now()
	r.s.data.employees[id] = e
	return nil
}

func (r employeeRepo) UpdateLeaveQuota(ctx context.Context, id string, companyID string, quota int) (employee.Employee, error) {
	defer r.s.lock(ctx)()
	e, ok := r.s.data.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.LeaveBalance = max(e.LeaveBalance+quota-e.LeaveQuota, 0)
	e.LeaveQuota = quota
	e.UpdatedAt = time.Now()
	r.s.data.employees[id] = e
	return e, nil
}
