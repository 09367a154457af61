package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
)

type payrollRepo struct{ s *Store }

func (r payrollRepo) withName(p payroll.PayrollRecord) payroll.PayrollRecord {
	if e, ok := r.s.data.employees[p.EmployeeID]; ok {
		name := e.FullName
		p.EmployeeName = &name
	}
	return p
}

func (r payrollRepo) CreateDraftIfAbsent(ctx context.Context, p payroll.PayrollRecord) (bool, error) {
	defer r.s.lock(ctx)()
	if err := r.s.check("payroll.CreateDraftIfAbsent"); err != nil {
		return false, err
	}
	for _, existing := range r.s.data.payrolls {
		if existing.EmployeeID == p.EmployeeID && existing.Month == p.Month && existing.Year == p.Year {
			return false, nil
		}
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.data.payrolls[p.ID] = p
	return true, nil
}

func (r payrollRepo) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	defer r.s.lock(ctx)()
	p, ok := r.s.data.payrolls[id]
	if !ok || p.CompanyID != companyID {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r.withName(p), nil
}

// GetByIDForUpdate relies on the transaction holding the store mutex.
func (r payrollRepo) GetByIDForUpdate(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	return r.GetByID(ctx, id, companyID)
}

func (r payrollRepo) SaveCalculation(ctx context.Context, p payroll.PayrollRecord) error {
	defer r.s.lock(ctx)()
	if err := r.s.check("payroll.SaveCalculation"); err != nil {
		return err
	}
	existing, ok := r.s.data.payrolls[p.ID]
	if !ok || existing.CompanyID != p.CompanyID {
		return payroll.ErrPayrollRecordNotFound
	}
	existing.TotalAttendance = p.TotalAttendance
	existing.TotalLateMinutes = p.TotalLateMinutes
	existing.Deductions = p.Deductions
	existing.NetSalary = p.NetSalary
	existing.Status = p.Status
	existing.UpdatedAt = time.Now()
	r.s.data.payrolls[p.ID] = existing
	return nil
}

func (r payrollRepo) ApproveAll(ctx context.Context, companyID string, month, year int) (int64, error) {
	defer r.s.lock(ctx)()
	var n int64
	for id, p := range r.s.data.payrolls {
		if p.CompanyID != companyID || p.Month != month || p.Year != year || p.Status != payroll.StatusReview {
			continue
		}
		p.Status = payroll.StatusApproved
		p.UpdatedAt = time.Now()
		r.s.data.payrolls[id] = p
		n++
	}
	return n, nil
}

func (r payrollRepo) MarkPaid(ctx context.Context, companyID string, ids []string, paidAt time.Time, method string) (int64, error) {
	defer r.s.lock(ctx)()
	var n int64
	for _, id := range ids {
		p, ok := r.s.data.payrolls[id]
		if !ok || p.CompanyID != companyID || !p.Status.CanPay() {
			continue
		}
		at, m := paidAt, method
		p.Status = payroll.StatusPaid
		p.PaidAt = &at
		p.PaymentMethod = &m
		p.UpdatedAt = time.Now()
		r.s.data.payrolls[id] = p
		n++
	}
	return n, nil
}

func (r payrollRepo) Delete(ctx context.Context, id string, companyID string) error {
	defer r.s.lock(ctx)()
	if err := r.s.check("payroll.Delete"); err != nil {
		return err
	}
	p, ok := r.s.data.payrolls[id]
	if !ok || p.CompanyID != companyID {
		return payroll.ErrPayrollRecordNotFound
	}
	delete(r.s.data.payrolls, id)
	return nil
}

func (r payrollRepo) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	defer r.s.lock(ctx)()
	var out []payroll.PayrollRecord
	for _, p := range r.s.data.payrolls {
		if p.CompanyID != filter.CompanyID {
			continue
		}
		if filter.EmployeeID != nil && p.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Month != nil && p.Month != *filter.Month {
			continue
		}
		if filter.Year != nil && p.Year != *filter.Year {
			continue
		}
		if filter.Status != nil && string(p.Status) != *filter.Status {
			continue
		}
		out = append(out, r.withName(p))
	}
	sortNewestPeriod(out)
	return page(out, filter.Page, filter.Limit), int64(len(out)), nil
}

func (r payrollRepo) ListByEmployee(ctx context.Context, employeeID string, companyID string, statuses []payroll.PayrollStatus) ([]payroll.PayrollRecord, error) {
	defer r.s.lock(ctx)()
	var out []payroll.PayrollRecord
	for _, p := range r.s.data.payrolls {
		if p.EmployeeID != employeeID || p.CompanyID != companyID {
			continue
		}
		if len(statuses) > 0 && !slices.Contains(statuses, p.Status) {
			continue
		}
		out = append(out, r.withName(p))
	}
	sortNewestPeriod(out)
	return out, nil
}

func (r payrollRepo) Totals(ctx context.Context, companyID string, month, year *int) ([]payroll.StatusTotal, error) {
	defer r.s.lock(ctx)()
	byStatus := map[payroll.PayrollStatus]*payroll.StatusTotal{}
	for _, p := range r.s.data.payrolls {
		if p.CompanyID != companyID {
			continue
		}
		if month != nil && p.Month != *month {
			continue
		}
		if year != nil && p.Year != *year {
			continue
		}
		t, ok := byStatus[p.Status]
		if !ok {
			t = &payroll.StatusTotal{Status: p.Status, NetSalary: decimal.Zero}
			byStatus[p.Status] = t
		}
		t.Count++
		t.NetSalary = t.NetSalary.Add(p.NetSalary)
	}

	out := make([]payroll.StatusTotal, 0, len(byStatus))
	for _, t := range byStatus {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func sortNewestPeriod(out []payroll.PayrollRecord) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month > out[j].Month
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
}
