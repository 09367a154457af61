// Package memory is an in-process implementation of every repository, used by service and handler
// tests and by the API when started with STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
)

type txKey struct{}

type tables struct {
	companies     map[string]company.Company
	subscriptions map[string]subscription.Subscription // keyed by company id
	positions     map[string]position.Position
	employees     map[string]employee.Employee
	holidays      map[string]holiday.Holiday
	attendances   map[string]attendance.Attendance
	leaves        map[string]leave.LeaveRequest
	payrolls      map[string]payroll.PayrollRecord
	audits        []audit.Event
}

func (t tables) clone() tables {
	return tables{
		companies:     maps.Clone(t.companies),
		subscriptions: maps.Clone(t.subscriptions),
		positions:     maps.Clone(t.positions),
		employees:     maps.Clone(t.employees),
		holidays:      maps.Clone(t.holidays),
		attendances:   maps.Clone(t.attendances),
		leaves:        maps.Clone(t.leaves),
		payrolls:      maps.Clone(t.payrolls),
		audits:        slices.Clone(t.audits),
	}
}

// Store holds all tables behind one mutex. A transaction holds the mutex for its whole
// duration and restores a snapshot when fn fails.
type Store struct {
	mu     sync.Mutex
	data   tables
	faults map[string]*fault
}

type fault struct {
	after int
	err   error
}

func NewStore() *Store {
	return &Store{
		data: tables{
			companies:     map[string]company.Company{},
			subscriptions: map[string]subscription.Subscription{},
			positions:     map[string]position.Position{},
			employees:     map[string]employee.Employee{},
			holidays:      map[string]holiday.Holiday{},
			attendances:   map[string]attendance.Attendance{},
			leaves:        map[string]leave.LeaveRequest{},
			payrolls:      map[string]payroll.PayrollRecord{},
		},
		faults: map[string]*fault{},
	}
}

// WithinTx implements database.Transactor.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) == s {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	defer func() {
		if p := recover(); p != nil {
			s.data = snapshot
			panic(p)
		}
		if err != nil {
			s.data = snapshot
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

// FailAfter makes the named operation return err once it has succeeded n times.
// Operation names are "<table>.<Method>", e.g. "attendance.UpsertLeaveDay".
func (s *Store) FailAfter(op string, n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = &fault{after: n, err: err}
}

// lock acquires the store unless ctx is already inside one of its transactions.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// check must be called with the store locked.
func (s *Store) check(op string) error {
	f, ok := s.faults[op]
	if !ok {
		return nil
	}
	if f.after > 0 {
		f.after--
		return nil
	}
	return f.err
}

func (s *Store) Companies() company.CompanyRepository               { return companyRepo{s} }
func (s *Store) Subscriptions() subscription.SubscriptionRepository { return subscriptionRepo{s} }
func (s *Store) Positions() position.PositionRepository             { return positionRepo{s} }
func (s *Store) Employees() employee.EmployeeRepository             { return employeeRepo{s} }
func (s *Store) Holidays() holiday.HolidayRepository                { return holidayRepo{s} }
func (s *Store) Attendances() attendance.AttendanceRepository       { return attendanceRepo{s} }
func (s *Store) Leaves() leave.LeaveRequestRepository               { return leaveRepo{s} }
func (s *Store) Payrolls() payroll.PayrollRepository                { return payrollRepo{s} }
func (s *Store) Audits() audit.AuditRepository                      { return auditRepo{s} }
func (s *Store) Dashboard() dashboard.DashboardRepository            { return dashboardRepo{s} }

// page slices items for a 1-based page.
func page[T any](items []T, pageNum, limit int) []T {
	if limit <= 0 {
		return items
	}
	start := (pageNum - 1) * limit
	if start < 0 {
		start = 0
	}
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
