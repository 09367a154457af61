package leave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/cmlabs-hris/hris-core-go/internal/repository/memory"
	auditsvc "github.com/cmlabs-hris/hris-core-go/internal/service/audit"
	companysvc "github.com/cmlabs-hris/hris-core-go/internal/service/company"
	holidaysvc "github.com/cmlabs-hris/hris-core-go/internal/service/holiday"
	subscriptionsvc "github.com/cmlabs-hris/hris-core-go/internal/service/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*60*60)

const (
	testCompanyID  = "company-1"
	testEmployeeID = "employee-1"
	otherEmployee  = "employee-2"
	testAdminID    = "admin-1"
)

type fixture struct {
	store    *memory.Store
	svc      leave.LeaveService
	holidays holiday.HolidayService
}

func newFixture(t *testing.T, balance int) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	_, err := store.Companies().Create(ctx, company.Company{ID: testCompanyID, Name: "Acme", WorkStartTime: "08:00"})
	require.NoError(t, err)
	_, err = store.Subscriptions().Upsert(ctx, subscription.Subscription{
		ID:        "sub-1",
		CompanyID: testCompanyID,
		Status:    subscription.StatusActive,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	for i, id := range []string{testEmployeeID, otherEmployee} {
		_, err = store.Employees().Create(ctx, employee.Employee{
			ID:               id,
			CompanyID:        testCompanyID,
			EmployeeCode:     []string{"EMP-001", "EMP-002"}[i],
			FullName:         []string{"Budi Santoso", "Siti Aminah"}[i],
			LeaveQuota:       12,
			LeaveBalance:     balance,
			EmploymentStatus: employee.EmploymentStatusActive,
		})
		require.NoError(t, err)
	}

	recorder := auditsvc.NewAuditService(store.Audits())
	settings := companysvc.NewCompanyService(store.Companies(), company.Defaults{Location: wib, WorkStartTime: "08:00"}, recorder)
	holidays := holidaysvc.NewHolidayService(store.Holidays())
	gate := subscriptionsvc.NewSubscriptionService(store.Subscriptions(), nil, 0)

	svc := NewLeaveService(store, store.Leaves(), store.Employees(), store.Attendances(), settings, holidays, gate, recorder)
	svc.(*LeaveServiceImpl).now = func() time.Time { return time.Date(2025, 3, 11, 10, 0, 0, 0, wib) }

	return &fixture{store: store, svc: svc, holidays: holidays}
}

func (f *fixture) submit(t *testing.T, employeeID string, typ leave.LeaveType, start, end string) (leave.LeaveRequestResponse, error) {
	t.Helper()
	return f.svc.SubmitLeaveRequest(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: employeeID,
		CompanyID:  testCompanyID,
		Type:       typ,
		StartDate:  start,
		EndDate:    end,
		Reason:     "family event",
	})
}

func (f *fixture) approve(id string) (leave.LeaveRequestResponse, error) {
	return f.svc.ReviewLeaveRequest(context.Background(), leave.ReviewLeaveRequest{
		RequestID:  id,
		CompanyID:  testCompanyID,
		ReviewerID: testAdminID,
		Decision:   leave.StatusApproved,
	})
}

func (f *fixture) balance(t *testing.T, employeeID string) int {
	t.Helper()
	emp, err := f.store.Employees().GetByID(context.Background(), employeeID, testCompanyID)
	require.NoError(t, err)
	return emp.LeaveBalance
}

func (f *fixture) leaveDays(t *testing.T, employeeID string) []attendance.Attendance {
	t.Helper()
	days, err := f.store.Attendances().ListInRange(context.Background(), employeeID, "2025-03-01", "2025-03-31",
		[]attendance.Status{attendance.StatusAnnualLeave, attendance.StatusSick})
	require.NoError(t, err)
	return days
}

func TestSubmitLeaveRequest(t *testing.T) {
	t.Run("counts weekdays only", func(t *testing.T) {
		f := newFixture(t, 12)
		resp, err := f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-10", "2025-03-16")
		require.NoError(t, err)
		assert.Equal(t, 5, resp.DaysTaken)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, "2025-03-10", resp.StartDate)
		assert.Equal(t, "2025-03-16", resp.EndDate)
	})

	t.Run("excludes holidays", func(t *testing.T) {
		f := newFixture(t, 12)
		_, err := f.holidays.Create(context.Background(), holiday.CreateHolidayRequest{CompanyID: testCompanyID, Date: "2025-03-12", Name: "Nyepi"})
		require.NoError(t, err)

		resp, err := f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-10", "2025-03-14")
		require.NoError(t, err)
		assert.Equal(t, 4, resp.DaysTaken)
	})

	t.Run("weekend only", func(t *testing.T) {
		f := newFixture(t, 12)
		_, err := f.submit(t, testEmployeeID, leave.LeaveTypeSick, "2025-03-15", "2025-03-16")
		assert.ErrorIs(t, err, leave.ErrNoWorkingDays)
	})

	t.Run("insufficient annual balance", func(t *testing.T) {
		f := newFixture(t, 2)
		_, err := f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-10", "2025-03-14")
		assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

		// Sick leave does not consume the balance.
		_, err = f.submit(t, testEmployeeID, leave.LeaveTypeSick, "2025-03-10", "2025-03-14")
		assert.NoError(t, err)
	})

	t.Run("end before start", func(t *testing.T) {
		f := newFixture(t, 12)
		_, err := f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-14", "2025-03-10")
		assert.Error(t, err)
	})
}

func TestSubmitLeaveRequest_Overlap(t *testing.T) {
	f := newFixture(t, 12)

	_, err := f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-10", "2025-03-15")
	require.NoError(t, err)

	_, err = f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-12", "2025-03-20")
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)

	_, err = f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-15", "2025-03-20")
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)

	_, err = f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-16", "2025-03-20")
	assert.NoError(t, err)

	// Other employees are unaffected.
	_, err = f.submit(t, otherEmployee, leave.LeaveTypeAnnual, "2025-03-12", "2025-03-20")
	assert.NoError(t, err)
}

func TestSubmitLeaveRequest_ConcurrentOverlap(t *testing.T) {
	f := newFixture(t, 12)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		errs    []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-17", "2025-03-18")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
				return
			}
			errs = append(errs, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	require.Len(t, errs, workers-1)
	for _, err := range errs {
		assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
	}

	employeeID := testEmployeeID
	requests, total, err := f.store.Leaves().List(context.Background(), leave.LeaveRequestFilter{CompanyID: testCompanyID, EmployeeID: &employeeID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, requests, 1)
}

func TestReviewLeaveRequest_Approve(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 12)

	_, err := f.holidays.Create(ctx, holiday.CreateHolidayRequest{CompanyID: testCompanyID, Date: "2025-03-12", Name: "Nyepi"})
	require.NoError(t, err)

	req, err := f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-10", "2025-03-16")
	require.NoError(t, err)
	require.Equal(t, 4, req.DaysTaken)

	resp, err := f.approve(req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, testAdminID, *resp.ReviewedBy)

	assert.Equal(t, 8, f.balance(t, testEmployeeID))

	// Every Monday to Friday is written, the holiday included.
	days := f.leaveDays(t, testEmployeeID)
	require.Len(t, days, 5)
	for _, d := range days {
		assert.Equal(t, attendance.StatusAnnualLeave, d.Status)
		require.NotNil(t, d.LeaveID)
		assert.Equal(t, req.ID, *d.LeaveID)
	}

	_, err = f.approve(req.ID)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)

	events, _, err := f.store.Audits().List(ctx, audit.EventFilter{CompanyID: testCompanyID, Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionLeaveApproved, events[0].Action)
}

func TestReviewLeaveRequest_SickOverwritesClockIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 12)

	in := time.Date(2025, 3, 10, 8, 30, 0, 0, wib)
	_, applied, err := f.store.Attendances().UpsertClockIn(ctx, attendance.Attendance{
		ID:                  "att-1",
		CompanyID:           testCompanyID,
		EmployeeID:          testEmployeeID,
		Date:                time.Date(2025, 3, 10, 0, 0, 0, 0, wib),
		ClockIn:             &in,
		Status:              attendance.StatusLate,
		IsLate:              true,
		LateDurationMinutes: 30,
	})
	require.NoError(t, err)
	require.True(t, applied)

	req, err := f.submit(t, testEmployeeID, leave.LeaveTypeSick, "2025-03-10", "2025-03-11")
	require.NoError(t, err)
	_, err = f.approve(req.ID)
	require.NoError(t, err)

	days := f.leaveDays(t, testEmployeeID)
	require.Len(t, days, 2)
	assert.Equal(t, "att-1", days[0].ID)
	assert.Equal(t, attendance.StatusSick, days[0].Status)
	assert.Zero(t, days[0].LateDurationMinutes)
	assert.Equal(t, 12, f.balance(t, testEmployeeID))
}

func TestReviewLeaveRequest_Atomic(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 12)

	req, err := f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-10", "2025-03-14")
	require.NoError(t, err)

	boom := errors.New("connection reset")
	f.store.FailAfter("attendance.UpsertLeaveDay", 2, boom)

	_, err = f.approve(req.ID)
	require.ErrorIs(t, err, boom)

	got, err := f.svc.GetLeaveRequest(ctx, req.ID, testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, got.Status)
	assert.Nil(t, got.ReviewedBy)
	assert.Equal(t, 12, f.balance(t, testEmployeeID))
	assert.Empty(t, f.leaveDays(t, testEmployeeID))

	events, _, err := f.store.Audits().List(ctx, audit.EventFilter{CompanyID: testCompanyID, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestReviewLeaveRequest_LockedDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 12)

	in := time.Date(2025, 3, 12, 7, 55, 0, 0, wib)
	_, _, err := f.store.Attendances().UpsertClockIn(ctx, attendance.Attendance{
		ID:         "att-1",
		CompanyID:  testCompanyID,
		EmployeeID: testEmployeeID,
		Date:       time.Date(2025, 3, 12, 0, 0, 0, 0, wib),
		ClockIn:    &in,
		Status:     attendance.StatusOnTime,
	})
	require.NoError(t, err)
	_, err = f.store.Attendances().LockRange(ctx, testEmployeeID, "2025-03-01", "2025-03-31", "payroll-1")
	require.NoError(t, err)

	req, err := f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-10", "2025-03-14")
	require.NoError(t, err)

	_, err = f.approve(req.ID)
	require.ErrorIs(t, err, attendance.ErrPayrollLocked)

	got, err := f.svc.GetLeaveRequest(ctx, req.ID, testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, got.Status)
	assert.Equal(t, 12, f.balance(t, testEmployeeID))
	assert.Empty(t, f.leaveDays(t, testEmployeeID))
}

func TestReviewLeaveRequest_BalanceSpentMeanwhile(t *testing.T) {
	f := newFixture(t, 5)

	first, err := f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-10", "2025-03-14")
	require.NoError(t, err)
	second, err := f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-17", "2025-03-18")
	require.NoError(t, err)

	_, err = f.approve(first.ID)
	require.NoError(t, err)

	_, err = f.approve(second.ID)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	assert.Equal(t, 0, f.balance(t, testEmployeeID))
	assert.Len(t, f.leaveDays(t, testEmployeeID), 5)
}

func TestReviewLeaveRequest_Reject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 12)

	req, err := f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-10", "2025-03-14")
	require.NoError(t, err)

	blank := "   "
	_, err = f.svc.ReviewLeaveRequest(ctx, leave.ReviewLeaveRequest{
		RequestID:      req.ID,
		CompanyID:      testCompanyID,
		ReviewerID:     testAdminID,
		Decision:       leave.StatusRejected,
		RejectedReason: &blank,
	})
	assert.ErrorIs(t, err, leave.ErrReasonRequired)

	reason := "peak season"
	resp, err := f.svc.ReviewLeaveRequest(ctx, leave.ReviewLeaveRequest{
		RequestID:      req.ID,
		CompanyID:      testCompanyID,
		ReviewerID:     testAdminID,
		Decision:       leave.StatusRejected,
		RejectedReason: &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Status)
	require.NotNil(t, resp.RejectedReason)
	assert.Equal(t, reason, *resp.RejectedReason)
	assert.Equal(t, 12, f.balance(t, testEmployeeID))
	assert.Empty(t, f.leaveDays(t, testEmployeeID))

	// A rejected request no longer blocks the dates.
	_, err = f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-10", "2025-03-14")
	assert.NoError(t, err)
}

func TestCancelLeaveRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 12)

	req, err := f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-10", "2025-03-14")
	require.NoError(t, err)

	err = f.svc.CancelLeaveRequest(ctx, req.ID, otherEmployee, testCompanyID)
	assert.ErrorIs(t, err, leave.ErrNotOwner)

	require.NoError(t, f.svc.CancelLeaveRequest(ctx, req.ID, testEmployeeID, testCompanyID))
	_, err = f.svc.GetLeaveRequest(ctx, req.ID, testCompanyID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	approved, err := f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-10", "2025-03-14")
	require.NoError(t, err)
	_, err = f.approve(approved.ID)
	require.NoError(t, err)

	err = f.svc.CancelLeaveRequest(ctx, approved.ID, testEmployeeID, testCompanyID)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestLeaveStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 12)

	current, err := f.submit(t, testEmployeeID, leave.LeaveTypeAnnual, "2025-03-10", "2025-03-14")
	require.NoError(t, err)
	_, err = f.approve(current.ID)
	require.NoError(t, err)

	_, err = f.submit(t, otherEmployee, leave.LeaveTypeSick, "2025-03-17", "2025-03-18")
	require.NoError(t, err)

	stats, err := f.svc.Stats(ctx, testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.ApprovedThisMonth)
	assert.Equal(t, 1, stats.OnLeaveToday)

	active, err := f.svc.ActiveLeavesToday(ctx, testCompanyID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, testEmployeeID, active[0].EmployeeID)

	status := string(leave.StatusPending)
	list, err := f.svc.ListLeaveRequests(ctx, leave.LeaveRequestFilter{CompanyID: testCompanyID, Status: &status})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.TotalCount)
}
