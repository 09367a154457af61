package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-core-go/internal/repository/memory"
	auditsvc "github.com/cmlabs-hris/hris-core-go/internal/service/audit"
	companysvc "github.com/cmlabs-hris/hris-core-go/internal/service/company"
	holidaysvc "github.com/cmlabs-hris/hris-core-go/internal/service/holiday"
	leavesvc "github.com/cmlabs-hris/hris-core-go/internal/service/leave"
	subscriptionsvc "github.com/cmlabs-hris/hris-core-go/internal/service/subscription"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCompanyID = "company-1"

func newTestService(t *testing.T) (dashboard.DashboardService, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	_, err := store.Companies().Create(ctx, company.Company{
		ID:            testCompanyID,
		Name:          "Acme",
		Timezone:      "Asia/Jakarta",
		WorkStartTime: "08:00",
	})
	require.NoError(t, err)

	recorder := auditsvc.NewAuditService(store.Audits())
	settings := companysvc.NewCompanyService(store.Companies(), company.Defaults{Location: time.UTC, WorkStartTime: "08:00"}, recorder)
	holidays := holidaysvc.NewHolidayService(store.Holidays())
	gate := subscriptionsvc.NewSubscriptionService(store.Subscriptions(), nil, 0)
	leaves := leavesvc.NewLeaveService(store, store.Leaves(), store.Employees(), store.Attendances(), settings, holidays, gate, recorder)

	return NewDashboardService(store.Dashboard(), store.Payrolls(), leaves, settings), store
}

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func hours(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func seedAttendance(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	rows := []attendance.Attendance{
		{ID: "a-1", EmployeeID: "e-1", Date: day(3), Status: attendance.StatusOnTime, WorkHours: hours("8.00")},
		{ID: "a-2", EmployeeID: "e-1", Date: day(4), Status: attendance.StatusLate, IsLate: true, LateDurationMinutes: 12, WorkHours: hours("7.50")},
		{ID: "a-3", EmployeeID: "e-2", Date: day(3), Status: attendance.StatusOnTime},
		// outside the month
		{ID: "a-4", EmployeeID: "e-2", Date: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), Status: attendance.StatusOnTime, WorkHours: hours("9.00")},
	}
	for _, a := range rows {
		a.CompanyID = testCompanyID
		_, created, err := store.Attendances().UpsertClockIn(ctx, a)
		require.NoError(t, err)
		require.True(t, created)
	}

	applied, err := store.Attendances().UpsertLeaveDay(ctx, attendance.Attendance{
		ID: "a-5", CompanyID: testCompanyID, EmployeeID: "e-2", Date: day(5), Status: attendance.StatusSick,
	})
	require.NoError(t, err)
	require.True(t, applied)

	// another tenant
	_, _, err = store.Attendances().UpsertClockIn(ctx, attendance.Attendance{
		ID: "a-6", CompanyID: "company-2", EmployeeID: "e-9", Date: day(3), Status: attendance.StatusLate,
	})
	require.NoError(t, err)
}

func seedPayroll(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	records := []payroll.PayrollRecord{
		{ID: "p-1", EmployeeID: "e-1", Month: 3, Year: 2025, Status: payroll.StatusDraft, NetSalary: decimal.NewFromInt(5_000_000)},
		{ID: "p-2", EmployeeID: "e-2", Month: 3, Year: 2025, Status: payroll.StatusPaid, NetSalary: decimal.NewFromInt(7_500_000)},
		{ID: "p-3", EmployeeID: "e-3", Month: 3, Year: 2025, Status: payroll.StatusPaid, NetSalary: decimal.NewFromInt(2_500_000)},
		{ID: "p-4", EmployeeID: "e-1", Month: 2, Year: 2025, Status: payroll.StatusPaid, NetSalary: decimal.NewFromInt(1_000_000)},
	}
	for _, p := range records {
		p.CompanyID = testCompanyID
		created, err := store.Payrolls().CreateDraftIfAbsent(ctx, p)
		require.NoError(t, err)
		require.True(t, created)
	}
}

func TestGetAttendanceSummary(t *testing.T) {
	svc, store := newTestService(t)
	seedAttendance(t, store)

	got, err := svc.GetAttendanceSummary(context.Background(), testCompanyID, "2025-03")
	require.NoError(t, err)

	assert.Equal(t, "2025-03", got.Month)
	assert.Equal(t, int64(2), got.OnTime)
	assert.Equal(t, int64(1), got.Late)
	assert.Equal(t, int64(1), got.Sick)
	assert.Equal(t, int64(0), got.Absent)
	assert.True(t, decimal.RequireFromString("15.5").Equal(got.TotalWorkHours), "got %s", got.TotalWorkHours)
}

func TestGetPayrollSummary(t *testing.T) {
	svc, store := newTestService(t)
	seedPayroll(t, store)

	got, err := svc.GetPayrollSummary(context.Background(), testCompanyID, "2025-03")
	require.NoError(t, err)

	require.Len(t, got.ByStatus, 2)
	assert.Equal(t, 1, got.ByStatus[string(payroll.StatusDraft)].Count)
	assert.Equal(t, 2, got.ByStatus[string(payroll.StatusPaid)].Count)
	assert.True(t, decimal.NewFromInt(10_000_000).Equal(got.ByStatus[string(payroll.StatusPaid)].NetSalary))
	assert.True(t, decimal.NewFromInt(15_000_000).Equal(got.Total))
}

func TestInvalidMonth(t *testing.T) {
	svc, _ := newTestService(t)

	for _, month := range []string{"2025-13", "March", "2025/03"} {
		_, err := svc.GetDashboard(context.Background(), testCompanyID, month)
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs, month)
		assert.Equal(t, "month", verrs[0].Field)
	}
}

func TestUnknownCompany(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetPayrollSummary(context.Background(), "missing", "2025-03")
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestGetDashboard(t *testing.T) {
	svc, store := newTestService(t)
	seedAttendance(t, store)
	seedPayroll(t, store)

	_, err := store.Leaves().Create(context.Background(), leave.LeaveRequest{
		ID:         "l-1",
		CompanyID:  testCompanyID,
		EmployeeID: "e-1",
		Type:       leave.LeaveTypeAnnual,
		StartDate:  day(20),
		EndDate:    day(21).Add(24*time.Hour - time.Millisecond),
		DaysTaken:  2,
		Reason:     "family event",
		Status:     leave.StatusPending,
	})
	require.NoError(t, err)

	got, err := svc.GetDashboard(context.Background(), testCompanyID, "2025-03")
	require.NoError(t, err)

	assert.Equal(t, "2025-03", got.Month)
	assert.Equal(t, int64(2), got.Attendance.OnTime)
	assert.True(t, decimal.NewFromInt(15_000_000).Equal(got.Payroll.Total))
	assert.Equal(t, 1, got.Leave.Pending)
}
