package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/cmlabs-hris/hris-core-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-core-go/internal/repository/postgresql"
	auditService "github.com/cmlabs-hris/hris-core-go/internal/service/audit"
	companyService "github.com/cmlabs-hris/hris-core-go/internal/service/company"
	holidayService "github.com/cmlabs-hris/hris-core-go/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/hris-core-go/internal/service/leave"
	subscriptionService "github.com/cmlabs-hris/hris-core-go/internal/service/subscription"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTenant(t *testing.T, setup *TestDatabaseSetup) *fixtures.SeededDataIDs {
	t.Helper()
	db := setup.DB
	ids, err := fixtures.SeedCompany(context.Background(), fixtures.Repositories{
		Companies:     postgresql.NewCompanyRepository(db),
		Subscriptions: postgresql.NewSubscriptionRepository(db),
		Positions:     postgresql.NewPositionRepository(db),
		Employees:     postgresql.NewEmployeeRepository(db),
		Holidays:      postgresql.NewHolidayRepository(db),
	}, "Integration Co", "Asia/Jakarta", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return ids
}

func clockInRecord(ids *fixtures.SeededDataIDs, day time.Time, at time.Time) attendance.Attendance {
	location := "-6.200000,106.800000"
	return attendance.Attendance{
		ID:              uuid.NewString(),
		CompanyID:       ids.CompanyID,
		EmployeeID:      ids.OwnerEmployeeID,
		Date:            day,
		ClockIn:         &at,
		Status:          attendance.StatusOnTime,
		ClockInLocation: &location,
	}
}

func TestSeedCompany_Postgres(t *testing.T) {
	setup := NewTestDatabase(t)
	ids := seedTenant(t, setup)

	assert.Len(t, ids.PositionIDs, 5)
	assert.Equal(t, 10, ids.HolidaysCreated)

	// Re-importing the same dates inserts nothing
	n, err := postgresql.NewHolidayRepository(setup.DB).CreateMany(context.Background(), fixtures.GetDefaultHolidays(ids.CompanyID, 2025))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestAttendance_UpsertClockInIsConditional(t *testing.T) {
	setup := NewTestDatabase(t)
	ids := seedTenant(t, setup)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()

	day := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	first, applied, err := repo.UpsertClockIn(ctx, clockInRecord(ids, day, day.Add(time.Hour)))
	require.NoError(t, err)
	assert.True(t, applied)
	require.NotNil(t, first.ClockIn)

	second, applied, err := repo.UpsertClockIn(ctx, clockInRecord(ids, day, day.Add(2*time.Hour)))
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.ClockIn.Equal(*first.ClockIn))
}

func TestAttendance_LockBlocksLeaveOverwrite(t *testing.T) {
	setup := NewTestDatabase(t)
	ids := seedTenant(t, setup)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()

	day := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	_, applied, err := repo.UpsertClockIn(ctx, clockInRecord(ids, day, day.Add(time.Hour)))
	require.NoError(t, err)
	require.True(t, applied)

	payrollID := uuid.NewString()
	locked, err := repo.LockRange(ctx, ids.OwnerEmployeeID, "2025-03-01", "2025-03-31", payrollID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), locked)

	applied, err = repo.UpsertLeaveDay(ctx, attendance.Attendance{
		ID:         uuid.NewString(),
		CompanyID:  ids.CompanyID,
		EmployeeID: ids.OwnerEmployeeID,
		Date:       day,
		Status:     attendance.StatusSick,
	})
	require.NoError(t, err)
	assert.False(t, applied)

	unlocked, err := repo.UnlockByPayroll(ctx, payrollID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unlocked)

	applied, err = repo.UpsertLeaveDay(ctx, attendance.Attendance{
		ID:         uuid.NewString(),
		CompanyID:  ids.CompanyID,
		EmployeeID: ids.OwnerEmployeeID,
		Date:       day,
		Status:     attendance.StatusSick,
	})
	require.NoError(t, err)
	assert.True(t, applied)

	stored, err := repo.GetByEmployeeAndDate(ctx, ids.OwnerEmployeeID, "2025-03-12")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, attendance.StatusSick, stored.Status)
	assert.False(t, stored.IsLate)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	setup := NewTestDatabase(t)
	ids := seedTenant(t, setup)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()

	day := time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC)
	boom := errors.New("boom")
	err := postgresql.NewTransactor(setup.DB).WithinTx(ctx, func(ctx context.Context) error {
		if _, _, err := repo.UpsertClockIn(ctx, clockInRecord(ids, day, day.Add(time.Hour))); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := repo.GetByEmployeeAndDate(ctx, ids.OwnerEmployeeID, "2025-03-13")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestSubscription_MarkExpired(t *testing.T) {
	setup := NewTestDatabase(t)
	ids := seedTenant(t, setup)
	repo := postgresql.NewSubscriptionRepository(setup.DB)
	ctx := context.Background()

	past := time.Now().Add(-24 * time.Hour)
	_, err := repo.Upsert(ctx, subscription.Subscription{
		ID:        uuid.NewString(),
		CompanyID: ids.CompanyID,
		Status:    subscription.StatusActive,
		StartDate: past.AddDate(0, -1, 0),
		EndDate:   &past,
	})
	require.NoError(t, err)

	expired, err := repo.MarkExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{ids.CompanyID}, expired)

	stored, err := repo.GetByCompanyID(ctx, ids.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusExpired, stored.Status)
}

func TestLeave_ConcurrentSubmitCreatesOneRequest(t *testing.T) {
	setup := NewTestDatabase(t)
	ids := seedTenant(t, setup)
	db := setup.DB

	auditSvc := auditService.NewAuditService(postgresql.NewAuditRepository(db))
	companySvc := companyService.NewCompanyService(postgresql.NewCompanyRepository(db), company.Defaults{Location: time.UTC, WorkStartTime: "08:00"}, auditSvc)
	svc := leaveService.NewLeaveService(
		postgresql.NewTransactor(db),
		postgresql.NewLeaveRequestRepository(db),
		postgresql.NewEmployeeRepository(db),
		postgresql.NewAttendanceRepository(db),
		companySvc,
		holidayService.NewHolidayService(postgresql.NewHolidayRepository(db)),
		subscriptionService.NewSubscriptionService(postgresql.NewSubscriptionRepository(db), nil, 0),
		auditSvc,
	)

	const workers = 4
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
			_, err := svc.SubmitLeaveRequest(context.Background(), leave.SubmitLeaveRequest{
				EmployeeID: ids.OwnerEmployeeID,
				CompanyID:  ids.CompanyID,
				Type:       leave.LeaveTypeAnnual,
				StartDate:  "2025-03-17",
				EndDate:    "2025-03-18",
				Reason:     "family event",
			})
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
	for _, err := range errs {
		assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
	}

	employeeID := ids.OwnerEmployeeID
	_, total, err := postgresql.NewLeaveRequestRepository(db).List(context.Background(), leave.LeaveRequestFilter{
		CompanyID:  ids.CompanyID,
		EmployeeID: &employeeID,
		Page:       1,
		Limit:      10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
