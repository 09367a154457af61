package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEmployee(t *testing.T, s *Store, balance int) {
	t.Helper()
	_, err := s.Employees().Create(context.Background(), employee.Employee{
		ID:           "e1",
		CompanyID:    "c1",
		EmployeeCode: "EMP-001",
		FullName:     "Budi",
		LeaveBalance: balance,
	})
	require.NoError(t, err)
}

func TestWithinTx_RollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedEmployee(t, s, 10)

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, s.Employees().DeductLeaveBalance(ctx, "e1", "c1", 4))
		// Nested calls join the outer transaction.
		return s.WithinTx(ctx, func(ctx context.Context) error { return boom })
	})
	require.ErrorIs(t, err, boom)

	e, err := s.Employees().GetByID(ctx, "e1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 10, e.LeaveBalance)

	require.NoError(t, s.WithinTx(ctx, func(ctx context.Context) error {
		return s.Employees().DeductLeaveBalance(ctx, "e1", "c1", 4)
	}))
	e, err = s.Employees().GetByID(ctx, "e1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 6, e.LeaveBalance)
}

func TestFailAfter(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedEmployee(t, s, 10)

	s.FailAfter("employee.DeductLeaveBalance", 1, assert.AnError)
	assert.NoError(t, s.Employees().DeductLeaveBalance(ctx, "e1", "c1", 1))
	assert.ErrorIs(t, s.Employees().DeductLeaveBalance(ctx, "e1", "c1", 1), assert.AnError)
}

func TestDeductLeaveBalance_Conditional(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedEmployee(t, s, 2)

	assert.ErrorIs(t, s.Employees().DeductLeaveBalance(ctx, "e1", "c1", 3), employee.ErrInsufficientLeaveBalance)
	assert.ErrorIs(t, s.Employees().DeductLeaveBalance(ctx, "e1", "c2", 1), employee.ErrEmployeeNotFound)
	assert.NoError(t, s.Employees().DeductLeaveBalance(ctx, "e1", "c1", 2))
}

func TestUpsertClockIn_Guards(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.Attendances()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	in := day.Add(8 * time.Hour)

	first := attendance.Attendance{ID: "a1", CompanyID: "c1", EmployeeID: "e1", Date: day, ClockIn: &in, Status: attendance.StatusOnTime}
	got, applied, err := repo.UpsertClockIn(ctx, first)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "a1", got.ID)

	second := first
	second.ID = "a2"
	got, applied, err = repo.UpsertClockIn(ctx, second)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, "a1", got.ID)

	n, err := repo.LockRange(ctx, "e1", "2025-03-01", "2025-03-31", "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	applied, err = repo.UpsertLeaveDay(ctx, attendance.Attendance{ID: "a3", CompanyID: "c1", EmployeeID: "e1", Date: day, Status: attendance.StatusSick})
	require.NoError(t, err)
	assert.False(t, applied)

	n, err = repo.UnlockByPayroll(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	applied, err = repo.UpsertLeaveDay(ctx, attendance.Attendance{ID: "a3", CompanyID: "c1", EmployeeID: "e1", Date: day, Status: attendance.StatusSick})
	require.NoError(t, err)
	assert.True(t, applied)

	rec, err := repo.GetByEmployeeAndDate(ctx, "e1", "2025-03-10")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "a1", rec.ID)
	assert.Equal(t, attendance.StatusSick, rec.Status)
}
