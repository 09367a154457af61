package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const monthLayout = "2006-01"

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	payrollRepo payroll.PayrollRepository
	leaves      leave.LeaveService
	settings    company.SettingsProvider
	now         func() time.Time
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	payrollRepo payroll.PayrollRepository,
	leaves leave.LeaveService,
	settings company.SettingsProvider,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		payrollRepo:         payrollRepo,
		leaves:              leaves,
		settings:            settings,
		now:                 time.Now,
	}
}

// parseMonth parses YYYY-MM in loc, defaults to the current month
func (s *DashboardServiceImpl) parseMonth(month string, loc *time.Location) (time.Time, error) {
	if month == "" {
		now := s.now().In(loc)
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), nil
	}
	parsed, err := time.ParseInLocation(monthLayout, month, loc)
	if err != nil {
		return time.Time{}, validator.ValidationErrors{{Field: "month", Message: "month must use YYYY-MM format"}}
	}
	return parsed, nil
}

func (s *DashboardServiceImpl) resolve(ctx context.Context, companyID, month string) (time.Time, *time.Location, error) {
	settings, err := s.settings.Settings(ctx, companyID)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("failed to load company settings: %w", err)
	}
	start, err := s.parseMonth(month, settings.Location)
	if err != nil {
		return time.Time{}, nil, err
	}
	return start, settings.Location, nil
}

// GetDashboard returns combined dashboard data using parallel goroutines
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, companyID string, month string) (*dashboard.DashboardResponse, error) {
	start, loc, err := s.resolve(ctx, companyID, month)
	if err != nil {
		return nil, err
	}

	var (
		attendanceSummary *dashboard.AttendanceSummaryResponse
		payrollSummary    *dashboard.PayrollSummaryResponse
		leaveStats        leave.StatsResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Attendance counts and work hours (1 query)
	g.Go(func() error {
		var err error
		attendanceSummary, err = s.attendanceSummary(gCtx, companyID, start, loc)
		return err
	})

	// 2. Payroll totals by status (1 query)
	g.Go(func() error {
		var err error
		payrollSummary, err = s.payrollSummary(gCtx, companyID, start)
		return err
	})

	// 3. Leave queue
	g.Go(func() error {
		var err error
		leaveStats, err = s.leaves.Stats(gCtx, companyID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.DashboardResponse{
		Month:      start.Format(monthLayout),
		Attendance: *attendanceSummary,
		Payroll:    *payrollSummary,
		Leave: dashboard.LeaveSummaryResponse{
			Pending:           leaveStats.Pending,
			ApprovedThisMonth: leaveStats.ApprovedThisMonth,
			OnLeaveToday:      leaveStats.OnLeaveToday,
		},
	}, nil
}

// GetAttendanceSummary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetAttendanceSummary(ctx context.Context, companyID string, month string) (*dashboard.AttendanceSummaryResponse, error) {
	start, loc, err := s.resolve(ctx, companyID, month)
	if err != nil {
		return nil, err
	}
	return s.attendanceSummary(ctx, companyID, start, loc)
}

// GetPayrollSummary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetPayrollSummary(ctx context.Context, companyID string, month string) (*dashboard.PayrollSummaryResponse, error) {
	start, _, err := s.resolve(ctx, companyID, month)
	if err != nil {
		return nil, err
	}
	return s.payrollSummary(ctx, companyID, start)
}

func (s *DashboardServiceImpl) attendanceSummary(ctx context.Context, companyID string, start time.Time, loc *time.Location) (*dashboard.AttendanceSummaryResponse, error) {
	from, to := timeutil.MonthRange(start.Year(), start.Month(), loc)
	agg, err := s.DashboardRepository.GetAttendanceAggregate(ctx, companyID, timeutil.FormatDate(from, loc), timeutil.FormatDate(to, loc))
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance aggregate: %w", err)
	}

	return &dashboard.AttendanceSummaryResponse{
		Month:          start.Format(monthLayout),
		OnTime:         agg.Counts[string(attendance.StatusOnTime)],
		Late:           agg.Counts[string(attendance.StatusLate)],
		Absent:         agg.Counts[string(attendance.StatusAbsent)],
		AnnualLeave:    agg.Counts[string(attendance.StatusAnnualLeave)],
		Sick:           agg.Counts[string(attendance.StatusSick)],
		Manual:         agg.Counts[string(attendance.StatusManual)],
		TotalWorkHours: agg.TotalWorkHours,
		Counts:         agg.Counts,
	}, nil
}

func (s *DashboardServiceImpl) payrollSummary(ctx context.Context, companyID string, start time.Time) (*dashboard.PayrollSummaryResponse, error) {
	month, year := int(start.Month()), start.Year()
	totals, err := s.payrollRepo.Totals(ctx, companyID, &month, &year)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll totals: %w", err)
	}

	resp := &dashboard.PayrollSummaryResponse{
		Month:    start.Format(monthLayout),
		ByStatus: make(map[string]dashboard.PayrollStatusSummary, len(totals)),
		Total:    decimal.Zero,
	}
	for _, t := range totals {
		resp.ByStatus[string(t.Status)] = dashboard.PayrollStatusSummary{Count: t.Count, NetSalary: t.NetSalary}
		resp.Total = resp.Total.Add(t.NetSalary)
	}
	return resp, nil
}
