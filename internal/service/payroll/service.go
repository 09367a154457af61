package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/timeutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	transactor     database.Transactor
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	profiles       position.ProfileProvider
	settings       company.SettingsProvider
	gate           subscription.Gate
	audit          audit.Recorder
	now            func() time.Time
}

func NewPayrollService(
	transactor database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	profiles position.ProfileProvider,
	settings company.SettingsProvider,
	gate subscription.Gate,
	recorder audit.Recorder,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		transactor:     transactor,
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		profiles:       profiles,
		settings:       settings,
		gate:           gate,
		audit:          recorder,
		now:            time.Now,
	}
}

// ========== LIFECYCLE ==========

// GeneratePayrollPeriod implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayrollPeriod(ctx context.Context, req payroll.PeriodRequest) (payroll.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateResult{}, err
	}
	if err := s.gate.CheckActive(ctx, req.CompanyID); err != nil {
		return payroll.GenerateResult{}, err
	}

	employees, err := s.employeeRepo.ListPayrollEligible(ctx, req.CompanyID)
	if err != nil {
		return payroll.GenerateResult{}, fmt.Errorf("failed to get employees: %w", err)
	}

	result := payroll.GenerateResult{Month: req.Month, Year: req.Year}
	for _, emp := range employees {
		profile, err := s.profiles.GetProfile(ctx, *emp.PositionID, req.CompanyID)
		if err != nil {
			return result, fmt.Errorf("failed to get salary profile for employee %s: %w", emp.ID, err)
		}

		// Snapshots are frozen here; later profile edits never reach this record.
		created, err := s.payrollRepo.CreateDraftIfAbsent(ctx, payroll.PayrollRecord{
			ID:                         uuid.NewString(),
			CompanyID:                  req.CompanyID,
			EmployeeID:                 emp.ID,
			Month:                      req.Month,
			Year:                       req.Year,
			BasicSalary:                profile.BaseSalary,
			Allowances:                 profile.Allowance,
			MealAllowanceSnapshot:      profile.MealAllowance,
			TransportAllowanceSnapshot: profile.TransportAllowance,
			LateDeductionRateSnapshot:  profile.LateDeductionPerMin,
			HourlyRateSnapshot:         profile.HourlyRate,
			Deductions:                 decimal.Zero,
			NetSalary:                  decimal.Zero,
			Status:                     payroll.StatusDraft,
		})
		if err != nil {
			return result, fmt.Errorf("failed to create payroll draft for employee %s: %w", emp.ID, err)
		}
		if created {
			result.Created++
		} else {
			result.Skipped++
		}
	}

	slog.Info("Payroll period generated",
		"company_id", req.CompanyID,
		"month", req.Month,
		"year", req.Year,
		"created", result.Created,
		"skipped", result.Skipped,
	)
	s.audit.Record(ctx, audit.Event{
		CompanyID: req.CompanyID,
		ActorID:   req.ActorID,
		Action:    audit.ActionPayrollGenerated,
		Target:    fmt.Sprintf("payroll_period:%04d-%02d", req.Year, req.Month),
		Details: map[string]any{
			"created": result.Created,
			"skipped": result.Skipped,
		},
	})
	return result, nil
}

// CalculatePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) CalculatePayroll(ctx context.Context, req payroll.RecordActionRequest) (payroll.PayrollResponse, error) {
	if err := s.gate.CheckActive(ctx, req.CompanyID); err != nil {
		return payroll.PayrollResponse{}, err
	}

	settings, err := s.settings.Settings(ctx, req.CompanyID)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to load company settings: %w", err)
	}
	loc := settings.Location

	var record payroll.PayrollRecord
	var calc payroll.Calculation
	var locked int64
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		record, err = s.payrollRepo.GetByIDForUpdate(ctx, req.PayrollID, req.CompanyID)
		if err != nil {
			return err
		}
		if !record.Status.CanCalculate() {
			return fmt.Errorf("%w: cannot calculate a %s record", payroll.ErrInvalidStatusTransition, record.Status)
		}

		monthStart, monthEnd := timeutil.MonthRange(record.Year, time.Month(record.Month), loc)
		from, to := timeutil.FormatDate(monthStart, loc), timeutil.FormatDate(monthEnd, loc)

		records, err := s.attendanceRepo.ListInRange(ctx, record.EmployeeID, from, to, attendance.CompensableStatuses)
		if err != nil {
			return fmt.Errorf("failed to get attendance for %s..%s: %w", from, to, err)
		}
		var lateMinutes int
		for _, a := range records {
			lateMinutes += a.LateDurationMinutes
		}

		calc = record.Calculate(len(records), lateMinutes)
		record.Apply(calc)

		locked, err = s.attendanceRepo.LockRange(ctx, record.EmployeeID, from, to, record.ID)
		if err != nil {
			return fmt.Errorf("failed to lock attendance: %w", err)
		}
		if err := s.payrollRepo.SaveCalculation(ctx, record); err != nil {
			return fmt.Errorf("failed to save payroll calculation: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	slog.Info("Payroll calculated",
		"payroll_id", record.ID,
		"employee_id", record.EmployeeID,
		"total_attendance", calc.TotalAttendance,
		"total_late_minutes", calc.TotalLateMinutes,
		"net_salary", calc.NetSalary.String(),
		"locked_attendance", locked,
	)
	s.audit.Record(ctx, audit.Event{
		CompanyID: req.CompanyID,
		ActorID:   req.ActorID,
		Action:    audit.ActionPayrollCalculated,
		Target:    "payroll:" + record.ID,
		Details: map[string]any{
			"employee_id":        record.EmployeeID,
			"total_attendance":   calc.TotalAttendance,
			"total_late_minutes": calc.TotalLateMinutes,
			"net_salary":         calc.NetSalary.String(),
			"locked_attendance":  locked,
		},
	})
	return payroll.NewPayrollResponse(record), nil
}

// ApproveAllMonthly implements payroll.PayrollService.
func (s *PayrollServiceImpl) ApproveAllMonthly(ctx context.Context, req payroll.PeriodRequest) (payroll.BulkResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.BulkResult{}, err
	}
	if err := s.gate.CheckActive(ctx, req.CompanyID); err != nil {
		return payroll.BulkResult{}, err
	}

	updated, err := s.payrollRepo.ApproveAll(ctx, req.CompanyID, req.Month, req.Year)
	if err != nil {
		return payroll.BulkResult{}, fmt.Errorf("failed to approve payroll records: %w", err)
	}

	s.audit.Record(ctx, audit.Event{
		CompanyID: req.CompanyID,
		ActorID:   req.ActorID,
		Action:    audit.ActionPayrollApproved,
		Target:    fmt.Sprintf("payroll_period:%04d-%02d", req.Year, req.Month),
		Details:   map[string]any{"updated": updated},
	})
	return payroll.BulkResult{Updated: updated}, nil
}

// RecordBulkPayment implements payroll.PayrollService.
func (s *PayrollServiceImpl) RecordBulkPayment(ctx context.Context, req payroll.BulkPaymentRequest) (payroll.BulkResult, error) {
	if len(req.PayrollIDs) == 0 {
		return payroll.BulkResult{}, payroll.ErrNoPayrollSelected
	}
	if err := req.Validate(); err != nil {
		return payroll.BulkResult{}, err
	}
	if err := s.gate.CheckActive(ctx, req.CompanyID); err != nil {
		return payroll.BulkResult{}, err
	}

	method := req.PaymentMethod
	if method == "" {
		method = payroll.DefaultPaymentMethod
	}

	updated, err := s.payrollRepo.MarkPaid(ctx, req.CompanyID, req.PayrollIDs, s.now().UTC(), method)
	if err != nil {
		return payroll.BulkResult{}, fmt.Errorf("failed to mark payroll records as paid: %w", err)
	}

	s.audit.Record(ctx, audit.Event{
		CompanyID: req.CompanyID,
		ActorID:   req.ActorID,
		Action:    audit.ActionPayrollPaid,
		Target:    "payroll_batch",
		Details: map[string]any{
			"payroll_ids":    req.PayrollIDs,
			"payment_method": method,
			"updated":        updated,
		},
	})
	return payroll.BulkResult{Updated: updated}, nil
}

// DeletePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeletePayroll(ctx context.Context, req payroll.RecordActionRequest) error {
	if err := s.gate.CheckActive(ctx, req.CompanyID); err != nil {
		return err
	}

	var record payroll.PayrollRecord
	var unlocked int64
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		record, err = s.payrollRepo.GetByIDForUpdate(ctx, req.PayrollID, req.CompanyID)
		if err != nil {
			return err
		}
		if !record.Status.CanDelete() {
			return payroll.ErrCannotDeletePaid
		}

		unlocked, err = s.attendanceRepo.UnlockByPayroll(ctx, record.ID)
		if err != nil {
			return fmt.Errorf("failed to unlock attendance: %w", err)
		}
		if err := s.payrollRepo.Delete(ctx, record.ID, req.CompanyID); err != nil {
			return fmt.Errorf("failed to delete payroll record: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Event{
		CompanyID: req.CompanyID,
		ActorID:   req.ActorID,
		Action:    audit.ActionPayrollDeleted,
		Target:    "payroll:" + record.ID,
		Details: map[string]any{
			"employee_id":         record.EmployeeID,
			"month":               record.Month,
			"year":                record.Year,
			"status":              record.Status,
			"unlocked_attendance": unlocked,
		},
	})
	return nil
}

// ========== VIEWS ==========

// GetPayrollDetail implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayrollDetail(ctx context.Context, id string, companyID string) (payroll.PayrollDetailResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayrollDetailResponse{}, err
	}
	settings, err := s.settings.Settings(ctx, companyID)
	if err != nil {
		return payroll.PayrollDetailResponse{}, fmt.Errorf("failed to load company settings: %w", err)
	}

	records, err := s.attendanceRepo.ListByPayroll(ctx, record.ID)
	if err != nil {
		return payroll.PayrollDetailResponse{}, fmt.Errorf("failed to get locked attendance: %w", err)
	}

	resp := payroll.PayrollDetailResponse{
		PayrollResponse: payroll.NewPayrollResponse(record),
		Attendances:     make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, a := range records {
		resp.Attendances = append(resp.Attendances, attendance.NewAttendanceResponse(a, settings.Location))
	}
	return resp, nil
}

// ListPayrolls implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	return payroll.ListPayrollResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Payrolls:   mapToResponses(records),
	}, nil
}

// ListMyPayrolls implements payroll.PayrollService. Draft and review records stay hidden from employees.
func (s *PayrollServiceImpl) ListMyPayrolls(ctx context.Context, employeeID string, companyID string) ([]payroll.PayrollResponse, error) {
	records, err := s.payrollRepo.ListByEmployee(ctx, employeeID, companyID,
		[]payroll.PayrollStatus{payroll.StatusApproved, payroll.StatusPaid})
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	return mapToResponses(records), nil
}

// Stats implements payroll.PayrollService.
func (s *PayrollServiceImpl) Stats(ctx context.Context, companyID string, month, year *int) (payroll.StatsResponse, error) {
	totals, err := s.payrollRepo.Totals(ctx, companyID, month, year)
	if err != nil {
		return payroll.StatsResponse{}, fmt.Errorf("failed to get payroll totals: %w", err)
	}

	resp := payroll.StatsResponse{
		TotalPaid: decimal.Zero,
		ByStatus:  make([]payroll.StatusTotalResponse, 0, len(totals)),
	}
	for _, t := range totals {
		if t.Status == payroll.StatusPaid {
			resp.TotalPaid = resp.TotalPaid.Add(t.NetSalary)
		}
		resp.ByStatus = append(resp.ByStatus, payroll.StatusTotalResponse{
			Status:    t.Status,
			Count:     t.Count,
			NetSalary: t.NetSalary,
		})
	}
	return resp, nil
}

func mapToResponses(records []payroll.PayrollRecord) []payroll.PayrollResponse {
	resp := make([]payroll.PayrollResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, payroll.NewPayrollResponse(r))
	}
	return resp
}
