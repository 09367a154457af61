package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/timeutil"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	transactor database.Transactor
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	attendance.AttendanceRepository
	settings    company.SettingsProvider
	gate        subscription.Gate
	audit       audit.Recorder
	workingDays *WorkingDaysCalculator
	now         func() time.Time
}

func NewLeaveService(
	transactor database.Transactor,
	leaveRequestRepository leave.LeaveRequestRepository,
	employeeRepository employee.EmployeeRepository,
	attendanceRepository attendance.AttendanceRepository,
	settings company.SettingsProvider,
	calendar holiday.Calendar,
	gate subscription.Gate,
	recorder audit.Recorder,
) leave.LeaveService {
	return &LeaveServiceImpl{
		transactor:             transactor,
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
		AttendanceRepository:   attendanceRepository,
		settings:               settings,
		gate:                   gate,
		audit:                  recorder,
		workingDays:            NewWorkingDaysCalculator(calendar),
		now:                    time.Now,
	}
}

// SubmitLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) SubmitLeaveRequest(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := l.gate.CheckActive(ctx, req.CompanyID); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	settings, err := l.settings.Settings(ctx, req.CompanyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to load company settings: %w", err)
	}
	loc := settings.Location

	startDate, err := timeutil.ParseDate(req.StartDate, loc)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := timeutil.ParseDate(req.EndDate, loc)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}
	startDate = timeutil.StartOfDay(startDate, loc)
	endDate = timeutil.EndOfDay(endDate, loc)

	// The employee row lock serializes submissions of the same employee
	// so the overlap check and the insert cannot interleave.
	var created leave.LeaveRequest
	err = l.transactor.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := l.EmployeeRepository.GetByIDForUpdate(ctx, req.EmployeeID, req.CompanyID)
		if err != nil {
			return err
		}

		hasOverlap, err := l.LeaveRequestRepository.HasOverlap(ctx, emp.ID, startDate, endDate)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave requests: %w", err)
		}
		if hasOverlap {
			return leave.ErrOverlappingRequest
		}

		daysTaken, err := l.workingDays.Calculate(ctx, req.CompanyID, startDate, endDate, loc)
		if err != nil {
			return fmt.Errorf("failed to calculate working days: %w", err)
		}
		if daysTaken == 0 {
			return leave.ErrNoWorkingDays
		}

		if req.Type.DeductsBalance() && emp.LeaveBalance < daysTaken {
			return fmt.Errorf("%w: requested %d day(s), balance is %d",
				leave.ErrInsufficientBalance, daysTaken, emp.LeaveBalance)
		}

		created, err = l.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
			ID:         uuid.NewString(),
			CompanyID:  req.CompanyID,
			EmployeeID: emp.ID,
			Type:       req.Type,
			StartDate:  startDate,
			EndDate:    endDate,
			DaysTaken:  daysTaken,
			Reason:     strings.TrimSpace(req.Reason),
			Status:     leave.StatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request submitted",
		"leave_id", created.ID,
		"employee_id", created.EmployeeID,
		"type", created.Type,
		"days_taken", created.DaysTaken,
	)
	return leave.NewLeaveRequestResponse(created, loc), nil
}

// ReviewLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ReviewLeaveRequest(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := l.gate.CheckActive(ctx, req.CompanyID); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, req.RequestID, req.CompanyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrAlreadyProcessed
	}

	settings, err := l.settings.Settings(ctx, req.CompanyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to load company settings: %w", err)
	}
	loc := settings.Location

	reviewedAt := l.now()
	reviewer := req.ReviewerID
	request.Status = req.Decision
	request.ReviewedBy = &reviewer
	request.ReviewedAt = &reviewedAt

	if req.Decision == leave.StatusRejected {
		if req.RejectedReason == nil || strings.TrimSpace(*req.RejectedReason) == "" {
			return leave.LeaveRequestResponse{}, leave.ErrReasonRequired
		}
		reason := strings.TrimSpace(*req.RejectedReason)
		request.RejectedReason = &reason

		applied, err := l.LeaveRequestRepository.Review(ctx, request)
		if err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to reject leave request: %w", err)
		}
		if !applied {
			return leave.LeaveRequestResponse{}, leave.ErrAlreadyProcessed
		}
		l.recordReview(ctx, request, audit.ActionLeaveRejected, 0)
		return leave.NewLeaveRequestResponse(request, loc), nil
	}

	// Balance, status and every attendance day commit together or not at all.
	days := timeutil.Weekdays(request.StartDate, request.EndDate, loc)
	err = l.transactor.WithinTx(ctx, func(ctx context.Context) error {
		applied, err := l.LeaveRequestRepository.Review(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to approve leave request: %w", err)
		}
		if !applied {
			return leave.ErrAlreadyProcessed
		}

		if request.Type.DeductsBalance() {
			err := l.EmployeeRepository.DeductLeaveBalance(ctx, request.EmployeeID, request.CompanyID, request.DaysTaken)
			if errors.Is(err, employee.ErrInsufficientLeaveBalance) {
				return leave.ErrInsufficientBalance
			}
			if err != nil {
				return fmt.Errorf("failed to deduct leave balance: %w", err)
			}
		}

		leaveID := request.ID
		for _, day := range days {
			applied, err := l.AttendanceRepository.UpsertLeaveDay(ctx, attendance.Attendance{
				ID:         uuid.NewString(),
				CompanyID:  request.CompanyID,
				EmployeeID: request.EmployeeID,
				Date:       day,
				Status:     request.Type.AttendanceStatus(),
				LeaveID:    &leaveID,
			})
			if err != nil {
				return fmt.Errorf("failed to write leave attendance for %s: %w", timeutil.FormatDate(day, loc), err)
			}
			if !applied {
				return fmt.Errorf("%w: %s", attendance.ErrPayrollLocked, timeutil.FormatDate(day, loc))
			}
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	l.recordReview(ctx, request, audit.ActionLeaveApproved, len(days))
	return leave.NewLeaveRequestResponse(request, loc), nil
}

func (l *LeaveServiceImpl) recordReview(ctx context.Context, request leave.LeaveRequest, action audit.Action, attendanceDays int) {
	details := map[string]any{
		"employee_id": request.EmployeeID,
		"type":        request.Type,
		"days_taken":  request.DaysTaken,
	}
	if request.RejectedReason != nil {
		details["reason"] = *request.RejectedReason
	}
	if action == audit.ActionLeaveApproved {
		details["attendance_days"] = attendanceDays
	}

	l.audit.Record(ctx, audit.Event{
		CompanyID: request.CompanyID,
		ActorID:   *request.ReviewedBy,
		Action:    action,
		Target:    "leave_request:" + request.ID,
		Details:   details,
	})
}

// CancelLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CancelLeaveRequest(ctx context.Context, requestID string, employeeID string, companyID string) error {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID, companyID)
	if err != nil {
		return err
	}
	if request.EmployeeID != employeeID {
		return leave.ErrNotOwner
	}
	if request.Status != leave.StatusPending {
		return leave.ErrAlreadyProcessed
	}

	applied, err := l.LeaveRequestRepository.DeletePending(ctx, requestID, companyID)
	if err != nil {
		return fmt.Errorf("failed to cancel leave request: %w", err)
	}
	if !applied {
		return leave.ErrAlreadyProcessed
	}

	slog.Info("Leave request cancelled", "leave_id", requestID, "employee_id", employeeID)
	return nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, requestID string, companyID string) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID, companyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	settings, err := l.settings.Settings(ctx, companyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to load company settings: %w", err)
	}
	return leave.NewLeaveRequestResponse(request, settings.Location), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	settings, err := l.settings.Settings(ctx, filter.CompanyID)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to load company settings: %w", err)
	}

	requests, total, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	resp := leave.ListLeaveRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Requests:   make([]leave.LeaveRequestResponse, 0, len(requests)),
	}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, leave.NewLeaveRequestResponse(r, settings.Location))
	}
	return resp, nil
}

// ActiveLeavesToday implements leave.LeaveService.
func (l *LeaveServiceImpl) ActiveLeavesToday(ctx context.Context, companyID string) ([]leave.LeaveRequestResponse, error) {
	settings, err := l.settings.Settings(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company settings: %w", err)
	}

	requests, err := l.LeaveRequestRepository.ListApprovedOn(ctx, companyID, l.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list active leaves: %w", err)
	}

	resp := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		resp = append(resp, leave.NewLeaveRequestResponse(r, settings.Location))
	}
	return resp, nil
}

// Stats implements leave.LeaveService.
func (l *LeaveServiceImpl) Stats(ctx context.Context, companyID string) (leave.StatsResponse, error) {
	settings, err := l.settings.Settings(ctx, companyID)
	if err != nil {
		return leave.StatsResponse{}, fmt.Errorf("failed to load company settings: %w", err)
	}

	now := l.now().In(settings.Location)
	monthStart, monthEnd := timeutil.MonthRange(now.Year(), now.Month(), settings.Location)

	stats, err := l.LeaveRequestRepository.Stats(ctx, companyID, monthStart, monthEnd)
	if err != nil {
		return leave.StatsResponse{}, fmt.Errorf("failed to get leave stats: %w", err)
	}
	active, err := l.LeaveRequestRepository.ListApprovedOn(ctx, companyID, now)
	if err != nil {
		return leave.StatsResponse{}, fmt.Errorf("failed to list active leaves: %w", err)
	}

	return leave.StatsResponse{
		Pending:           stats.Pending,
		ApprovedThisMonth: stats.ApprovedThisMonth,
		OnLeaveToday:      len(active),
	}, nil
}
