package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/timeutil"
	"github.com/google/uuid"
)

type EmployeeServiceImpl struct {
	employeeRepo      employee.EmployeeRepository
	positions         position.ProfileProvider
	audit             audit.Recorder
	defaultLeaveQuota int
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	positions position.ProfileProvider,
	recorder audit.Recorder,
	defaultLeaveQuota int,
) employee.EmployeeService {
	if defaultLeaveQuota < 0 {
		defaultLeaveQuota = employee.DefaultLeaveQuota
	}
	return &EmployeeServiceImpl{
		employeeRepo:      employeeRepo,
		positions:         positions,
		audit:             recorder,
		defaultLeaveQuota: defaultLeaveQuota,
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.PositionID != nil {
		if _, err := s.positions.GetProfile(ctx, *req.PositionID, req.CompanyID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	joinDate, err := timeutil.ParseDate(req.JoinDate, time.UTC)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to parse join date: %w", err)
	}

	quota := s.defaultLeaveQuota
	if req.LeaveQuota != nil {
		quota = *req.LeaveQuota
	}

	newEmployee := employee.Employee{
		ID:               uuid.NewString(),
		CompanyID:        req.CompanyID,
		UserID:           req.UserID,
		EmployeeCode:     req.EmployeeCode,
		FullName:         req.FullName,
		PositionID:       req.PositionID,
		LeaveQuota:       quota,
		LeaveBalance:     quota,
		JoinDate:         joinDate,
		ContractType:     employee.ContractType(req.ContractType),
		EmploymentStatus: employee.EmploymentStatusActive,
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("Employee created", "employee_id", created.ID, "company_id", created.CompanyID)
	return employee.NewEmployeeResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string, companyID string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employee.NewEmployeeResponse(e))
	}
	return resp, nil
}

// UpdateLeaveQuota implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateLeaveQuota(ctx context.Context, req employee.UpdateLeaveQuotaRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	before, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, req.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.UpdateLeaveQuota(ctx, req.EmployeeID, req.CompanyID, req.LeaveQuota)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update leave quota: %w", err)
	}

	s.audit.Record(ctx, audit.Event{
		CompanyID: req.CompanyID,
		ActorID:   req.ActorID,
		Action:    audit.ActionLeaveQuotaUpdated,
		Target:    "employee:" + updated.ID,
		Details: map[string]any{
			"old_quota":   before.LeaveQuota,
			"new_quota":   updated.LeaveQuota,
			"old_balance": before.LeaveBalance,
			"new_balance": updated.LeaveBalance,
		},
	})
	return employee.NewEmployeeResponse(updated), nil
}
