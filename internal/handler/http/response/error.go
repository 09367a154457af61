package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Policy violations carry their detail (distance, holiday label) in the wrapped message
	case errors.Is(err, attendance.ErrOutOfRange),
		errors.Is(err, attendance.ErrNonWorkingDay),
		errors.Is(err, attendance.ErrInvalidCorrection),
		errors.Is(err, leave.ErrNoWorkingDays),
		errors.Is(err, leave.ErrInsufficientBalance),
		errors.Is(err, leave.ErrReasonRequired),
		errors.Is(err, payroll.ErrNoPayrollSelected),
		errors.Is(err, holiday.ErrInvalidSpreadsheet),
		errors.Is(err, user.ErrCompanyIDRequired):
		PolicyViolation(w, err.Error())

	// State conflicts
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut),
		errors.Is(err, attendance.ErrNoClockInFound),
		errors.Is(err, attendance.ErrConflictingLeaveStatus),
		errors.Is(err, attendance.ErrPayrollLocked),
		errors.Is(err, leave.ErrOverlappingRequest),
		errors.Is(err, leave.ErrAlreadyProcessed),
		errors.Is(err, payroll.ErrCannotDeletePaid),
		errors.Is(err, payroll.ErrInvalidStatusTransition),
		errors.Is(err, employee.ErrEmployeeCodeExists),
		errors.Is(err, position.ErrPositionNameExists),
		errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, err.Error())

	// Subscription gate
	case errors.Is(err, subscription.ErrSubscriptionExpired),
		errors.Is(err, subscription.ErrSubscriptionInactive),
		errors.Is(err, subscription.ErrSubscriptionNotFound):
		SubscriptionRequired(w, err.Error())

	// Access
	case errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrEmployeeProfileRequired),
		errors.Is(err, leave.ErrNotOwner):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrUnknownRole):
		Unauthorized(w, "Invalid token")

	// Not found
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, position.ErrPositionNotFound):
		NotFound(w, "Position not found")
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
