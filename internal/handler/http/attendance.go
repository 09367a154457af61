package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Correct(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	h.clock(w, r, attendance.ClockIn)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.clock(w, r, attendance.ClockOut)
}

func (h *attendanceHandlerImpl) clock(w http.ResponseWriter, r *http.Request, clockType attendance.ClockType) {
	p, employeeID, ok := employeePrincipal(w, r)
	if !ok {
		return
	}

	var req attendance.ClockEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Identity always comes from the token, event time from the server
	req.EmployeeID = employeeID
	req.CompanyID = p.CompanyID
	req.Type = clockType
	req.Timestamp = nil

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.RecordClockEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Clocked in successfully"
	if clockType == attendance.ClockOut {
		message = "Clocked out successfully"
	}
	response.SuccessWithMessage(w, message, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	filter := attendanceFilterFromQuery(r)
	filter.CompanyID = p.CompanyID
	filter.EmployeeID = queryString(r, "employee_id")

	h.list(w, r, filter)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	p, employeeID, ok := employeePrincipal(w, r)
	if !ok {
		return
	}

	filter := attendanceFilterFromQuery(r)
	filter.CompanyID = p.CompanyID
	filter.EmployeeID = &employeeID

	h.list(w, r, filter)
}

func (h *attendanceHandlerImpl) list(w http.ResponseWriter, r *http.Request, filter attendance.AttendanceFilter) {
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendances, pageMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

func attendanceFilterFromQuery(r *http.Request) attendance.AttendanceFilter {
	return attendance.AttendanceFilter{
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		Status:    queryString(r, "status"),
		Page:      queryIntOr(r, "page", 1),
		Limit:     queryIntOr(r, "limit", 20),
	}
}

// Get implements AttendanceHandler. Callers without attendance.view_all only see their own records.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, attendance.ErrAttendanceNotFound)
	if !ok {
		return
	}

	result, err := h.attendanceService.GetAttendance(r.Context(), id, p.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !p.Can(user.PermissionAttendanceViewAll) && (p.EmployeeID == nil || *p.EmployeeID != result.EmployeeID) {
		response.HandleError(w, attendance.ErrAttendanceNotFound)
		return
	}

	response.Success(w, result)
}

// Correct implements AttendanceHandler.
func (h *attendanceHandlerImpl) Correct(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, attendance.ErrAttendanceNotFound)
	if !ok {
		return
	}

	var req attendance.CorrectAttendanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id
	req.CompanyID = p.CompanyID
	req.ActorID = p.UserID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CorrectAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance corrected successfully", result)
}
