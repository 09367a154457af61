package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	ActiveToday(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	p, employeeID, ok := employeePrincipal(w, r)
	if !ok {
		return
	}

	var req leave.SubmitLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Override any value from the body
	req.EmployeeID = employeeID
	req.CompanyID = p.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.SubmitLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", result)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	filter := leaveFilterFromQuery(r)
	filter.CompanyID = p.CompanyID
	filter.EmployeeID = queryString(r, "employee_id")

	l.list(w, r, filter)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	p, employeeID, ok := employeePrincipal(w, r)
	if !ok {
		return
	}

	filter := leaveFilterFromQuery(r)
	filter.CompanyID = p.CompanyID
	filter.EmployeeID = &employeeID

	l.list(w, r, filter)
}

func (l *LeaveHandlerImpl) list(w http.ResponseWriter, r *http.Request, filter leave.LeaveRequestFilter) {
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.ListLeaveRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, pageMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

func leaveFilterFromQuery(r *http.Request) leave.LeaveRequestFilter {
	return leave.LeaveRequestFilter{
		Status: queryString(r, "status"),
		Type:   queryString(r, "type"),
		Page:   queryIntOr(r, "page", 1),
		Limit:  queryIntOr(r, "limit", 20),
	}
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, leave.ErrLeaveRequestNotFound)
	if !ok {
		return
	}

	result, err := l.leaveService.GetLeaveRequest(r.Context(), id, p.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !p.Can(user.PermissionLeaveViewAll) && (p.EmployeeID == nil || *p.EmployeeID != result.EmployeeID) {
		response.HandleError(w, leave.ErrLeaveRequestNotFound)
		return
	}

	response.Success(w, result)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, leave.ErrLeaveRequestNotFound)
	if !ok {
		return
	}

	req := leave.ReviewLeaveRequest{
		RequestID:  id,
		CompanyID:  p.CompanyID,
		ReviewerID: p.UserID,
		Decision:   leave.StatusApproved,
	}
	l.review(w, r, req, "Leave request approved successfully")
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, leave.ErrLeaveRequestNotFound)
	if !ok {
		return
	}

	var body struct {
		Reason *string `json:"reason"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	req := leave.ReviewLeaveRequest{
		RequestID:      id,
		CompanyID:      p.CompanyID,
		ReviewerID:     p.UserID,
		Decision:       leave.StatusRejected,
		RejectedReason: body.Reason,
	}
	l.review(w, r, req, "Leave request rejected successfully")
}

func (l *LeaveHandlerImpl) review(w http.ResponseWriter, r *http.Request, req leave.ReviewLeaveRequest, message string) {
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.ReviewLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	p, employeeID, ok := employeePrincipal(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, leave.ErrLeaveRequestNotFound)
	if !ok {
		return
	}

	if err := l.leaveService.CancelLeaveRequest(r.Context(), id, employeeID, p.CompanyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled successfully", nil)
}

// ActiveToday implements LeaveHandler.
func (l *LeaveHandlerImpl) ActiveToday(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	result, err := l.leaveService.ActiveLeavesToday(r.Context(), p.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Stats implements LeaveHandler.
func (l *LeaveHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	result, err := l.leaveService.Stats(r.Context(), p.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
