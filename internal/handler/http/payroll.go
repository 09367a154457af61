package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Calculate(w http.ResponseWriter, r *http.Request)
	ApproveAll(w http.ResponseWriter, r *http.Request)
	BulkPay(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMyPayrolls(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// Generate implements PayrollHandler.
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req payroll.PeriodRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.CompanyID = p.CompanyID
	req.ActorID = p.UserID

	result, err := h.payrollService.GeneratePayrollPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, fmt.Sprintf("Generated %d payroll records, skipped %d", result.Created, result.Skipped), result)
}

// Calculate implements PayrollHandler.
func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, payroll.ErrPayrollRecordNotFound)
	if !ok {
		return
	}

	result, err := h.payrollService.CalculatePayroll(r.Context(), payroll.RecordActionRequest{
		PayrollID: id,
		CompanyID: p.CompanyID,
		ActorID:   p.UserID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll calculated successfully", result)
}

// ApproveAll implements PayrollHandler.
func (h *payrollHandlerImpl) ApproveAll(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req payroll.PeriodRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.CompanyID = p.CompanyID
	req.ActorID = p.UserID

	result, err := h.payrollService.ApproveAllMonthly(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("%d payroll records approved", result.Updated), result)
}

// BulkPay implements PayrollHandler.
func (h *payrollHandlerImpl) BulkPay(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req payroll.BulkPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.CompanyID = p.CompanyID
	req.ActorID = p.UserID

	result, err := h.payrollService.RecordBulkPayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("%d payroll records marked as paid", result.Updated), result)
}

// Delete implements PayrollHandler.
func (h *payrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, payroll.ErrPayrollRecordNotFound)
	if !ok {
		return
	}

	err := h.payrollService.DeletePayroll(r.Context(), payroll.RecordActionRequest{
		PayrollID: id,
		CompanyID: p.CompanyID,
		ActorID:   p.UserID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record deleted successfully", nil)
}

// List implements PayrollHandler.
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	filter := payroll.PayrollFilter{
		CompanyID:  p.CompanyID,
		EmployeeID: queryString(r, "employee_id"),
		Month:      queryInt(r, "month"),
		Year:       queryInt(r, "year"),
		Status:     queryString(r, "status"),
		Page:       queryIntOr(r, "page", 1),
		Limit:      queryIntOr(r, "limit", 20),
	}

	result, err := h.payrollService.ListPayrolls(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Payrolls, pageMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// Get implements PayrollHandler.
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, payroll.ErrPayrollRecordNotFound)
	if !ok {
		return
	}

	result, err := h.payrollService.GetPayrollDetail(r.Context(), id, p.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !p.Can(user.PermissionPayrollViewAll) &&
		(p.EmployeeID == nil || *p.EmployeeID != result.EmployeeID || !result.Status.VisibleToEmployee()) {
		response.HandleError(w, payroll.ErrPayrollRecordNotFound)
		return
	}

	response.Success(w, result)
}

// GetMyPayrolls implements PayrollHandler.
func (h *payrollHandlerImpl) GetMyPayrolls(w http.ResponseWriter, r *http.Request) {
	p, employeeID, ok := employeePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.ListMyPayrolls(r.Context(), employeeID, p.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Stats implements PayrollHandler.
func (h *payrollHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.Stats(r.Context(), p.CompanyID, queryInt(r, "month"), queryInt(r, "year"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements PayrollHandler. Sends the period as an XLSX workbook.
func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	month, year := queryIntOr(r, "month", 0), queryIntOr(r, "year", 0)

	var buf bytes.Buffer
	if err := h.payrollService.ExportPeriod(r.Context(), p.CompanyID, month, year, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, xlsxContentType, fmt.Sprintf("payroll-%04d-%02d.xlsx", year, month), buf.Bytes())
}
