package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
)

type CompanyHandler interface {
	GetMy(w http.ResponseWriter, r *http.Request)
	UpdateMy(w http.ResponseWriter, r *http.Request)
}

type companyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &companyHandlerImpl{
		companyService: companyService,
	}
}

// GetMy implements CompanyHandler.
func (c *companyHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	result, err := c.companyService.GetByID(r.Context(), p.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateMy implements CompanyHandler. Updates timezone, work start time and office geofence.
func (c *companyHandlerImpl) UpdateMy(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req company.UpdateSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ActorID = p.UserID

	result, err := c.companyService.UpdateSettings(r.Context(), p.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company settings updated successfully", result)
}
