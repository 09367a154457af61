package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandlerImpl{auditService: auditService}
}

// List implements AuditHandler.
func (h *auditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	result, err := h.auditService.List(r.Context(), audit.EventFilter{
		CompanyID: p.CompanyID,
		Action:    queryString(r, "action"),
		ActorID:   queryString(r, "actor_id"),
		Page:      queryIntOr(r, "page", 1),
		Limit:     queryIntOr(r, "limit", 20),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Events, pageMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}
