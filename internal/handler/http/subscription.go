package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type SubscriptionHandler interface {
	GetMySubscription(w http.ResponseWriter, r *http.Request)
	// Superadmin
	GetCompanySubscription(w http.ResponseWriter, r *http.Request)
	SweepExpired(w http.ResponseWriter, r *http.Request)
}

type subscriptionHandlerImpl struct {
	subscriptionService subscription.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService subscription.SubscriptionService) SubscriptionHandler {
	return &subscriptionHandlerImpl{
		subscriptionService: subscriptionService,
	}
}

// GetMySubscription returns the gate state of the caller's tenant.
func (h *subscriptionHandlerImpl) GetMySubscription(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	state, err := h.subscriptionService.State(r.Context(), p.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, state)
}

func (h *subscriptionHandlerImpl) GetCompanySubscription(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	if !validator.IsValidUUID(companyID) {
		response.HandleError(w, company.ErrCompanyNotFound)
		return
	}

	state, err := h.subscriptionService.State(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, state)
}

// SweepExpired runs the expiry job on demand.
func (h *subscriptionHandlerImpl) SweepExpired(w http.ResponseWriter, r *http.Request) {
	if err := h.subscriptionService.SweepExpired(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expired subscriptions swept", nil)
}
