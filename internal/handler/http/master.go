package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
)

// MasterHandler serves the per-tenant salary profiles (positions).
type MasterHandler interface {
	CreatePosition(w http.ResponseWriter, r *http.Request)
	UpdatePosition(w http.ResponseWriter, r *http.Request)
	GetPosition(w http.ResponseWriter, r *http.Request)
	ListPositions(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	positionService position.PositionService
}

func NewMasterHandler(positionService position.PositionService) MasterHandler {
	return &masterHandlerImpl{
		positionService: positionService,
	}
}

// CreatePosition implements MasterHandler.
func (h *masterHandlerImpl) CreatePosition(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req position.CreatePositionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.CompanyID = p.CompanyID

	result, err := h.positionService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Position created successfully", result)
}

// UpdatePosition implements MasterHandler.
func (h *masterHandlerImpl) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, position.ErrPositionNotFound)
	if !ok {
		return
	}

	var req position.UpdatePositionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id
	req.CompanyID = p.CompanyID

	result, err := h.positionService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position updated successfully", result)
}

// GetPosition implements MasterHandler.
func (h *masterHandlerImpl) GetPosition(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, position.ErrPositionNotFound)
	if !ok {
		return
	}

	result, err := h.positionService.Get(r.Context(), id, p.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPositions implements MasterHandler.
func (h *masterHandlerImpl) ListPositions(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	result, err := h.positionService.List(r.Context(), p.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
