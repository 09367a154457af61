package position

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/google/uuid"
)

type PositionServiceImpl struct {
	position.PositionRepository
}

func NewPositionService(positionRepository position.PositionRepository) position.PositionService {
	return &PositionServiceImpl{PositionRepository: positionRepository}
}

// GetProfile implements position.ProfileProvider.
func (s *PositionServiceImpl) GetProfile(ctx context.Context, positionID string, companyID string) (position.Position, error) {
	return s.PositionRepository.GetByID(ctx, positionID, companyID)
}

// Create implements position.PositionService.
// Subtle: this method shadows the method (PositionRepository).Create of PositionServiceImpl.PositionRepository.
func (s *PositionServiceImpl) Create(ctx context.Context, req position.CreatePositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}

	p := req.ToPosition()
	p.ID = uuid.NewString()

	created, err := s.PositionRepository.Create(ctx, p)
	if err != nil {
		return position.PositionResponse{}, fmt.Errorf("failed to create position: %w", err)
	}
	return position.NewPositionResponse(created), nil
}

// Update implements position.PositionService.
// Subtle: this method shadows the method (PositionRepository).Update of PositionServiceImpl.PositionRepository.
func (s *PositionServiceImpl) Update(ctx context.Context, req position.UpdatePositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}

	p, err := s.PositionRepository.GetByID(ctx, req.ID, req.CompanyID)
	if err != nil {
		return position.PositionResponse{}, err
	}
	req.Apply(&p)

	updated, err := s.PositionRepository.Update(ctx, p)
	if err != nil {
		return position.PositionResponse{}, fmt.Errorf("failed to update position: %w", err)
	}
	return position.NewPositionResponse(updated), nil
}

// Get implements position.PositionService.
func (s *PositionServiceImpl) Get(ctx context.Context, id string, companyID string) (position.PositionResponse, error) {
	p, err := s.PositionRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return position.PositionResponse{}, err
	}
	return position.NewPositionResponse(p), nil
}

// List implements position.PositionService.
// Subtle: this method shadows the method (PositionRepository).List of PositionServiceImpl.PositionRepository.
func (s *PositionServiceImpl) List(ctx context.Context, companyID string) ([]position.PositionResponse, error) {
	positions, err := s.PositionRepository.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	resp := make([]position.PositionResponse, 0, len(positions))
	for _, p := range positions {
		resp = append(resp, position.NewPositionResponse(p))
	}
	return resp, nil
}
