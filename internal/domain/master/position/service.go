package position

import "context"

// ProfileProvider is the read side consumed by payroll generation.
type ProfileProvider interface {
	GetProfile(ctx context.Context, positionID string, companyID string) (Position, error)
}

type PositionService interface {
	ProfileProvider
	Create(ctx context.Context, req CreatePositionRequest) (PositionResponse, error)
	Update(ctx context.Context, req UpdatePositionRequest) (PositionResponse, error)
	Get(ctx context.Context, id string, companyID string) (PositionResponse, error)
	List(ctx context.Context, companyID string) ([]PositionResponse, error)
}
