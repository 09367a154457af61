package position

import "context"

type PositionRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Position, error)
	List(ctx context.Context, companyID string) ([]Position, error)
	Create(ctx context.Context, p Position) (Position, error)
	Update(ctx context.Context, p Position) (Position, error)
}
