package holiday

import "context"

type HolidayRepository interface {
	// FindByDate returns the holiday on date (YYYY-MM-DD) or ErrHolidayNotFound.
	FindByDate(ctx context.Context, companyID string, date string) (Holiday, error)
	// ListBetween returns holidays with from <= date <= to, both YYYY-MM-DD, ordered by date.
	ListBetween(ctx context.Context, companyID string, from, to string) ([]Holiday, error)
	Create(ctx context.Context, h Holiday) (Holiday, error)
	// CreateMany skips dates that already exist and returns the number inserted.
	CreateMany(ctx context.Context, hs []Holiday) (int, error)
	Delete(ctx context.Context, id string, companyID string) error
}
