package subscription

import "context"

// Gate is consulted before tenant-side mutations.
type Gate interface {
	// CheckActive returns nil, ErrSubscriptionExpired, ErrSubscriptionInactive or ErrSubscriptionNotFound.
	CheckActive(ctx context.Context, companyID string) error
	State(ctx context.Context, companyID string) (State, error)
}

type SubscriptionService interface {
	Gate
	SweepExpired(ctx context.Context) error
}
