package subscription

import (
	"context"
	"time"
)

type SubscriptionRepository interface {
	GetByCompanyID(ctx context.Context, companyID string) (Subscription, error)
	Upsert(ctx context.Context, s Subscription) (Subscription, error)
	// MarkExpired flips every lapsed subscription to expired and returns the affected company ids.
	MarkExpired(ctx context.Context, now time.Time) ([]string, error)
}
