package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
)

type subscriptionRepo struct{ s *Store }

func (r subscriptionRepo) GetByCompanyID(ctx context.Context, companyID string) (subscription.Subscription, error) {
	defer r.s.lock(ctx)()
	sub, ok := r.s.data.subscriptions[companyID]
	if !ok {
		return subscription.Subscription{}, subscription.ErrSubscriptionNotFound
	}
	return sub, nil
}

func (r subscriptionRepo) Upsert(ctx context.Context, sub subscription.Subscription) (subscription.Subscription, error) {
	defer r.s.lock(ctx)()
	now := time.Now()
	if existing, ok := r.s.data.subscriptions[sub.CompanyID]; ok {
		sub.ID = existing.ID
		sub.CreatedAt = existing.CreatedAt
	} else {
		sub.CreatedAt = now
	}
	sub.UpdatedAt = now
	r.s.data.subscriptions[sub.CompanyID] = sub
	return sub, nil
}

func (r subscriptionRepo) MarkExpired(ctx context.Context, now time.Time) ([]string, error) {
	defer r.s.lock(ctx)()
	var ids []string
	for companyID, sub := range r.s.data.subscriptions {
		if sub.Status == subscription.StatusExpired || sub.EndDate == nil || !sub.EndDate.Before(now) {
			continue
		}
		sub.Status = subscription.StatusExpired
		sub.UpdatedAt = now
		r.s.data.subscriptions[companyID] = sub
		ids = append(ids, companyID)
	}
	sort.Strings(ids)
	return ids, nil
}
