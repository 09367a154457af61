package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/cache"
)

const cacheKeyPrefix = "subscription:state:"

type subscriptionService struct {
	subscriptionRepo subscription.SubscriptionRepository
	cache            cache.Cache
	cacheTTL         time.Duration
	now              func() time.Time
}

// NewSubscriptionService builds the gate. A nil cache disables caching.
func NewSubscriptionService(subscriptionRepo subscription.SubscriptionRepository, c cache.Cache, cacheTTL time.Duration) subscription.SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		cache:            c,
		cacheTTL:         cacheTTL,
		now:              time.Now,
	}
}

// CheckActive implements subscription.Gate.
func (s *subscriptionService) CheckActive(ctx context.Context, companyID string) error {
	if subscription.IsBypassed(ctx) {
		return nil
	}
	state, err := s.State(ctx, companyID)
	if err != nil {
		return err
	}
	return state.Err()
}

// State implements subscription.Gate.
func (s *subscriptionService) State(ctx context.Context, companyID string) (subscription.State, error) {
	key := cacheKeyPrefix + companyID

	if s.cache != nil {
		var cached subscription.State
		found, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			slog.Warn("Subscription cache read failed", "company_id", companyID, "error", err)
		}
		// A cached active state is re-evaluated against its expiry.
		if found && (!cached.Active || cached.ExpiresAt == nil || !cached.ExpiresAt.Before(s.now())) {
			return cached, nil
		}
	}

	sub, err := s.subscriptionRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return subscription.State{}, err
		}
		return subscription.State{}, fmt.Errorf("failed to get subscription for company %s: %w", companyID, err)
	}
	state := sub.Evaluate(s.now())

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.SetJSON(ctx, key, state, s.cacheTTL); err != nil {
			slog.Warn("Subscription cache write failed", "company_id", companyID, "error", err)
		}
	}
	return state, nil
}

// SweepExpired implements subscription.SubscriptionService.
func (s *subscriptionService) SweepExpired(ctx context.Context) error {
	companyIDs, err := s.subscriptionRepo.MarkExpired(ctx, s.now())
	if err != nil {
		return fmt.Errorf("failed to sweep expired subscriptions: %w", err)
	}
	if len(companyIDs) == 0 {
		slog.Debug("No subscriptions to expire")
		return nil
	}

	if s.cache != nil {
		keys := make([]string, len(companyIDs))
		for i, id := range companyIDs {
			keys[i] = cacheKeyPrefix + id
		}
		if err := s.cache.Delete(ctx, keys...); err != nil {
			slog.Warn("Failed to evict expired subscriptions from cache", "count", len(keys), "error", err)
		}
	}

	slog.Info("Expired subscriptions swept", "count", len(companyIDs))
	return nil
}
