package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
)

// SubscriptionJobs contains subscription-related cron jobs
type SubscriptionJobs struct {
	subscriptionService subscription.SubscriptionService
	interval            time.Duration
}

// NewSubscriptionJobs creates subscription cron jobs
func NewSubscriptionJobs(subscriptionService subscription.SubscriptionService, interval time.Duration) *SubscriptionJobs {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SubscriptionJobs{
		subscriptionService: subscriptionService,
		interval:            interval,
	}
}

// RegisterJobs registers all subscription-related cron jobs
func (j *SubscriptionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "sweep_expired_subscriptions",
		Interval: j.interval,
		Timeout:  time.Minute,
		Fn:       j.SweepExpiredSubscriptions,
	})
}

// SweepExpiredSubscriptions flips lapsed subscriptions to expired so the gate rejects their tenants.
func (j *SubscriptionJobs) SweepExpiredSubscriptions(ctx context.Context) error {
	start := time.Now()
	if err := j.subscriptionService.SweepExpired(ctx); err != nil {
		return err
	}
	slog.Debug("Expired subscriptions swept", "duration", time.Since(start))
	return nil
}
