package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriptionService struct {
	subscription.SubscriptionService
	sweeps atomic.Int32
	err    error
}

func (f *fakeSubscriptionService) SweepExpired(ctx context.Context) error {
	f.sweeps.Add(1)
	return f.err
}

func TestScheduler_RunOnce(t *testing.T) {
	svc := &fakeSubscriptionService{}
	scheduler := NewScheduler()
	NewSubscriptionJobs(svc, time.Hour).RegisterJobs(scheduler)

	require.NoError(t, scheduler.RunOnce(context.Background()))
	require.NoError(t, scheduler.RunOnce(context.Background()))

	assert.Equal(t, int32(2), svc.sweeps.Load())
}

func TestScheduler_RunOnceKeepsGoingOnError(t *testing.T) {
	failing := &fakeSubscriptionService{err: errors.New("db down")}
	healthy := &fakeSubscriptionService{}
	scheduler := NewScheduler()
	NewSubscriptionJobs(failing, time.Hour).RegisterJobs(scheduler)
	NewSubscriptionJobs(healthy, time.Hour).RegisterJobs(scheduler)

	err := scheduler.RunOnce(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sweep_expired_subscriptions: db down")
	assert.Equal(t, int32(1), failing.sweeps.Load())
	assert.Equal(t, int32(1), healthy.sweeps.Load())
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	svc := &fakeSubscriptionService{}
	scheduler := NewScheduler()
	NewSubscriptionJobs(svc, time.Hour).RegisterJobs(scheduler)

	scheduler.Start(context.Background())
	scheduler.Start(context.Background())
	require.Eventually(t, func() bool { return svc.sweeps.Load() >= 1 }, time.Second, 10*time.Millisecond)
	scheduler.Stop()
	scheduler.Stop()

	assert.Equal(t, int32(1), svc.sweeps.Load())
}

func TestScheduler_StopsWithParentContext(t *testing.T) {
	svc := &fakeSubscriptionService{}
	scheduler := NewScheduler()
	NewSubscriptionJobs(svc, 10*time.Millisecond).RegisterJobs(scheduler)

	ctx, cancel := context.WithCancel(context.Background())
	scheduler.Start(ctx)
	require.Eventually(t, func() bool { return svc.sweeps.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_JobTimeout(t *testing.T) {
	scheduler := NewScheduler()
	scheduler.AddJob(Job{
		Name:     "slow",
		Interval: time.Hour,
		Timeout:  20 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	})

	err := scheduler.RunOnce(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewSubscriptionJobs_DefaultsInterval(t *testing.T) {
	jobs := NewSubscriptionJobs(&fakeSubscriptionService{}, 0)
	assert.Equal(t, time.Hour, jobs.interval)
}
