package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-time.Second)

	cases := []struct {
		name   string
		sub    Subscription
		active bool
		err    error
	}{
		{"active without end", Subscription{Status: StatusActive}, true, nil},
		{"trial before end", Subscription{Status: StatusTrial, EndDate: &future}, true, nil},
		{"active past end", Subscription{Status: StatusActive, EndDate: &past}, false, ErrSubscriptionExpired},
		{"expired status", Subscription{Status: StatusExpired}, false, ErrSubscriptionExpired},
		{"inactive", Subscription{Status: StatusInactive, EndDate: &future}, false, ErrSubscriptionInactive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := tc.sub.Evaluate(now)
			assert.Equal(t, tc.active, state.Active)
			assert.Equal(t, tc.err, state.Err())
		})
	}
}

func TestBypass(t *testing.T) {
	ctx := context.Background()
	assert.False(t, IsBypassed(ctx))
	assert.True(t, IsBypassed(WithBypass(ctx)))
}
