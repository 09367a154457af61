package subscription

import (
	"context"
	"time"
)

// SubscriptionStatus represents the status of a subscription
type SubscriptionStatus string

const (
	StatusTrial    SubscriptionStatus = "trial"
	StatusActive   SubscriptionStatus = "active"
	StatusPastDue  SubscriptionStatus = "past_due"
	StatusInactive SubscriptionStatus = "inactive"
	StatusExpired  SubscriptionStatus = "expired"
)

type Subscription struct {
	ID        string
	CompanyID string
	Status    SubscriptionStatus
	StartDate time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// State is what the gate reports for a tenant.
type State struct {
	CompanyID string             `json:"company_id"`
	Status    SubscriptionStatus `json:"status"`
	Active    bool               `json:"active"`
	ExpiresAt *time.Time         `json:"expires_at,omitempty"`
}

// Evaluate derives the gate state at now. A passed end date expires the tenant regardless of status.
func (s Subscription) Evaluate(now time.Time) State {
	state := State{CompanyID: s.CompanyID, Status: s.Status, ExpiresAt: s.EndDate}
	if s.EndDate != nil && s.EndDate.Before(now) {
		state.Status = StatusExpired
		return state
	}
	switch s.Status {
	case StatusTrial, StatusActive, StatusPastDue:
		state.Active = true
	}
	return state
}

// Err converts an inactive state into the matching domain error.
func (s State) Err() error {
	if s.Active {
		return nil
	}
	if s.Status == StatusInactive {
		return ErrSubscriptionInactive
	}
	return ErrSubscriptionExpired
}

type bypassKey struct{}

// WithBypass marks ctx as belonging to a platform operator; gates let it through.
func WithBypass(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassKey{}, true)
}

func IsBypassed(ctx context.Context) bool {
	v, _ := ctx.Value(bypassKey{}).(bool)
	return v
}
