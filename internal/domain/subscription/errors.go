package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrSubscriptionExpired  = errors.New("subscription has expired")
	ErrSubscriptionInactive = errors.New("subscription is inactive")
)
