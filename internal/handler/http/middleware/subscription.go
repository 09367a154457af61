package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
)

// SubscriptionMiddleware rejects tenant mutations early when the subscription has lapsed.
// Services run the same gate again, so this only saves the request body work.
type SubscriptionMiddleware struct {
	gate subscription.Gate
}

func NewSubscriptionMiddleware(gate subscription.Gate) *SubscriptionMiddleware {
	return &SubscriptionMiddleware{gate: gate}
}

// RequireActiveSubscription lets reads through and gates every other method.
func (m *SubscriptionMiddleware) RequireActiveSubscription(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isReadOnly(r.Method) || subscription.IsBypassed(r.Context()) {
			next.ServeHTTP(w, r)
			return
		}

		p, ok := PrincipalFrom(r.Context())
		if !ok {
			response.Unauthorized(w, "Unauthorized")
			return
		}

		if err := m.gate.CheckActive(r.Context(), p.CompanyID); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
