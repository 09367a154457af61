package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

// CompanyHeader lets a superadmin act on a specific tenant.
const CompanyHeader = "X-Company-ID"

type principalKey struct{}

func WithPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller resolved by AuthRequired.
func PrincipalFrom(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	return p, ok
}

// AuthRequired verifies the access token placed in the context by jwtauth.Verifier,
// parses the role claim once and stores the resulting user.Principal.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.Unauthorized(w, "Invalid or missing token")
			return
		}

		if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			response.Unauthorized(w, "Invalid token")
			return
		}

		roleClaim, _ := claims["role"].(string)
		role, err := user.ParseRole(roleClaim)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		p := user.Principal{UserID: userID, Role: role}
		if companyID, ok := claims["company_id"].(string); ok {
			p.CompanyID = companyID
		}
		if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
			p.EmployeeID = &employeeID
		}

		ctx := r.Context()
		if p.IsSuperadmin() {
			if companyID := r.Header.Get(CompanyHeader); companyID != "" {
				if !validator.IsValidUUID(companyID) {
					response.ValidationError(w, map[string]string{CompanyHeader: "must be a valid UUID"})
					return
				}
				p.CompanyID = companyID
			}
			ctx = subscription.WithBypass(ctx)
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, p)))
	})
}

// RequireCompany rejects callers that are not bound to a tenant.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			response.Unauthorized(w, "Unauthorized")
			return
		}
		if p.CompanyID == "" {
			response.HandleError(w, user.ErrCompanyIDRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SuperadminOnly guards platform operator routes.
func SuperadminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok || !p.IsSuperadmin() {
			response.HandleError(w, user.ErrInsufficientPermissions)
			return
		}
		next.ServeHTTP(w, r)
	})
}
