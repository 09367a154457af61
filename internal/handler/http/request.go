package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		slog.Debug("request decode error", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// principal returns the caller placed in the context by middleware.AuthRequired.
func principal(w http.ResponseWriter, r *http.Request) (user.Principal, bool) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return user.Principal{}, false
	}
	return p, true
}

// employeePrincipal additionally requires an employee profile.
func employeePrincipal(w http.ResponseWriter, r *http.Request) (user.Principal, string, bool) {
	p, ok := principal(w, r)
	if !ok {
		return p, "", false
	}
	employeeID, err := p.Employee()
	if err != nil {
		response.HandleError(w, err)
		return p, "", false
	}
	return p, employeeID, true
}

// pathID returns the {id} route parameter. Ids that are not UUIDs cannot exist and answer with notFound.
func pathID(w http.ResponseWriter, r *http.Request, notFound error) (string, bool) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.HandleError(w, notFound)
		return "", false
	}
	return id, true
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// queryInt ignores values that do not parse.
func queryInt(r *http.Request, key string) *int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
	}
	return nil
}

func queryIntOr(r *http.Request, key string, fallback int) int {
	if n := queryInt(r, key); n != nil {
		return *n
	}
	return fallback
}

func pageMeta(page, limit int, total int64, totalPages int) *response.Meta {
	return &response.Meta{Page: page, Limit: limit, TotalItems: total, TotalPages: totalPages}
}
