package middleware

import (
	"net/http"

	"github.com/branchstock/branchstock-backend/api/responses"
	pkgerrors "github.com/branchstock/branchstock-backend/pkg/errors"
	"github.com/branchstock/branchstock-backend/pkg/logger"
)

// RequireAdmin rejects callers whose user record is not flagged admin.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAdminFromContext(r.Context()) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin only"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AllowAdminOrOwner lets a request through when the caller is an admin or
// when the owner id extracted from the request matches the caller's own id.
// The extractor typically reads a path parameter.
func AllowAdminOrOwner(extract func(*http.Request) string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerID := UserIDFromContext(r.Context())
			if callerID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "not authenticated"))
				return
			}
			if IsAdminFromContext(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}
			if owner := extract(r); owner != "" && owner == callerID {
				next.ServeHTTP(w, r)
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "forbidden"))
		})
	}
}
