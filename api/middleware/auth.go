package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/branchstock/branchstock-backend/api/responses"
	pkgauth "github.com/branchstock/branchstock-backend/pkg/auth"
	"github.com/branchstock/branchstock-backend/pkg/auth/session"
	"github.com/branchstock/branchstock-backend/pkg/config"
	"github.com/branchstock/branchstock-backend/pkg/db/models"
	pkgerrors "github.com/branchstock/branchstock-backend/pkg/errors"
	"github.com/branchstock/branchstock-backend/pkg/logger"
)

// UserLoader resolves the token subject to a live user record. A nil result
// with a nil error means the user no longer exists.
type UserLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Auth validates a bearer token, confirms the subject still exists, and
// seeds the request context with the caller's identity. Branch and admin
// status come from the database row, not the token, so revoked privileges
// take effect on the next request.
func Auth(cfg config.JWTConfig, users UserLoader, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" || !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing or invalid header"))
				return
			}

			token := strings.TrimSpace(raw[7:])
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing or invalid header"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if verifier != nil && claims.ID != "" {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token"))
					return
				}
			}

			user, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user"))
				return
			}
			if user == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found"))
				return
			}

			ctx := WithIdentity(r.Context(), user.ID.String(), user.Branch, user.IsAdmin)
			if claims.ID != "" {
				ctx = WithAccessID(ctx, claims.ID)
			}

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":  user.ID.String(),
					"branch":   user.Branch,
					"is_admin": user.IsAdmin,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
