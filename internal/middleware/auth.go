package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/minimal-api/internal/auth"
	"github.com/minimal-api/internal/logging"
	"github.com/minimal-api/internal/metrics"
	"github.com/minimal-api/internal/model"
)

type contextKey string

const ClaimsContextKey contextKey = "claims"

// AuthMiddleware enforces per-route requirements with the route guard.
type AuthMiddleware struct {
	guard *auth.Guard
	log   *logging.Logger
}

func NewAuthMiddleware(guard *auth.Guard, log *logging.Logger) *AuthMiddleware {
	return &AuthMiddleware{guard: guard, log: log}
}

// Require wraps next so that it only runs when the request satisfies req.
// Unauthenticated requests get 401 and role mismatches 403, both with an
// empty body.
func (m *AuthMiddleware) Require(route string, req auth.Requirement, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.guard.Check(req, r.Header.Get("Authorization"))
		if err != nil {
			status := StatusForAuthError(err)
			metrics.AccessDenied.WithLabelValues(route, http.StatusText(status)).Inc()
			m.log.InfoContext(r.Context(), "access denied",
				"route", route,
				"requirement", req.String(),
				"reason", err.Error(),
			)
			if status == http.StatusUnauthorized {
				w.Header().Set("WWW-Authenticate", "Bearer")
			}
			w.WriteHeader(status)
			return
		}

		if claims != nil {
			r = r.WithContext(context.WithValue(r.Context(), ClaimsContextKey, claims))
		}
		next.ServeHTTP(w, r)
	})
}

// StatusForAuthError maps guard errors to HTTP status codes.
func StatusForAuthError(err error) int {
	if errors.Is(err, auth.ErrForbidden) {
		return http.StatusForbidden
	}
	return http.StatusUnauthorized
}

// ClaimsFromContext returns the verified claims of the caller, or nil on
// anonymous requests.
func ClaimsFromContext(ctx context.Context) *model.TokenClaims {
	claims, ok := ctx.Value(ClaimsContextKey).(*model.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}
