// Package auth guards the CMS API. Public pages never touch it.
package auth

import (
	"net/http"

	"github.com/rs/zerolog"
)

var authLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	authLogger = l
}

type UserID string

type Provider interface {
	// WithHeaderAuthorization wraps a handler so session claims become
	// available on the request context.
	WithHeaderAuthorization() func(http.Handler) http.Handler

	// UserIDFromSession returns the authenticated user, or an error when
	// the request carries no valid session.
	UserIDFromSession(r *http.Request) (UserID, error)
}

// RequireUser rejects requests without a valid session. The provider's
// WithHeaderAuthorization middleware must run first.
func RequireUser(provider Provider, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := provider.UserIDFromSession(r)
		if err != nil {
			authLogger.Debug().Err(err).Str("path", r.URL.Path).Msg("Rejected unauthenticated request")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
	}
}
