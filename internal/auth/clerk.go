package auth

import (
	"errors"
	"net/http"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
)

// ClerkProvider authenticates CMS requests with Clerk sessions. The JWT is
// read from the Authorization header or the __session cookie.
type ClerkProvider struct {
	cookieExtractor clerkhttp.AuthorizationOption
}

func NewClerkProvider(clerkKey string) *ClerkProvider {
	clerk.SetKey(clerkKey)

	return &ClerkProvider{
		cookieExtractor: clerkhttp.AuthorizationJWTExtractor(func(r *http.Request) string {
			cookie, err := r.Cookie("__session")
			if err != nil || cookie == nil {
				return ""
			}
			return cookie.Value
		}),
	}
}

func (c *ClerkProvider) WithHeaderAuthorization() func(http.Handler) http.Handler {
	return clerkhttp.WithHeaderAuthorization(c.cookieExtractor)
}

func (c *ClerkProvider) UserIDFromSession(r *http.Request) (UserID, error) {
	claims, ok := clerk.SessionClaimsFromContext(r.Context())
	if !ok {
		return "", errors.New("no session claims on request context")
	}
	return UserID(claims.Subject), nil
}
