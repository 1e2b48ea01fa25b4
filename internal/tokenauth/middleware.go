package tokenauth

import (
	"context"
	"net/http"

	commonhttp "github.com/aturganbekov/prime-sieve/backend/internal/common/http"
	"github.com/aturganbekov/prime-sieve/backend/internal/common/logger"
)

const (
	HeaderUsername  = "X-Username"
	HeaderTimestamp = "X-Timestamp"
	HeaderAuthToken = "X-Auth-Token"
)

type contextKey string

const usernameKey contextKey = "authenticated_username"

// Middleware extracts the identity claim headers, runs the
// authenticator and stores the verified username in the context.
func Middleware(a *Authenticator, log *logger.Logger) func(http.Handler) http.Handler {
	errorHandler := commonhttp.NewErrorHandler(log)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claim := Claim{
				Username:  r.Header.Get(HeaderUsername),
				Timestamp: r.Header.Get(HeaderTimestamp),
				Proof:     r.Header.Get(HeaderAuthToken),
			}

			if _, err := a.Authenticate(r.Context(), claim); err != nil {
				errorHandler.HandleError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, claim.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext returns the authenticated username set by
// Middleware, or "" when the request was not authenticated.
func UsernameFromContext(ctx context.Context) string {
	if username, ok := ctx.Value(usernameKey).(string); ok {
		return username
	}
	return ""
}
