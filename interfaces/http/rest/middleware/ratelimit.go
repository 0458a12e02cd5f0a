package middleware

import (
	"context"
	"net/http"
)

// Limiter is the rate-limit decision surface shared by the in-process
// token bucket and the DynamoDB-backed limiter.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit applies per-IP limiting to routes that carry no session.
// Authenticated routes get their limiting inside the auth middleware.
// A limiter backend error does not block traffic.
func RateLimit(limiter Limiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), getClientIP(r))
			if err == nil && !allowed {
				respondWithError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
