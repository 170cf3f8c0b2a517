package middleware

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/omarberrios/shopgrid-backend/api/responses"
	pkgerrors "github.com/omarberrios/shopgrid-backend/pkg/errors"
	"github.com/omarberrios/shopgrid-backend/pkg/logger"
)

const (
	rateLimitWindow   = time.Minute
	rateLimitRequests = 240
)

// RateLimiter counts requests within a fixed window.
type RateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimit applies a fixed-window cap per acting store, falling back to the
// client IP for anonymous traffic. A nil limiter disables the middleware.
func RateLimit(limiter RateLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			scope := StoreIDFromContext(r.Context())
			if scope == "" {
				scope = clientIP(r)
			}

			allowed, _, err := limiter.FixedWindowAllow(r.Context(), scope, rateLimitRequests, rateLimitWindow)
			if err != nil {
				// Rate limiting is best effort; an unreachable counter must
				// not take the API down with it.
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeRateLimited, "request rate exceeded").
					WithDetails(map[string]any{"window_seconds": int(rateLimitWindow.Seconds())}))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
