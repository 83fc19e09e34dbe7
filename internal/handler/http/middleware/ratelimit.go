package middleware

import (
	"net"
	"net/http"

	"github.com/avopro-hr/hr-backend-go/internal/handler/http/response"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/ratelimit"
)

// RateLimit throttles requests per client IP.
func RateLimit(limiter *ratelimit.KeyedLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				response.TooManyRequests(w, "Too many requests, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
