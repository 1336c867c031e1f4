package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов"

// RateLimit общий лимит запросов на процесс (token bucket)
func RateLimit(requestsPerSecond float64, burst int, logger Logger) mux.MiddlewareFunc {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.Warn("RateLimit: rejected %s %s", r.Method, r.URL.Path)
				w.Header().Set("Retry-After", "1")
				handlers.RespondTooManyRequests(w, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
