package middleware

import (
	"fmt"
	"net/http"

	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
	"github.com/itchan-dev/forum/shared/logger"
	"github.com/itchan-dev/forum/shared/middleware/ratelimiter"
	"github.com/itchan-dev/forum/shared/utils"
)

func RateLimit(rl *ratelimiter.KeyedLimiter, getKey func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return RateLimitWithHandler(rl, getKey, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
	})
}

// RateLimitWithHandler lets the caller decide how a throttled request is answered
func RateLimitWithHandler(rl *ratelimiter.KeyedLimiter, getKey func(r *http.Request) (string, error), onLimit http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, err := getKey(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(key) {
				logger.Log.Info("rate limited", "key", key, "path", r.URL.Path)
				onLimit(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetAuthorFromContext keys the limiter by author name.
// Possible if identity was resolved with previous middleware
func GetAuthorFromContext(r *http.Request) (string, error) {
	name := domain.NameOf(GetIdentityFromContext(r))
	if name == "" {
		return "", &errors.ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized}
	}
	return fmt.Sprintf("author_%s", name), nil
}
