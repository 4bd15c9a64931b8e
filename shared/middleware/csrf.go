package middleware

import (
	"net/http"

	"github.com/itchan-dev/forum/shared/csrf"
	"github.com/itchan-dev/forum/shared/logger"
)

// IssueCSRFToken makes sure the client holds a csrf cookie. The cookie is
// readable by scripts so they can echo it back in the csrf header.
func IssueCSRFToken(secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(csrf.CookieName); err != nil || cookie.Value == "" {
				token, err := csrf.GenerateToken()
				if err != nil {
					logger.Log.Error("failed to generate CSRF token", "error", err)
					http.Error(w, "Internal error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     csrf.CookieName,
					Value:    token,
					Path:     "/",
					Secure:   secureCookies,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   86400, // 24 hours
				})
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCSRFToken rejects unsafe requests that authenticate with the access
// cookie unless the csrf header matches the csrf cookie. Requests with a Bearer
// header are authenticated by it and pass through.
func RequireCSRFToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			if !cookieAuthenticated(r) {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(csrf.CookieName)
			if err != nil {
				logger.Log.Warn("CSRF token cookie missing", "path", r.URL.Path)
				http.Error(w, "CSRF token missing", http.StatusForbidden)
				return
			}
			if !csrf.ValidateToken(cookie.Value, r.Header.Get(csrf.HeaderName)) {
				logger.Log.Warn("CSRF token validation failed", "path", r.URL.Path)
				http.Error(w, "CSRF token invalid", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
