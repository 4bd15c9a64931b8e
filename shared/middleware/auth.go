package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/itchan-dev/forum/shared/domain"
	jwt_internal "github.com/itchan-dev/forum/shared/jwt"
	"github.com/itchan-dev/forum/shared/utils"
)

// Key to store the identity in the request context
type key int

const IdentityKey key = 0

const AccessTokenCookie = "accessToken"

// Auth resolves the caller identity from an access token
type Auth struct {
	jwtService    jwt_internal.JwtService
	secureCookies bool
}

func NewAuth(jwtService jwt_internal.JwtService, secureCookies bool) *Auth {
	return &Auth{
		jwtService:    jwtService,
		secureCookies: secureCookies,
	}
}

// NeedAuth returns middleware that rejects anonymous callers
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := a.extractIdentity(r)
			if err != nil {
				if err == errNoToken {
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
					return
				}
				// Stale cookie: drop it so the browser stops sending it
				a.clearCookie(w)
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// OptionalAuth returns middleware that populates identity if token is valid, but doesn't require auth
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ := a.extractIdentity(r)
			if identity != nil {
				r = r.WithContext(WithIdentity(r.Context(), identity))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIdentity reads the token from the Authorization header (API clients)
// or the cookie (browser clients). An explicit header wins over the cookie.
func (a *Auth) extractIdentity(r *http.Request) (*domain.Identity, error) {
	tokenString, found := bearerToken(r)
	if !found {
		tokenString = cookieToken(r)
	}

	if tokenString == "" {
		return nil, errNoToken
	}
	return a.jwtService.DecodeToken(tokenString)
}

func bearerToken(r *http.Request) (string, bool) {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func cookieToken(r *http.Request) string {
	if accessCookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return accessCookie.Value
	}
	return ""
}

// cookieAuthenticated reports whether the request is authenticated by the
// access cookie, which the browser attaches on its own.
func cookieAuthenticated(r *http.Request) bool {
	if _, found := bearerToken(r); found {
		return false
	}
	return cookieToken(r) != ""
}

func (a *Auth) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     AccessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

var errNoToken = errorString("no token")

type errorString string

func (e errorString) Error() string { return string(e) }

func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentityFromContext returns the caller identity or nil for anonymous requests
func GetIdentityFromContext(r *http.Request) *domain.Identity {
	identity, ok := r.Context().Value(IdentityKey).(*domain.Identity)
	if !ok {
		return nil
	}
	return identity
}
