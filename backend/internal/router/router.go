package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/itchan-dev/forum/backend/internal/setup"
	"github.com/itchan-dev/forum/shared/csrf"
	mw "github.com/itchan-dev/forum/shared/middleware"
	"github.com/itchan-dev/forum/shared/middleware/metrics"
	rl "github.com/itchan-dev/forum/shared/middleware/ratelimiter"
)

// New creates the chi router with all routes.
// The returned stop func releases rate limiter timers.
func New(deps *setup.Dependencies) (http.Handler, func()) {
	r := chi.NewRouter()

	r.Use(mw.RequestId)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", csrf.HeaderName, mw.RequestIdHeader},
		ExposedHeaders:   []string{"Location", mw.RequestIdHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SecurityHeaders(deps.Config.Public.SecureCookies, mw.APIContentSecurityPolicy))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Handle("/metrics", metrics.Handler())

	createLimiter := rl.PerMinute(deps.Config.Public.RateLimits.CreatePerMinute)
	replyLimiter := rl.PerSecond(deps.Config.Public.RateLimits.ReplyPerSecond)

	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.IssueCSRFToken(deps.Config.Public.SecureCookies))

		// Reads work for everyone; identity only matters for the "mine" filter
		r.Group(func(r chi.Router) {
			r.Use(authMw.OptionalAuth())
			r.Get("/forum", h.ForumPage)
			r.Get("/discussions", h.ListDiscussions)
			r.Get("/discussions/{id}", h.GetDiscussion)
		})

		r.Group(func(r chi.Router) {
			r.Use(chimw.RequestSize(deps.Config.MaxRequestBody()))
			r.Use(mw.RequireCSRFToken())
			r.Use(authMw.NeedAuth())
			r.With(mw.RateLimit(createLimiter, mw.GetAuthorFromContext)).Post("/discussions", h.CreateDiscussion)
			r.With(mw.RateLimit(replyLimiter, mw.GetAuthorFromContext)).Post("/discussions/{id}/messages", h.CreateMessage)
		})
	})

	return r, func() {
		createLimiter.Stop()
		replyLimiter.Stop()
	}
}
