package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/faraz1977/ai-visionary/internal/http/handlers"
	"github.com/faraz1977/ai-visionary/internal/middleware"
)

// Options carries router-level settings.
type Options struct {
	RateLimitPerMin int
	CountryLookup   middleware.CountryLookup
}

// NewRouter wires every route. Everything except health and login sits
// behind the session token middleware.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)
	r.Post("/v1/auth/login", app.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(app.SessionSecret))

		r.Post("/v1/auth/logout", app.Logout)
		r.Get("/v1/me", app.Me)

		r.Route("/v1/session", func(r chi.Router) {
			r.Get("/", app.SessionState)
			r.Post("/navigate", app.SessionNavigate)
		})

		r.Get("/v1/tools", app.ToolsList)

		r.Route("/v1/job", func(r chi.Router) {
			r.Post("/upload", app.JobUpload)
			r.Post("/process", app.JobProcess)
			r.Get("/", app.JobStatus)
			r.Get("/result", app.JobResult)
			r.Delete("/", app.JobClear)
		})

		r.Route("/v1/checkout", func(r chi.Router) {
			r.With(middleware.Country(opts.CountryLookup)).Get("/quote", app.CheckoutQuote)
			r.Post("/charge", app.CheckoutCharge)
		})
	})

	return r
}
