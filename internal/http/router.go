package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/budgettracker/internal/http/auth"
	"github.com/MrJamesThe3rd/budgettracker/internal/http/export"
	"github.com/MrJamesThe3rd/budgettracker/internal/http/importcsv"
	"github.com/MrJamesThe3rd/budgettracker/internal/http/matching"
	"github.com/MrJamesThe3rd/budgettracker/internal/http/record"
	"github.com/MrJamesThe3rd/budgettracker/internal/http/settings"
)

type Options struct {
	CORSOrigins []string
	Timeout     time.Duration
	// Auth guards /api/v1 when set.
	Auth *auth.Authenticator
}

func New(
	opts Options,
	recordsV1 *record.Handler,
	settingsV1 *settings.Handler,
	importV1 *importcsv.Handler,
	matchingV1 *matching.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth.Middleware)
		}

		r.Route("/settings", settingsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/matching", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			matchingV1.Routes(r)
		})

		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			exportV1.Routes(r)
		})

		r.Route("/{kind}", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			recordsV1.Routes(r)
		})
	})

	return router
}
