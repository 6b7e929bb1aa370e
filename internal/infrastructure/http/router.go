package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/orgstack/orgd/internal/infrastructure/http/handlers"
	"github.com/orgstack/orgd/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	OrgHandler    *handlers.OrgHandler
	AdminHandler  *handlers.AdminHandler
	HealthHandler *handlers.HealthHandler
	RequireJWT    func(http.Handler) http.Handler
	Log           zerolog.Logger
	Secure        func(http.Handler) http.Handler
	CORS          func(http.Handler) http.Handler
	IPRateLimit   func(http.Handler) http.Handler
	Metrics       bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"Backend running"}`))
	})
	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/admin", func(r chi.Router) {
		r.Use(chimid.AllowContentType("application/json"))
		r.Post("/login", cfg.AdminHandler.Login)
	})

	r.Route("/org", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(chimid.AllowContentType("application/json"))
			r.Post("/create", cfg.OrgHandler.Create)
		})
		// Mutations on an existing organization require a bearer token; the
		// target organization is always the caller's own.
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.With(chimid.AllowContentType("application/json")).Put("/update", cfg.OrgHandler.Update)
			r.Delete("/delete", cfg.OrgHandler.Delete)
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
