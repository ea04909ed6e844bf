package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpmdlwr "goa.design/goa/v3/http/middleware"
	"go.uber.org/zap"

	"portfolio/internal/config"
	"portfolio/internal/metrics"
	"portfolio/internal/services"
)

// Deps are the services the router mounts. Auth is nil when the admin API
// is disabled.
type Deps struct {
	Config  *config.Config
	Contact *services.ContactService
	Health  *services.HealthService
	Auth    *services.AuthService
	Logger  *zap.Logger
}

// NewRouter builds the HTTP handler for the whole service
func NewRouter(d Deps) http.Handler {
	httpLog := d.Logger.Named("http")

	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(httpmdlwr.RequestID(httpmdlwr.UseXRequestIDHeaderOption(true)))
	r.Use(httpmdlwr.PopulateRequestContext())
	r.Use(securityHeaders(d.Config.App.Debug))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Config.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         d.Config.CORS.MaxAge,
	}))
	r.Use(requestLogging(httpLog))
	r.Use(metrics.PrometheusMiddleware)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeMessage(w, req, httpLog, http.StatusNotFound, false, "Not found")
	})

	r.Get("/health", healthHandler(d.Health, httpLog))
	r.Handle("/metrics", promhttp.Handler())

	// The contact endpoint answers every method itself so that non-POST
	// requests get the JSON 405 with an Allow header.
	contact := NewContactHandler(d.Contact, d.Logger)
	r.Handle("/api/contact", contact)
	r.Handle("/contact", contact)

	if d.Auth != nil {
		admin := NewAdminHandler(d.Auth, d.Contact, d.Logger)
		r.Route("/api/admin", func(r chi.Router) {
			r.Post("/login", admin.Login)
			r.With(admin.RequireStaff).Get("/submissions", admin.ListSubmissions)
		})
	}

	return r
}

func healthHandler(svc *services.HealthService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Check(r.Context())
		if err != nil {
			writeMessage(w, r, log, http.StatusServiceUnavailable, false, "unhealthy")
			return
		}
		writeJSON(w, r, log, http.StatusOK, res)
	}
}
