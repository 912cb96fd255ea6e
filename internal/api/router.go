package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/havenlab/haven/internal/auth"
	"github.com/havenlab/haven/internal/session"
)

func NewRouter(sess *session.Session, authClient auth.Client, requestsPerMinute int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(requestsPerMinute))

	properties := NewPropertiesHandler(sess)
	weights := NewWeightsHandler(sess)
	insights := NewInsightsHandler(sess)
	account := NewAccountHandler(sess, authClient)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/properties", properties.Create)
		r.Get("/properties", properties.List)
		r.Get("/properties/{id}", properties.Get)
		r.Delete("/properties/{id}", properties.Delete)

		r.Get("/weights", weights.Get)
		r.Put("/weights", weights.Put)
		r.Get("/weights/presets", weights.Presets)
		r.Post("/weights/presets/{name}", weights.ApplyPreset)

		r.Get("/insights", insights.Insights)
		r.Get("/scores", insights.Scores)
		r.Get("/categories", insights.Categories)

		r.Post("/signin", account.SignIn)
		r.Post("/signout", account.SignOut)
		r.Get("/status", account.Status)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
