package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes assembles the full router. The gate wraps everything; paths in
// the skip set opt out inside the middleware itself.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(RequestLogger(a.Log))
	r.Use(a.Metrics.Middleware())
	r.Use(a.RequireAuth)

	r.Get("/health", a.Health)
	r.Method(http.MethodGet, "/metrics", a.Metrics.Handler())

	r.Post("/api/auth/login", a.Login)
	r.Get("/api/auth/me", a.Me)
	r.Post("/api/lms/leave/approve", a.ApproveLeave)
	r.Get("/api/pods/details", a.PodDetails)
	r.Get("/api/pods/recommend", a.Recommendations)
	r.Post("/api/pods/recommend", a.Recommend)
	r.Get("/api/admin/audit", a.AuditEvents)

	// generic document reads, mounted after the typed routes
	r.Get("/db", a.FullDocument)
	r.Get("/{namespace}", a.Namespace)

	return r
}

func pathParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
