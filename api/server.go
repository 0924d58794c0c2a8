/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/assets/*        Depreciable assets and their schedules
  /api/debt/*          Debt instruments and amortization
  /api/leases/*        Leases and payment schedules
  /api/contracts/*     Rental contracts and recognition
  /api/revenue         All-contract revenue report
  /api/close/*         Month-end close runs
  /api/scenarios/*     Demo scenarios

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Asset routes
		r.Route("/assets", func(r chi.Router) {
			r.Get("/", h.ListAssets)
			r.Post("/", h.CreateAsset)
			r.Get("/{id}", h.GetAsset)
			r.Delete("/{id}", h.DeleteAsset)
			r.Get("/{id}/schedule", h.GetAssetSchedule)
			r.Post("/{id}/disposition", h.AssetDisposition)
		})

		// Debt routes
		r.Route("/debt", func(r chi.Router) {
			r.Get("/", h.ListDebt)
			r.Post("/", h.CreateDebt)
			r.Get("/{id}", h.GetDebt)
			r.Delete("/{id}", h.DeleteDebt)
			r.Get("/{id}/schedule", h.GetDebtSchedule)
		})

		// Lease routes
		r.Route("/leases", func(r chi.Router) {
			r.Get("/", h.ListLeases)
			r.Post("/", h.CreateLease)
			r.Get("/{id}", h.GetLease)
			r.Delete("/{id}", h.DeleteLease)
			r.Get("/{id}/schedule", h.GetLeaseSchedule)
		})

		// Contract routes
		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", h.ListContracts)
			r.Post("/", h.CreateContract)
			r.Get("/{id}", h.GetContract)
			r.Delete("/{id}", h.DeleteContract)
			r.Get("/{id}/revenue", h.GetContractRevenue)
		})

		// Revenue report across contracts
		r.Get("/revenue", h.GetRevenueReport)

		// Close routes
		r.Route("/close", func(r chi.Router) {
			r.Post("/run", h.RunClose)
			r.Get("/runs", h.ListCloseRuns)
			r.Get("/runs/{id}/lines", h.GetCloseRunLines)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Schedule Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Schedule Engine API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/assets">/api/assets</a> - Depreciable assets</li>
<li><a href="/api/debt">/api/debt</a> - Debt instruments</li>
<li><a href="/api/leases">/api/leases</a> - Leases</li>
<li><a href="/api/contracts">/api/contracts</a> - Rental contracts</li>
<li><a href="/api/close/runs">/api/close/runs</a> - Close runs</li>
<li><a href="/api/scenarios">/api/scenarios</a> - Demo scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}
