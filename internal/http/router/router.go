// Package router wires every route of the clubs API to its handler and
// wraps the result in the shared middleware chain.
package router

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/clubs-api/internal/http/handlers/club"
	"github.com/aanand-mishra/clubs-api/internal/http/handlers/home"
	"github.com/aanand-mishra/clubs-api/internal/http/middleware"
	"github.com/aanand-mishra/clubs-api/internal/metrics"
	"github.com/aanand-mishra/clubs-api/internal/storage"
)

// New returns the complete HTTP handler.
//
// Route table:
//
//	GET    /              → API description
//	GET    /clubs         → list all clubs
//	GET    /clubs/{id}    → get one club by ID
//	POST   /clubs         → create a new club
//	DELETE /clubs/{id}    → delete a club
//	GET    /healthz       → store reachability
//	GET    /metrics       → Prometheus metrics
func New(store storage.Storage, m *metrics.Manager, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	// {$} anchors the pattern so "/" does not swallow every unknown path.
	mux.HandleFunc("GET /{$}", home.Info())
	mux.HandleFunc("GET /healthz", home.Health(store))
	mux.Handle("GET /metrics", m.Handler())

	mux.HandleFunc("GET /clubs", club.GetList(store, m))
	mux.HandleFunc("GET /clubs/{id}", club.GetByID(store, m))
	mux.HandleFunc("POST /clubs", club.New(store, m))
	mux.HandleFunc("DELETE /clubs/{id}", club.Delete(store, m))

	return middleware.Chain(mux,
		middleware.CORS(),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Metrics(m),
		// Innermost, so a recovered panic is still logged and counted as a 500.
		middleware.Recover(log),
	)
}
