// Package home serves the non-resource endpoints: the API description at
// the root path and the health probe.
package home

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/clubs-api/internal/utils/response"
)

// pingTimeout bounds the store check done by Health.
const pingTimeout = 2 * time.Second

// info is the body returned by GET /.
type info struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

var apiInfo = info{
	Message: "Welcome to Club Hub API!",
	Endpoints: map[string]string{
		"GET /clubs":         "Get all clubs",
		"GET /clubs/<id>":    "Get a specific club by ID",
		"POST /clubs":        "Create a new club (requires: name, optional: description, memberCount, image)",
		"DELETE /clubs/<id>": "Delete a club by ID",
	},
}

// Info handles GET / with a static description of the club routes.
func Info() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, apiInfo)
	}
}

// Pinger is the part of the store Health needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health handles GET /healthz: 200 when the store answers, 503 otherwise.
func Health(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			slog.Warn("health check failed", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusServiceUnavailable,
				map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
