// Package club contains all HTTP handlers related to the Club resource.
//
// Every exported function is a factory: it accepts the storage and
// metrics dependencies once at start-up and returns the http.HandlerFunc
// the router calls on every request.
//
//	router.HandleFunc("POST /clubs", club.New(store, m))
package club

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/clubs-api/internal/metrics"
	"github.com/aanand-mishra/clubs-api/internal/storage"
	"github.com/aanand-mishra/clubs-api/internal/types"
	"github.com/aanand-mishra/clubs-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const (
	msgNotFound     = "Club not found"
	msgNameRequired = "Name is required"
	msgCreated      = "Club created successfully"
	msgDeleted      = "Club deleted successfully"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// createdResponse is the 201 body for POST /clubs.
type createdResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ClubID  int64  `json:"club_id"`
}

// clubResponse is the 200 body for GET /clubs/{id}.
type clubResponse struct {
	Success bool       `json:"success"`
	Club    types.Club `json:"club"`
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /clubs
//
// Request body (JSON), only name is required:
//
//	{ "name": "Chess Club", "description": "", "memberCount": 12, "image": "" }
//
// Success response (201 Created):
//
//	{ "success": true, "message": "Club created successfully", "club_id": 1 }
//
// Error responses:
//
//	400 Bad Request  empty body, malformed JSON, or missing name
//	500 Internal     database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage, m *metrics.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a club")

		var payload types.NewClub

		dec := json.NewDecoder(r.Body)
		err := dec.Decode(&payload)
		if errors.Is(err, io.EOF) {
			// Nothing to decode means there is no name either.
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New(msgNameRequired)))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		// The body must hold exactly one JSON value.
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body must contain a single JSON object")))
			return
		}

		if err := validate.Struct(payload); err != nil {
			var validateErrs validator.ValidationErrors
			if !errors.As(err, &validateErrs) {
				response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		lastID, err := store.CreateClub(r.Context(), payload.WithDefaults())
		if err != nil {
			slog.Error("error creating club", slog.String("error", err.Error()))
			m.RecordStoreError("create")
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("club created", slog.Int64("id", lastID))
		m.RecordClubCreated()

		response.WriteJSON(w, http.StatusCreated, createdResponse{
			Success: true,
			Message: msgCreated,
			ClubID:  lastID,
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /clubs/{id}
//
// Success response (200 OK):
//
//	{ "success": true, "club": { "id": 1, "name": "Chess Club", ... } }
//
// Error responses:
//
//	404 Not Found    unknown id, or id is not a positive integer
//	500 Internal     database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage, m *metrics.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a club", slog.String("id", id))

		intID, ok := parseID(id)
		if !ok {
			writeNotFound(w)
			return
		}

		club, err := store.GetClubByID(r.Context(), intID)
		if errors.Is(err, storage.ErrNotFound) {
			writeNotFound(w)
			return
		}
		if err != nil {
			slog.Error("error getting club",
				slog.String("id", id),
				slog.String("error", err.Error()))
			m.RecordStoreError("get")
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, clubResponse{Success: true, Club: club})
	}
}

// GetList handles GET /clubs and returns a bare JSON array of every club,
// [] when there are none.
func GetList(store storage.Storage, m *metrics.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all clubs")

		clubs, err := store.GetClubs(r.Context())
		if err != nil {
			slog.Error("error getting clubs", slog.String("error", err.Error()))
			m.RecordStoreError("list")
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, clubs)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /clubs/{id}
//
// Success response (200 OK):
//
//	{ "success": true, "message": "Club deleted successfully" }
//
// Error responses:
//
//	404 Not Found    no club with that id
//	500 Internal     database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage, m *metrics.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a club", slog.String("id", id))

		intID, ok := parseID(id)
		if !ok {
			writeNotFound(w)
			return
		}

		err := store.DeleteClubByID(r.Context(), intID)
		if errors.Is(err, storage.ErrNotFound) {
			writeNotFound(w)
			return
		}
		if err != nil {
			slog.Error("error deleting club",
				slog.String("id", id),
				slog.String("error", err.Error()))
			m.RecordStoreError("delete")
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("club deleted", slog.String("id", id))
		m.RecordClubDeleted()
		response.WriteJSON(w, http.StatusOK, response.Message(msgDeleted))
	}
}

// parseID accepts only non-negative base-10 integers, so "-1", "+1" and
// "abc" are treated like a route that did not match.
func parseID(raw string) (int64, bool) {
	if raw == "" || raw[0] < '0' || raw[0] > '9' {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func writeNotFound(w http.ResponseWriter) {
	response.WriteJSON(w, http.StatusNotFound,
		response.GeneralError(errors.New(msgNotFound)))
}
