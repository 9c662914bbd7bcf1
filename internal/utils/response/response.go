// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every non-list response uses the same envelope:
//
//	{ "success": false, "error": "Club not found" }
//	{ "success": true,  "message": "Club deleted successfully" }
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Envelope is the standard shape returned for error cases.
// Success responses embed their own fields next to Success.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Message builds a success envelope carrying a human-readable message.
func Message(msg string) Envelope {
	return Envelope{Success: true, Message: msg}
}

// GeneralError wraps any Go error into the failure envelope, passing the
// raw message through to the client.
//
//	response.WriteJSON(w, http.StatusInternalServerError,
//	    response.GeneralError(err))
func GeneralError(err error) Envelope {
	return Envelope{
		Success: false,
		Error:   err.Error(),
	}
}

// ValidationError converts a slice of validator.FieldError values into
// a single human-readable envelope.
//
// Example output:
//
//	{ "success": false, "error": "Name is required" }
func ValidationError(errs validator.ValidationErrors) Envelope {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("%s is required", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("%s is invalid", e.Field()))
		}
	}

	return Envelope{
		Success: false,
		Error:   strings.Join(errMessages, ", "),
	}
}
