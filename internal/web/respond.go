package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Joseda-hg/tasktrack/internal/tasks"
)

type errorBody struct {
	Error  string             `json:"error"`
	Fields []tasks.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, payload any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// errorStatus maps service errors to HTTP statuses. Anything that is not a
// domain error came from the store.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, tasks.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, tasks.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusServiceUnavailable
	}
}

func (s *Server) writeAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	body := errorBody{Error: err.Error()}

	var verr *tasks.ValidationError
	if errors.As(err, &verr) {
		body.Error = tasks.ErrValidation.Error()
		body.Fields = verr.Fields
	}
	if status == http.StatusServiceUnavailable {
		s.log.ErrorContext(r.Context(), "task store failure", "path", r.URL.Path, "error", err)
		body.Error = "task store unavailable"
	}

	writeJSON(w, body, status)
}

func (s *Server) writePageError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	message := err.Error()
	if status == http.StatusServiceUnavailable {
		s.log.ErrorContext(r.Context(), "task store failure", "path", r.URL.Path, "error", err)
		message = "task store unavailable"
	}
	http.Error(w, message, status)
}
