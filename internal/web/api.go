package web

import (
	"encoding/json"
	"net/http"

	"github.com/Joseda-hg/tasktrack/internal/model"
	"github.com/Joseda-hg/tasktrack/internal/tasks"
	"github.com/go-chi/chi/v5"
)

func (s *Server) apiListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.ListFiltered(r.Context(), model.ParseFilter(r.URL.Query().Get("filter")))
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	writeJSON(w, list, http.StatusOK)
}

func (s *Server) apiCreateHandler(w http.ResponseWriter, r *http.Request) {
	input, ok := s.decodeTaskInput(w, r, model.StatusOpen)
	if !ok {
		return
	}

	task, err := s.svc.Create(r.Context(), input)
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	writeJSON(w, task, http.StatusCreated)
}

func (s *Server) apiGetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := apiID(w, r)
	if !ok {
		return
	}

	task, err := s.svc.Get(r.Context(), id)
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	writeJSON(w, task, http.StatusOK)
}

func (s *Server) apiEditHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := apiID(w, r)
	if !ok {
		return
	}

	input, ok := s.decodeTaskInput(w, r, model.StatusUnset)
	if !ok {
		return
	}

	task, err := s.svc.Edit(r.Context(), id, input)
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	writeJSON(w, task, http.StatusOK)
}

func (s *Server) apiDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := apiID(w, r)
	if !ok {
		return
	}

	if err := s.svc.Delete(r.Context(), id); err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// apiCompleteHandler answers 204 for unknown ids too; completing a task that
// does not exist is not an error.
func (s *Server) apiCompleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := apiID(w, r)
	if !ok {
		return
	}

	if err := s.svc.MarkComplete(r.Context(), id); err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiDeleteCompletedHandler(w http.ResponseWriter, r *http.Request) {
	removed, err := s.svc.DeleteCompleted(r.Context())
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	writeJSON(w, map[string]int64{"deleted": removed}, http.StatusOK)
}

func (s *Server) apiStatusesHandler(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.svc.Statuses(r.Context())
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	writeJSON(w, statuses, http.StatusOK)
}

// apiTaskInput keeps due_date and status as text so that unparsable values
// come back as field errors instead of a decode failure.
type apiTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
}

func (s *Server) decodeTaskInput(w http.ResponseWriter, r *http.Request, defaultStatus model.Status) (tasks.TaskInput, bool) {
	var body apiTaskInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, errorBody{Error: "invalid json: " + err.Error()}, http.StatusBadRequest)
		return tasks.TaskInput{}, false
	}

	input, fields := parseTaskInput(body.Title, body.Description, body.DueDate, body.Status, defaultStatus)
	if len(fields) > 0 {
		s.writeAPIError(w, r, &tasks.ValidationError{Fields: fields})
		return tasks.TaskInput{}, false
	}
	return input, true
}

func apiID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, errorBody{Error: err.Error()}, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
