package web

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/Joseda-hg/tasktrack/internal/model"
	"github.com/Joseda-hg/tasktrack/internal/tasks"
	"github.com/go-chi/chi/v5"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

type indexPage struct {
	Title          string
	Token          string
	Today          model.Date
	Tasks          []model.Task
	StatusOptions  []option
	DueOptions     []option
	CompletedCount int
}

type formPage struct {
	Title          string
	Action         string
	Input          tasks.TaskInput
	DueValue       string
	Fields         []tasks.FieldError
	StatusOptions  []option
	TitleMaxLength int
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	filter := model.ParseFilter(chi.URLParam(r, "token"))

	list, err := s.svc.ListFiltered(r.Context(), filter)
	if err != nil {
		s.writePageError(w, r, err)
		return
	}

	page := indexPage{
		Title: "Tasks",
		Token: filter.Token(),
		Today: s.svc.Today(),
		Tasks: list,
	}

	page.StatusOptions = append(page.StatusOptions, option{Value: "", Label: "All", Selected: !filter.HasStatus()})
	for _, status := range model.Statuses() {
		page.StatusOptions = append(page.StatusOptions, option{
			Value:    status.ID(),
			Label:    status.Name(),
			Selected: filter.Status == status,
		})
	}

	page.DueOptions = append(page.DueOptions, option{Value: "", Label: model.DueAny.Label(), Selected: !filter.HasDue()})
	for _, due := range model.DueBuckets() {
		page.DueOptions = append(page.DueOptions, option{
			Value:    due.String(),
			Label:    due.Label(),
			Selected: filter.Due == due,
		})
	}

	closed := list
	if filter.Status != model.StatusClosed || filter.HasDue() {
		closed, err = s.svc.ListFiltered(r.Context(), model.Filter{Status: model.StatusClosed})
		if err != nil {
			s.writePageError(w, r, err)
			return
		}
	}
	page.CompletedCount = len(closed)

	s.render(w, r, http.StatusOK, indexTemplate, page)
}

// filterHandler turns the dropdown selections into a filter token.
func (s *Server) filterHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	parts := make([]string, 0, 2)
	for _, value := range r.PostForm["filter"] {
		if value = strings.TrimSpace(value); value != "" {
			parts = append(parts, value)
		}
	}

	http.Redirect(w, r, filterPath(strings.Join(parts, model.FilterSeparator)), http.StatusSeeOther)
}

func (s *Server) addFormHandler(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, http.StatusOK, "Add task", "/add", tasks.TaskInput{Status: model.StatusOpen}, "", nil)
}

func (s *Server) addHandler(w http.ResponseWriter, r *http.Request) {
	input, dueValue, fields, err := formInput(r, model.StatusOpen)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if len(fields) > 0 {
		s.renderForm(w, r, http.StatusUnprocessableEntity, "Add task", "/add", input, dueValue, fields)
		return
	}

	if _, err := s.svc.Create(r.Context(), input); err != nil {
		var verr *tasks.ValidationError
		if errors.As(err, &verr) {
			s.renderForm(w, r, http.StatusUnprocessableEntity, "Add task", "/add", input, dueValue, verr.Fields)
			return
		}
		s.writePageError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) editFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	task, err := s.svc.Get(r.Context(), id)
	if err != nil {
		s.writePageError(w, r, err)
		return
	}

	s.renderForm(w, r, http.StatusOK, "Edit task", editPath(id), tasks.InputFromTask(task), task.DueDate.String(), nil)
}

func (s *Server) editHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	input, dueValue, fields, err := formInput(r, model.StatusUnset)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if len(fields) > 0 {
		s.renderForm(w, r, http.StatusUnprocessableEntity, "Edit task", editPath(id), input, dueValue, fields)
		return
	}

	if _, err := s.svc.Edit(r.Context(), id, input); err != nil {
		var verr *tasks.ValidationError
		if errors.As(err, &verr) {
			s.renderForm(w, r, http.StatusUnprocessableEntity, "Edit task", editPath(id), input, dueValue, verr.Fields)
			return
		}
		s.writePageError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) completeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.FormValue("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.svc.MarkComplete(r.Context(), id); err != nil {
		s.writePageError(w, r, err)
		return
	}

	http.Redirect(w, r, filterPath(chi.URLParam(r, "token")), http.StatusSeeOther)
}

func (s *Server) deleteCompletedHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := s.svc.DeleteCompleted(r.Context()); err != nil {
		s.writePageError(w, r, err)
		return
	}

	http.Redirect(w, r, filterPath(chi.URLParam(r, "token")), http.StatusSeeOther)
}

func (s *Server) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if err := s.svc.Delete(r.Context(), id); err != nil {
		s.writePageError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func editPath(id int64) string {
	return "/edit/" + strconv.FormatInt(id, 10)
}

// formInput reads the task form. Values that cannot be parsed are reported
// as field errors together with the regular validation failures, so the
// form can be re-rendered with everything the user typed. A missing status
// becomes defaultStatus.
func formInput(r *http.Request, defaultStatus model.Status) (tasks.TaskInput, string, []tasks.FieldError, error) {
	if err := r.ParseForm(); err != nil {
		return tasks.TaskInput{}, "", nil, err
	}

	dueValue := strings.TrimSpace(r.PostForm.Get("due_date"))
	input, fields := parseTaskInput(
		r.PostForm.Get("title"),
		r.PostForm.Get("description"),
		dueValue,
		r.PostForm.Get("status"),
		defaultStatus,
	)
	return input, dueValue, fields, nil
}

// parseTaskInput builds a TaskInput from raw text values. When a date or
// status cannot be parsed, the returned field errors also carry every
// regular validation failure; otherwise they are nil and validation is left
// to the service.
func parseTaskInput(title, description, dueValue, statusValue string, defaultStatus model.Status) (tasks.TaskInput, []tasks.FieldError) {
	input := tasks.TaskInput{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      defaultStatus,
	}

	var parseFailures []tasks.FieldError
	if dueValue = strings.TrimSpace(dueValue); dueValue != "" {
		due, err := model.ParseDate(dueValue)
		if err != nil {
			parseFailures = append(parseFailures, tasks.FieldError{
				Field:   "due_date",
				Rule:    "date",
				Message: "Please enter a valid due date (YYYY-MM-DD).",
			})
		}
		input.DueDate = due
	}

	if statusValue = strings.TrimSpace(statusValue); statusValue != "" {
		status, ok := model.ParseStatus(statusValue)
		if !ok {
			parseFailures = append(parseFailures, tasks.FieldError{
				Field:   "status",
				Rule:    "oneof",
				Message: "Please select a status.",
			})
		}
		input.Status = status
	}

	if len(parseFailures) == 0 {
		return input, nil
	}
	return input, tasks.MergeFieldErrors(parseFailures, tasks.Validate(input)...)
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, title, action string, input tasks.TaskInput, dueValue string, fields []tasks.FieldError) {
	if dueValue == "" {
		dueValue = input.DueDate.String()
	}

	page := formPage{
		Title:          title,
		Action:         action,
		Input:          input,
		DueValue:       dueValue,
		Fields:         fields,
		TitleMaxLength: tasks.TitleMaxLength,
	}
	for _, st := range model.Statuses() {
		page.StatusOptions = append(page.StatusOptions, option{
			Value:    st.ID(),
			Label:    st.Name(),
			Selected: input.Status == st,
		})
	}

	s.render(w, r, status, formTemplate, page)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.log.ErrorContext(r.Context(), "render template", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
