package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Joseda-hg/tasktrack/internal/model"
	"github.com/Joseda-hg/tasktrack/internal/tasks"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"relativeDue": relativeDue,
	"fieldError":  fieldError,
}

var (
	indexTemplate = template.Must(template.New("index.tmpl").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.tmpl", "templates/index.tmpl"))
	formTemplate  = template.Must(template.New("form.tmpl").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.tmpl", "templates/form.tmpl"))
)

// TaskService is the subset of the task lifecycle the web layer drives.
type TaskService interface {
	Today() model.Date
	ListFiltered(ctx context.Context, filter model.Filter) ([]model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	Create(ctx context.Context, input tasks.TaskInput) (model.Task, error)
	Edit(ctx context.Context, id int64, input tasks.TaskInput) (model.Task, error)
	MarkComplete(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	DeleteCompleted(ctx context.Context) (int64, error)
	Statuses(ctx context.Context) ([]model.StatusEntry, error)
}

type Server struct {
	svc     TaskService
	log     *slog.Logger
	timeout time.Duration
}

func NewServer(svc TaskService, log *slog.Logger, timeout time.Duration) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{svc: svc, log: log, timeout: timeout}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.Get("/", s.indexHandler)
	r.Get("/filter/{token}", s.indexHandler)
	r.Post("/filter", s.filterHandler)

	r.Get("/add", s.addFormHandler)
	r.Post("/add", s.addHandler)
	r.Get("/edit/{id}", s.editFormHandler)
	r.Post("/edit/{id}", s.editHandler)

	r.Post("/complete", s.completeHandler)
	r.Post("/complete/{token}", s.completeHandler)
	r.Post("/delete-completed", s.deleteCompletedHandler)
	r.Post("/delete-completed/{token}", s.deleteCompletedHandler)
	r.Post("/delete/{id}", s.deleteHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/statuses", s.apiStatusesHandler)
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.apiListHandler)
			r.Post("/", s.apiCreateHandler)
			r.Delete("/completed", s.apiDeleteCompletedHandler)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.apiGetHandler)
				r.Put("/", s.apiEditHandler)
				r.Delete("/", s.apiDeleteHandler)
				r.Post("/complete", s.apiCompleteHandler)
			})
		})
	})

	return r
}

// filterPath is the listing URL for a filter token.
func filterPath(token string) string {
	token = model.ParseFilter(token).Token()
	if token == "" {
		return "/"
	}
	return "/filter/" + token
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid task id")
	}
	return id, nil
}

func relativeDue(due, today model.Date) string {
	return due.Relative(today)
}

func fieldError(fields []tasks.FieldError, name string) string {
	for _, f := range fields {
		if f.Field == name {
			return f.Message
		}
	}
	return ""
}
