package tasks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/Joseda-hg/tasktrack/internal/db"
	"github.com/Joseda-hg/tasktrack/internal/events"
	"github.com/Joseda-hg/tasktrack/internal/model"
)

// Store opens a transaction scoped to one operation.
type Store interface {
	WithTx(ctx context.Context, fn func(db.Querier) error) error
}

type Service struct {
	store     Store
	publisher events.Publisher
	log       *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithPublisher(publisher events.Publisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func NewService(store Store, log *slog.Logger, opts ...Option) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Service{
		store: store,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.publisher == nil {
		s.publisher = events.NewLogPublisher(log)
	}
	return s
}

// Today is the evaluation date for due-date comparisons. It is read on every
// call.
func (s *Service) Today() model.Date {
	return model.DateOf(s.now())
}

// List returns the tasks matching a filter token, ordered by due date.
func (s *Service) List(ctx context.Context, token string) ([]model.Task, error) {
	return s.ListFiltered(ctx, model.ParseFilter(token))
}

func (s *Service) ListFiltered(ctx context.Context, filter model.Filter) ([]model.Task, error) {
	today := s.Today()

	var result []model.Task
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		tasks, err := q.ListTasks(ctx, filter, today)
		result = tasks
		return err
	})
	if err != nil {
		return nil, err
	}

	for i := range result {
		result[i].Overdue = result[i].IsOverdue(today)
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.Task, error) {
	var task model.Task
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		found, err := q.GetTask(ctx, id)
		task = found
		return err
	})
	if err != nil {
		return model.Task{}, translate(err)
	}

	task.Overdue = task.IsOverdue(s.Today())
	return task, nil
}

// Create inserts a new task. A missing status defaults to open.
func (s *Service) Create(ctx context.Context, input TaskInput) (model.Task, error) {
	input = input.normalized()
	if input.Status == model.StatusUnset {
		input.Status = model.StatusOpen
	}
	if fields := Validate(input); len(fields) > 0 {
		return model.Task{}, &ValidationError{Fields: fields}
	}

	var created model.Task
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		if err := checkStatus(ctx, q, input.Status); err != nil {
			return err
		}
		task, err := q.CreateTask(ctx, input.task(0))
		created = task
		return err
	})
	if err != nil {
		return model.Task{}, translate(err)
	}

	created.Overdue = created.IsOverdue(s.Today())
	s.log.Info("task created", "id", created.ID, "due", created.DueDate.String())
	s.publish(ctx, events.Event{Type: events.TaskCreated, TaskID: created.ID, Status: created.Status})
	return created, nil
}

// Edit replaces every editable field of an existing task. The status is
// written as given, including closed back to open.
func (s *Service) Edit(ctx context.Context, id int64, input TaskInput) (model.Task, error) {
	input = input.normalized()
	if fields := Validate(input); len(fields) > 0 {
		return model.Task{}, &ValidationError{Fields: fields}
	}

	var before, after model.Task
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		current, err := q.GetTask(ctx, id)
		if err != nil {
			return err
		}
		before = current

		if err := checkStatus(ctx, q, input.Status); err != nil {
			return err
		}

		updated, err := q.UpdateTask(ctx, input.task(id))
		after = updated
		return err
	})
	if err != nil {
		return model.Task{}, translate(err)
	}

	if before.Status == model.StatusClosed && after.Status == model.StatusOpen {
		s.log.Info("task reopened through edit", "id", id)
	}

	after.Overdue = after.IsOverdue(s.Today())
	s.log.Info("task updated", "id", id)
	s.publish(ctx, events.Event{Type: events.TaskUpdated, TaskID: id, Status: after.Status})
	return after, nil
}

// MarkComplete closes a task. An id that does not resolve is ignored and is
// not an error.
func (s *Service) MarkComplete(ctx context.Context, id int64) error {
	var affected int64
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		n, err := q.SetTaskStatus(ctx, id, model.StatusClosed)
		affected = n
		return err
	})
	if err != nil {
		return err
	}

	if affected == 0 {
		s.log.Debug("mark complete ignored unknown task", "id", id)
		return nil
	}

	s.log.Info("task completed", "id", id)
	s.publish(ctx, events.Event{Type: events.TaskCompleted, TaskID: id, Status: model.StatusClosed})
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		n, err := q.DeleteTask(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return translate(err)
	}

	s.log.Info("task deleted", "id", id)
	s.publish(ctx, events.Event{Type: events.TaskDeleted, TaskID: id})
	return nil
}

// DeleteCompleted removes every closed task and reports how many were
// removed.
func (s *Service) DeleteCompleted(ctx context.Context) (int64, error) {
	var removed int64
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		n, err := q.DeleteTasksByStatus(ctx, model.StatusClosed)
		removed = n
		return err
	})
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.log.Info("completed tasks deleted", "count", removed)
		s.publish(ctx, events.Event{Type: events.CompletedPurged, Count: removed})
	}
	return removed, nil
}

func (s *Service) Statuses(ctx context.Context) ([]model.StatusEntry, error) {
	var statuses []model.StatusEntry
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		rows, err := q.ListStatuses(ctx)
		statuses = rows
		return err
	})
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	event.OccurredAt = s.now()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("publish task event", "type", string(event.Type), "error", err)
	}
}

func checkStatus(ctx context.Context, q db.Querier, status model.Status) error {
	if _, err := q.GetStatus(ctx, status); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return &ValidationError{Fields: []FieldError{{
				Field:   "status",
				Rule:    "exists",
				Message: "Please select a status.",
			}}}
		}
		return err
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, db.ErrConstraint) {
		return &ValidationError{Fields: []FieldError{{
			Field:   "task",
			Rule:    "constraint",
			Message: err.Error(),
		}}}
	}
	return err
}
