package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Joseda-hg/tasktrack/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrConstraint = errors.New("constraint violation")
)

// Querier is the set of statements available inside a transaction.
type Querier interface {
	ListTasks(ctx context.Context, filter model.Filter, today model.Date) ([]model.Task, error)
	GetTask(ctx context.Context, id int64) (model.Task, error)
	CreateTask(ctx context.Context, task model.Task) (model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) (model.Task, error)
	SetTaskStatus(ctx context.Context, id int64, status model.Status) (int64, error)
	DeleteTask(ctx context.Context, id int64) (int64, error)
	DeleteTasksByStatus(ctx context.Context, status model.Status) (int64, error)
	ListStatuses(ctx context.Context) ([]model.StatusEntry, error)
	GetStatus(ctx context.Context, status model.Status) (model.StatusEntry, error)
}

type Queries struct {
	db sqlx.ExtContext
}

var _ Querier = (*Queries)(nil)

func New(db sqlx.ExtContext) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sqlx.Tx) *Queries {
	return &Queries{db: tx}
}

const taskColumns = `id, title, description, due_date, status_id`

func (q *Queries) ListTasks(ctx context.Context, filter model.Filter, today model.Date) ([]model.Task, error) {
	query, args := composeListQuery(filter, today)

	tasks := []model.Task{}
	if err := sqlx.SelectContext(ctx, q.db, &tasks, q.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// composeListQuery builds the listing statement for filter, comparing due
// dates against today. Placeholders are in "?" form.
func composeListQuery(filter model.Filter, today model.Date) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)

	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`)

	if filter.HasStatus() {
		sb.WriteString(` AND status_id = ?`)
		args = append(args, filter.Status)
	}

	switch filter.Due {
	case model.DuePast:
		sb.WriteString(` AND due_date < ?`)
		args = append(args, today)
	case model.DueFuture:
		sb.WriteString(` AND due_date > ?`)
		args = append(args, today)
	case model.DueToday:
		sb.WriteString(` AND due_date = ?`)
		args = append(args, today)
	}

	sb.WriteString(` ORDER BY due_date ASC, id ASC`)
	return sb.String(), args
}

func (q *Queries) GetTask(ctx context.Context, id int64) (model.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	var task model.Task
	if err := sqlx.GetContext(ctx, q.db, &task, q.db.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

func (q *Queries) CreateTask(ctx context.Context, task model.Task) (model.Task, error) {
	const query = `
		INSERT INTO tasks (title, description, due_date, status_id)
		VALUES (?, ?, ?, ?)
		RETURNING ` + taskColumns

	var created model.Task
	err := sqlx.GetContext(ctx, q.db, &created, q.db.Rebind(query),
		task.Title, task.Description, task.DueDate, task.Status)
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", mapConstraint(err))
	}
	return created, nil
}

func (q *Queries) UpdateTask(ctx context.Context, task model.Task) (model.Task, error) {
	const query = `
		UPDATE tasks
		SET title = ?,
		    description = ?,
		    due_date = ?,
		    status_id = ?
		WHERE id = ?
		RETURNING ` + taskColumns

	var updated model.Task
	err := sqlx.GetContext(ctx, q.db, &updated, q.db.Rebind(query),
		task.Title, task.Description, task.DueDate, task.Status, task.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("update task: %w", mapConstraint(err))
	}
	return updated, nil
}

func (q *Queries) SetTaskStatus(ctx context.Context, id int64, status model.Status) (int64, error) {
	const query = `UPDATE tasks SET status_id = ? WHERE id = ?`

	res, err := q.db.ExecContext(ctx, q.db.Rebind(query), status, id)
	if err != nil {
		return 0, fmt.Errorf("set task status: %w", mapConstraint(err))
	}
	return res.RowsAffected()
}

func (q *Queries) DeleteTask(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM tasks WHERE id = ?`

	res, err := q.db.ExecContext(ctx, q.db.Rebind(query), id)
	if err != nil {
		return 0, fmt.Errorf("delete task: %w", err)
	}
	return res.RowsAffected()
}

func (q *Queries) DeleteTasksByStatus(ctx context.Context, status model.Status) (int64, error) {
	const query = `DELETE FROM tasks WHERE status_id = ?`

	res, err := q.db.ExecContext(ctx, q.db.Rebind(query), status)
	if err != nil {
		return 0, fmt.Errorf("delete tasks by status: %w", err)
	}
	return res.RowsAffected()
}

func (q *Queries) ListStatuses(ctx context.Context) ([]model.StatusEntry, error) {
	// "open" sorts after "closed"; keep the seeded order instead.
	const query = `
		SELECT status_id, name FROM statuses
		ORDER BY CASE status_id WHEN 'open' THEN 0 ELSE 1 END, status_id`

	statuses := []model.StatusEntry{}
	if err := sqlx.SelectContext(ctx, q.db, &statuses, query); err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	return statuses, nil
}

func (q *Queries) GetStatus(ctx context.Context, status model.Status) (model.StatusEntry, error) {
	const query = `SELECT status_id, name FROM statuses WHERE status_id = ?`

	if !status.Valid() {
		return model.StatusEntry{}, ErrNotFound
	}

	var entry model.StatusEntry
	if err := sqlx.GetContext(ctx, q.db, &entry, q.db.Rebind(query), status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.StatusEntry{}, ErrNotFound
		}
		return model.StatusEntry{}, fmt.Errorf("get status: %w", err)
	}
	return entry, nil
}

// mapConstraint folds foreign key and check violations from either driver
// into ErrConstraint.
func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503", "23514":
			return fmt.Errorf("%w: %s", ErrConstraint, pgErr.Message)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %s", ErrConstraint, liteErr.Error())
	}
	return err
}
