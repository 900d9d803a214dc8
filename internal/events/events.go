package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/Joseda-hg/tasktrack/internal/model"
)

type Type string

const (
	TaskCreated     Type = "task.created"
	TaskUpdated     Type = "task.updated"
	TaskCompleted   Type = "task.completed"
	TaskDeleted     Type = "task.deleted"
	CompletedPurged Type = "tasks.completed_deleted"
)

// Event is a change notification emitted after a lifecycle operation
// commits.
type Event struct {
	Type       Type         `json:"type"`
	TaskID     int64        `json:"task_id,omitempty"`
	Status     model.Status `json:"status,omitempty"`
	Count      int64        `json:"count,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes events to a logger at debug level. It is used when no
// broker is configured.
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.log.DebugContext(ctx, "task event",
		"type", string(event.Type),
		"task_id", event.TaskID,
		"status", event.Status.ID(),
		"count", event.Count,
	)
	return nil
}
