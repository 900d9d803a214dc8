package events

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Joseda-hg/tasktrack/internal/model"
)

func TestEventJSON(t *testing.T) {
	event := Event{
		Type:       TaskCompleted,
		TaskID:     7,
		Status:     model.StatusClosed,
		OccurredAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}

	body, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"task.completed","task_id":7,"status":"closed","occurred_at":"2026-03-14T12:00:00Z"}`
	if string(body) != want {
		t.Fatalf("expected %s, got %s", want, body)
	}
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	publisher := NewLogPublisher(log)
	if err := publisher.Publish(context.Background(), Event{Type: CompletedPurged, Count: 3}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "type=tasks.completed_deleted") || !strings.Contains(out, "count=3") {
		t.Fatalf("unexpected log output %q", out)
	}
}
