package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Joseda-hg/tasktrack/internal/db"
	"github.com/Joseda-hg/tasktrack/internal/model"
	"github.com/Joseda-hg/tasktrack/internal/tasks"
	"github.com/jesseduffield/gocui"
)

var testNow = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func TestLoadTasksSplitsPanes(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	today := svc.Today()

	mustCreate(t, svc, "late", today.AddDays(-1), model.StatusOpen)
	mustCreate(t, svc, "soon", today.AddDays(1), model.StatusOpen)
	mustCreate(t, svc, "done", today, model.StatusClosed)

	ui := newUI(context.Background(), svc, nil)
	if err := ui.loadTasks(); err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(ui.open) != 2 || len(ui.completed) != 1 {
		t.Fatalf("expected 2 open and 1 completed, got %d and %d", len(ui.open), len(ui.completed))
	}
	if ui.open[0].Title != "late" || !ui.open[0].Overdue {
		t.Fatalf("expected overdue task first, got %+v", ui.open[0])
	}
	if !strings.HasPrefix(formatTaskSummary(ui.open[0]), "!") {
		t.Fatalf("expected overdue marker in %q", formatTaskSummary(ui.open[0]))
	}
}

func TestFilterKeys(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	today := svc.Today()

	mustCreate(t, svc, "late", today.AddDays(-1), model.StatusOpen)
	mustCreate(t, svc, "soon", today.AddDays(1), model.StatusOpen)
	mustCreate(t, svc, "done", today, model.StatusClosed)

	ui := newUI(context.Background(), svc, nil)

	if err := ui.cycleStatusFilter(nil, nil); err != nil {
		t.Fatalf("cycle status: %v", err)
	}
	if ui.filter.Token() != "open" || len(ui.open) != 2 || len(ui.completed) != 0 {
		t.Fatalf("unexpected state for %q: %d open, %d completed", ui.filter.Token(), len(ui.open), len(ui.completed))
	}

	if err := ui.cycleDueFilter(nil, nil); err != nil {
		t.Fatalf("cycle due: %v", err)
	}
	if ui.filter.Token() != "open-past" || len(ui.open) != 1 || ui.open[0].Title != "late" {
		t.Fatalf("unexpected state for %q: %+v", ui.filter.Token(), ui.open)
	}

	if err := ui.clearFilter(nil, nil); err != nil {
		t.Fatalf("clear filter: %v", err)
	}
	if !ui.filter.IsEmpty() || len(ui.open)+len(ui.completed) != 3 {
		t.Fatalf("expected every task after clearing the filter")
	}
}

func TestNextFilterCycles(t *testing.T) {
	status := model.StatusUnset
	var seen []string
	for i := 0; i < 3; i++ {
		status = nextStatusFilter(status)
		seen = append(seen, status.ID())
	}
	if strings.Join(seen, ",") != "open,closed," {
		t.Fatalf("unexpected status cycle %v", seen)
	}

	due := model.DueAny
	var dues []string
	for i := 0; i < 4; i++ {
		due = nextDueFilter(due)
		dues = append(dues, due.String())
	}
	if strings.Join(dues, ",") != "past,future,today," {
		t.Fatalf("unexpected due cycle %v", dues)
	}
}

func TestMarkCompleteAndDeleteCompleted(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	mustCreate(t, svc, "chore", svc.Today(), model.StatusOpen)

	ui := newUI(context.Background(), svc, nil)
	if err := ui.loadTasks(); err != nil {
		t.Fatalf("load tasks: %v", err)
	}

	if err := ui.markComplete(nil, nil); err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if len(ui.open) != 0 || len(ui.completed) != 1 {
		t.Fatalf("expected task to move to completed pane")
	}

	if err := ui.deleteCompleted(nil, nil); err != nil {
		t.Fatalf("delete completed: %v", err)
	}
	if len(ui.completed) != 0 {
		t.Fatalf("expected completed pane to be empty")
	}
	if ui.status != "Deleted 1 completed task(s)" {
		t.Fatalf("unexpected status %q", ui.status)
	}
}

func TestDeleteSelectedTask(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	mustCreate(t, svc, "first", svc.Today(), model.StatusOpen)
	mustCreate(t, svc, "second", svc.Today().AddDays(1), model.StatusOpen)

	ui := newUI(context.Background(), svc, nil)
	if err := ui.loadTasks(); err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if err := ui.moveDown(nil, nil); err != nil {
		t.Fatalf("move down: %v", err)
	}
	if err := ui.deleteTask(nil, nil); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if len(ui.open) != 1 || ui.open[0].Title != "first" {
		t.Fatalf("expected only the first task to remain, got %+v", ui.open)
	}
	if ui.selectedOpen != 0 {
		t.Fatalf("expected selection to be clamped, got %d", ui.selectedOpen)
	}
}

func TestFormSave(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	ui := newUI(context.Background(), svc, nil)
	if err := ui.addTask(nil, nil); err != nil {
		t.Fatalf("add task: %v", err)
	}

	t.Run("validation keeps form open", func(t *testing.T) {
		ui.form.fields[fieldTitle].Value = "Buy milk"
		ui.form.fields[fieldDue].Value = "next week"

		if ui.saveForm() {
			t.Fatalf("expected save to fail")
		}
		if ui.form == nil {
			t.Fatalf("expected form to stay open")
		}
		if ui.form.fieldError("due_date") == "" || ui.form.fieldError("description") == "" {
			t.Fatalf("expected due date and description errors, got %+v", ui.form.errors)
		}
	})

	t.Run("valid input creates task", func(t *testing.T) {
		ui.form.fields[fieldDescription].Value = "2%"
		ui.form.fields[fieldDue].Value = "2026-03-13"

		if !ui.saveForm() {
			t.Fatalf("expected save to succeed, status %q", ui.status)
		}
		if ui.form != nil {
			t.Fatalf("expected form to close")
		}
		if len(ui.open) != 1 || !ui.open[0].Overdue {
			t.Fatalf("expected one overdue open task, got %+v", ui.open)
		}
	})

	t.Run("edit closes task through status field", func(t *testing.T) {
		if err := ui.editTask(nil, nil); err != nil {
			t.Fatalf("edit task: %v", err)
		}
		ui.form.index = fieldStatus
		ui.form.applyKey(gocui.KeySpace, 0, gocui.ModNone)
		if ui.form.fields[fieldStatus].Value != "closed" {
			t.Fatalf("expected status toggle, got %q", ui.form.fields[fieldStatus].Value)
		}
		if !ui.saveForm() {
			t.Fatalf("expected save to succeed, status %q", ui.status)
		}
		if len(ui.completed) != 1 || ui.completed[0].Title != "Buy milk" {
			t.Fatalf("expected task in completed pane, got %+v", ui.completed)
		}
	})
}

func TestFormApplyKey(t *testing.T) {
	form := newFormState(nil)

	for _, ch := range "milk" {
		form.applyKey(0, ch, gocui.ModNone)
	}
	form.applyKey(gocui.KeySpace, 0, gocui.ModNone)
	form.applyKey(gocui.KeyBackspace2, 0, gocui.ModNone)
	if form.fields[fieldTitle].Value != "milk" {
		t.Fatalf("unexpected title %q", form.fields[fieldTitle].Value)
	}

	form.applyKey(gocui.KeyCtrlU, 0, gocui.ModNone)
	if form.fields[fieldTitle].Value != "" {
		t.Fatalf("expected ctrl-u to clear the field")
	}

	for i := 0; i < 10; i++ {
		form.next()
	}
	if form.index != fieldStatus {
		t.Fatalf("expected index to stop at the last field, got %d", form.index)
	}
}

func TestComputeLayout(t *testing.T) {
	l := computeLayout(120, 40)
	if l.leftWidth <= 0 || l.leftWidth >= 120 {
		t.Fatalf("unexpected left width %d", l.leftWidth)
	}
	if l.openHeight+l.completedHeight != 40 {
		t.Fatalf("expected panes to fill the body, got %d+%d", l.openHeight, l.completedHeight)
	}

	small := computeLayout(10, 3)
	if small.openHeight < 4 || small.completedHeight < 4 {
		t.Fatalf("expected minimum pane heights, got %+v", small)
	}
}

func mustCreate(t *testing.T, svc *tasks.Service, title string, due model.Date, status model.Status) {
	t.Helper()
	if _, err := svc.Create(context.Background(), tasks.TaskInput{
		Title:       title,
		Description: title,
		DueDate:     due,
		Status:      status,
	}); err != nil {
		t.Fatalf("create task: %v", err)
	}
}

func newTestService(t *testing.T) (*tasks.Service, func()) {
	t.Helper()
	dbConn, err := db.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	svc := tasks.NewService(db.NewStore(dbConn), nil, tasks.WithClock(func() time.Time { return testNow }))
	return svc, func() {
		_ = dbConn.Close()
	}
}

func TestWatchContext(t *testing.T) {
	done := make(chan struct{})
	quits := 0
	stopped := watchContext(context.Background(), done, func() { quits++ })
	close(done)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatalf("watcher did not exit after the main loop returned")
	}
	if quits != 0 {
		t.Fatalf("expected no quit after done, got %d", quits)
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopped = watchContext(ctx, make(chan struct{}), func() { quits++ })
	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatalf("watcher did not exit after cancel")
	}
	if quits != 1 {
		t.Fatalf("expected one quit after cancel, got %d", quits)
	}
}
