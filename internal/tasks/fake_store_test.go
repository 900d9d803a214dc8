package tasks

import (
	"context"
	"sort"

	"github.com/Joseda-hg/tasktrack/internal/db"
	"github.com/Joseda-hg/tasktrack/internal/events"
	"github.com/Joseda-hg/tasktrack/internal/model"
)

// fakeStore keeps tasks in memory and restores the previous state when a
// transaction function fails.
type fakeStore struct {
	tasks    map[int64]model.Task
	nextID   int64
	failWith error
	txCount  int
}

var (
	_ Store      = (*fakeStore)(nil)
	_ db.Querier = (*fakeStore)(nil)
)

func newFakeStore() *fakeStore {
	return &fakeStore{tasks: make(map[int64]model.Task), nextID: 1}
}

func (f *fakeStore) WithTx(_ context.Context, fn func(db.Querier) error) error {
	f.txCount++
	if f.failWith != nil {
		return f.failWith
	}
	snapshot := f.snapshot()
	nextID := f.nextID
	if err := fn(f); err != nil {
		f.tasks = snapshot
		f.nextID = nextID
		return err
	}
	return nil
}

func (f *fakeStore) snapshot() map[int64]model.Task {
	out := make(map[int64]model.Task, len(f.tasks))
	for id, task := range f.tasks {
		out[id] = task
	}
	return out
}

func (f *fakeStore) ListTasks(_ context.Context, filter model.Filter, today model.Date) ([]model.Task, error) {
	out := []model.Task{}
	for _, task := range f.tasks {
		if filter.Matches(task, today) {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func (f *fakeStore) GetTask(_ context.Context, id int64) (model.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return model.Task{}, db.ErrNotFound
	}
	return task, nil
}

func (f *fakeStore) CreateTask(_ context.Context, task model.Task) (model.Task, error) {
	task.ID = f.nextID
	f.nextID++
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeStore) UpdateTask(_ context.Context, task model.Task) (model.Task, error) {
	if _, ok := f.tasks[task.ID]; !ok {
		return model.Task{}, db.ErrNotFound
	}
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeStore) SetTaskStatus(_ context.Context, id int64, status model.Status) (int64, error) {
	task, ok := f.tasks[id]
	if !ok {
		return 0, nil
	}
	task.Status = status
	f.tasks[id] = task
	return 1, nil
}

func (f *fakeStore) DeleteTask(_ context.Context, id int64) (int64, error) {
	if _, ok := f.tasks[id]; !ok {
		return 0, nil
	}
	delete(f.tasks, id)
	return 1, nil
}

func (f *fakeStore) DeleteTasksByStatus(_ context.Context, status model.Status) (int64, error) {
	var removed int64
	for id, task := range f.tasks {
		if task.Status == status {
			delete(f.tasks, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeStore) ListStatuses(_ context.Context) ([]model.StatusEntry, error) {
	return []model.StatusEntry{
		{ID: model.StatusOpen, Name: model.StatusOpen.Name()},
		{ID: model.StatusClosed, Name: model.StatusClosed.Name()},
	}, nil
}

func (f *fakeStore) GetStatus(_ context.Context, status model.Status) (model.StatusEntry, error) {
	if !status.Valid() {
		return model.StatusEntry{}, db.ErrNotFound
	}
	return model.StatusEntry{ID: status, Name: status.Name()}, nil
}

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []events.Type {
	out := make([]events.Type, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.Type)
	}
	return out
}
