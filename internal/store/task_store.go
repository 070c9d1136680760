// Package store owns the authoritative in-memory task collection. Every
// write path awaits the remote service before mutating state, so a failed
// operation leaves the collection exactly as it was, and the filtered view is
// recomputed eagerly after each mutation so it is always a pure function of
// (collection, criteria).
package store

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"taskManager/internal/api"
	"taskManager/internal/filter"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	"taskManager/internal/notify"
)

// TaskStore serializes all operations behind one mutex held across the
// remote call: overlapping intents on the same store queue up rather than
// interleave, so no response can be applied against state it did not see.
type TaskStore struct {
	mu       sync.Mutex
	api      RemoteAPI
	notifier notify.Notifier

	tasks    []task.Task
	criteria filter.Criteria
	filtered []task.Task
	selected *task.Task
	loading  atomic.Bool
}

// New creates the store and performs the initial load. The returned store is
// usable even when the load failed; the error is surfaced so callers can
// react, and has already been reported through the notifier.
func New(ctx context.Context, remote RemoteAPI, notifier notify.Notifier) (*TaskStore, error) {
	s := &TaskStore{
		api:      remote,
		notifier: notifier,
		filtered: []task.Task{},
	}
	err := s.Load(ctx)
	return s, err
}

// refilter must be called with the lock held, after every mutation of tasks
// or criteria.
func (s *TaskStore) refilter() {
	s.filtered = filter.Apply(s.tasks, s.criteria)
}

// Load replaces the collection with the remote service's task list. On
// failure the collection is left untouched, never partially replaced.
func (s *TaskStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading.Store(true)
	tasks, err := s.api.Tasks(ctx)
	s.loading.Store(false)

	if err != nil {
		logger.Error("store: loading tasks failed", err)
		s.notifier.Error("Failed to load tasks")
		return err
	}

	s.tasks = tasks
	s.refilter()
	logger.Info("store: tasks loaded", zap.Int("count", len(tasks)))
	return nil
}

// Create sends the draft to the remote service and prepends the returned
// task. A non-empty title is a precondition owned by the caller's form; it is
// not re-validated here. There is no optimistic insertion: a task the server
// rejected is never visible.
func (s *TaskStore) Create(ctx context.Context, draft task.Draft) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.api.CreateTask(ctx, draft)
	if err != nil {
		s.notifier.Error(api.Message(err, "Failed to create task"))
		return task.Task{}, err
	}

	s.tasks = append([]task.Task{created}, s.tasks...)
	s.refilter()
	s.notifier.Success("Task created successfully!")
	return created, nil
}

// Update sends a partial update and replaces the matching task by id. An id
// absent from the collection is silently ignored; the remote service is
// authoritative. A matching selection is replaced too.
func (s *TaskStore) Update(ctx context.Context, id string, patch task.Patch) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.api.UpdateTask(ctx, id, patch)
	if err != nil {
		s.notifier.Error(api.Message(err, "Failed to update task"))
		return task.Task{}, err
	}

	for i := range s.tasks {
		if s.tasks[i].ID == updated.ID {
			s.tasks[i] = updated
			break
		}
	}
	if s.selected != nil && s.selected.ID == updated.ID {
		sel := updated
		s.selected = &sel
	}
	s.refilter()
	s.notifier.Success("Task updated successfully!")
	return updated, nil
}

// Delete removes the task with id after the remote service confirms, and
// clears a matching selection.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.api.DeleteTask(ctx, id); err != nil {
		s.notifier.Error(api.Message(err, "Failed to delete task"))
		return err
	}

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.refilter()
	s.notifier.Success("Task deleted successfully!")
	return nil
}

// Select marks the task a form is editing; nil clears the selection. Purely
// local.
func (s *TaskStore) Select(t *task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t == nil {
		s.selected = nil
		return
	}
	sel := *t
	s.selected = &sel
}

// SetFilter merges the patch into the active criteria and recomputes the
// view. A field patched to its zero value (or "all") drops that constraint.
func (s *TaskStore) SetFilter(p filter.Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria = s.criteria.Merge(p)
	s.refilter()
}

// ClearFilter resets the criteria; the view becomes the full collection.
func (s *TaskStore) ClearFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria = filter.Criteria{}
	s.refilter()
}

// GetByID is a pure lookup in the collection.
func (s *TaskStore) GetByID(id string) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return s.tasks[i], true
		}
	}
	return task.Task{}, false
}

// Tasks returns a snapshot of the collection.
func (s *TaskStore) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]task.Task(nil), s.tasks...)
}

// Filtered returns a snapshot of the derived view.
func (s *TaskStore) Filtered() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]task.Task(nil), s.filtered...)
}

// Selected returns the current selection, if any.
func (s *TaskStore) Selected() (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == nil {
		return task.Task{}, false
	}
	return *s.selected, true
}

// Criteria returns the active filter criteria.
func (s *TaskStore) Criteria() filter.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// Loading reports whether a Load is in flight. It reads an atomic flag so it
// never blocks behind an operation holding the store lock.
func (s *TaskStore) Loading() bool {
	return s.loading.Load()
}
