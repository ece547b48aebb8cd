package core

import (
	"fmt"

	"github.com/valter-silva-au/todo-cli/pkg/models"
)

// TaskStore is the subset of storage.CollectionStore that TaskManager needs.
// Defining it here keeps core independent of the storage package.
type TaskStore interface {
	Load() ([]models.Task, error)
	Save(tasks []models.Task) error
}

// TaskManager runs task list commands. Every mutating call performs one full
// load-mutate-save cycle against the backing stores.
type TaskManager interface {
	Dispatch(cmd Command) (Outcome, error)
	Add(name, completionTime string) (Outcome, error)
	Remove(name string) (Outcome, error)
	Rename(name, newName string) (Outcome, error)
	Reschedule(name, completionTime string) (Outcome, error)
	Complete(name string) (Outcome, error)
	ListActive(show bool) (Outcome, error)
	ListCompleted(show bool) (Outcome, error)
}

type taskManager struct {
	active    TaskStore
	completed TaskStore
	policy    models.MatchPolicy
	events    EventLogger
}

// TaskManagerOption configures optional TaskManager collaborators.
type TaskManagerOption func(*taskManager)

// WithEventLogger records every successful mutation to el. Recording is best
// effort: a failed write never fails the operation.
func WithEventLogger(el EventLogger) TaskManagerOption {
	return func(tm *taskManager) {
		tm.events = el
	}
}

// NewTaskManager creates a TaskManager over the active and completed stores.
// An empty policy means models.MatchPerOperation.
func NewTaskManager(active, completed TaskStore, policy models.MatchPolicy, opts ...TaskManagerOption) TaskManager {
	if policy == "" {
		policy = models.MatchPerOperation
	}
	tm := &taskManager{
		active:    active,
		completed: completed,
		policy:    policy,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// Dispatch validates cmd and runs the matching operation. Argument errors are
// returned before any store is read.
func (tm *taskManager) Dispatch(cmd Command) (Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return Outcome{Kind: cmd.Kind}, err
	}

	switch cmd.Kind {
	case KindAdd:
		return tm.Add(cmd.Args[0], cmd.Args[1])
	case KindRemove:
		return tm.Remove(cmd.Args[0])
	case KindRename:
		return tm.Rename(cmd.Args[0], cmd.Args[1])
	case KindReschedule:
		return tm.Reschedule(cmd.Args[0], cmd.Args[1])
	case KindComplete:
		return tm.Complete(cmd.Args[0])
	case KindListActive:
		return tm.ListActive(cmd.Show)
	case KindListCompleted:
		return tm.ListCompleted(cmd.Show)
	}
	return Outcome{Kind: cmd.Kind}, ErrNoCommand
}

func (tm *taskManager) Add(name, completionTime string) (Outcome, error) {
	if name == "" {
		return Outcome{Kind: KindAdd}, fmt.Errorf("%w: task name must not be empty", ErrInvalidArgument)
	}

	tasks, err := tm.active.Load()
	if err != nil {
		return Outcome{Kind: KindAdd}, fmt.Errorf("loading active tasks: %w", err)
	}
	if err := tm.active.Save(AddTask(tasks, name, completionTime)); err != nil {
		return Outcome{Kind: KindAdd}, fmt.Errorf("saving active tasks: %w", err)
	}
	tm.logEvent(EventTaskAdded, name, map[string]any{"completion_time": completionTime})

	return Outcome{
		Kind:     KindAdd,
		Message:  fmt.Sprintf("Task %q added.", name),
		Affected: 1,
	}, nil
}

func (tm *taskManager) Remove(name string) (Outcome, error) {
	tasks, err := tm.active.Load()
	if err != nil {
		return Outcome{Kind: KindRemove}, fmt.Errorf("loading active tasks: %w", err)
	}

	kept, removed := RemoveTasks(tasks, name, tm.policy)
	if removed == 0 {
		return Outcome{Kind: KindRemove}, fmt.Errorf("%w: %q", ErrTaskNotFound, name)
	}
	if err := tm.active.Save(kept); err != nil {
		return Outcome{Kind: KindRemove}, fmt.Errorf("saving active tasks: %w", err)
	}
	tm.logEvent(EventTaskRemoved, name, map[string]any{"count": removed})

	return Outcome{
		Kind:     KindRemove,
		Message:  fmt.Sprintf("Removed %s named %q.", plural(removed), name),
		Affected: removed,
	}, nil
}

func (tm *taskManager) Rename(name, newName string) (Outcome, error) {
	if newName == "" {
		return Outcome{Kind: KindRename}, fmt.Errorf("%w: new task name must not be empty", ErrInvalidArgument)
	}
	return tm.update(KindRename, name, func(tasks []models.Task) ([]models.Task, int) {
		return RenameTask(tasks, name, newName, tm.policy)
	}, fmt.Sprintf("renamed to %q", newName), EventTaskRenamed, map[string]any{"new_name": newName})
}

func (tm *taskManager) Reschedule(name, completionTime string) (Outcome, error) {
	return tm.update(KindReschedule, name, func(tasks []models.Task) ([]models.Task, int) {
		return RescheduleTask(tasks, name, completionTime, tm.policy)
	}, fmt.Sprintf("rescheduled to %q", completionTime), EventTaskRescheduled, map[string]any{"completion_time": completionTime})
}

// update loads the active tasks, applies fn, and saves only when fn changed
// at least one task.
func (tm *taskManager) update(kind CommandKind, name string, fn func([]models.Task) ([]models.Task, int), verb, event string, data map[string]any) (Outcome, error) {
	tasks, err := tm.active.Load()
	if err != nil {
		return Outcome{Kind: kind}, fmt.Errorf("loading active tasks: %w", err)
	}

	updated, changed := fn(tasks)
	if changed == 0 {
		return Outcome{Kind: kind}, fmt.Errorf("%w: %q", ErrTaskNotFound, name)
	}
	if err := tm.active.Save(updated); err != nil {
		return Outcome{Kind: kind}, fmt.Errorf("saving active tasks: %w", err)
	}
	data["count"] = changed
	tm.logEvent(event, name, data)

	return Outcome{
		Kind:     kind,
		Message:  fmt.Sprintf("Task %q %s.", name, verb),
		Affected: changed,
	}, nil
}

func (tm *taskManager) Complete(name string) (Outcome, error) {
	active, err := tm.active.Load()
	if err != nil {
		return Outcome{Kind: KindComplete}, fmt.Errorf("loading active tasks: %w", err)
	}
	completed, err := tm.completed.Load()
	if err != nil {
		return Outcome{Kind: KindComplete}, fmt.Errorf("loading completed tasks: %w", err)
	}

	newActive, newCompleted, moved := CompleteTasks(active, completed, name, tm.policy)
	if moved == 0 {
		return Outcome{Kind: KindComplete}, fmt.Errorf("%w: %q", ErrTaskNotFound, name)
	}

	// Completed is saved first: a failure between the two saves leaves a
	// duplicate, never a lost task.
	if err := tm.completed.Save(newCompleted); err != nil {
		return Outcome{Kind: KindComplete}, fmt.Errorf("saving completed tasks: %w", err)
	}
	if err := tm.active.Save(newActive); err != nil {
		return Outcome{Kind: KindComplete}, fmt.Errorf("saving active tasks: %w", err)
	}
	tm.logEvent(EventTaskCompleted, name, map[string]any{"count": moved})

	return Outcome{
		Kind:     KindComplete,
		Message:  fmt.Sprintf("Completed %s named %q.", plural(moved), name),
		Affected: moved,
	}, nil
}

func (tm *taskManager) ListActive(show bool) (Outcome, error) {
	return tm.list(KindListActive, tm.active, show)
}

func (tm *taskManager) ListCompleted(show bool) (Outcome, error) {
	return tm.list(KindListCompleted, tm.completed, show)
}

func (tm *taskManager) list(kind CommandKind, store TaskStore, show bool) (Outcome, error) {
	if !show {
		return Outcome{Kind: kind}, nil
	}

	tasks, err := store.Load()
	if err != nil {
		return Outcome{Kind: kind}, fmt.Errorf("loading %s tasks: %w", collectionFor(kind), err)
	}

	return Outcome{
		Kind:     kind,
		Message:  fmt.Sprintf("%s %s.", plural(len(tasks)), collectionFor(kind)),
		Affected: len(tasks),
		Tasks:    Enumerate(tasks),
	}, nil
}

// logEvent records a mutation if an event logger is configured.
func (tm *taskManager) logEvent(eventType, task string, data map[string]any) {
	if tm.events == nil {
		return
	}
	_ = tm.events.LogEvent(eventType, task, data)
}

func collectionFor(kind CommandKind) models.CollectionKind {
	if kind == KindListCompleted {
		return models.CollectionCompleted
	}
	return models.CollectionActive
}

func plural(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
