// Package core contains the task list business logic: pure operations over
// in-memory task collections, the command dispatcher that runs one
// load-mutate-save cycle per command, and configuration loading.
package core

import (
	"iter"

	"github.com/valter-silva-au/todo-cli/pkg/models"
)

// matchesAll reports whether kind acts on every task with the given name
// under policy, rather than only the first.
func matchesAll(kind CommandKind, policy models.MatchPolicy) bool {
	switch policy {
	case models.MatchFirst:
		return false
	case models.MatchAll:
		return true
	default:
		return kind == KindRemove || kind == KindComplete
	}
}

// AddTask returns a copy of tasks with a new task appended. Duplicate names
// are allowed.
func AddTask(tasks []models.Task, name, completionTime string) []models.Task {
	out := make([]models.Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	return append(out, models.Task{Name: name, CompletionTime: completionTime})
}

// RemoveTasks returns a copy of tasks without the tasks named name and the
// number of tasks removed.
func RemoveTasks(tasks []models.Task, name string, policy models.MatchPolicy) ([]models.Task, int) {
	kept, removed := partition(tasks, name, matchesAll(KindRemove, policy))
	return kept, len(removed)
}

// RenameTask returns a copy of tasks with matching tasks renamed to newName
// and the number of tasks changed.
func RenameTask(tasks []models.Task, name, newName string, policy models.MatchPolicy) ([]models.Task, int) {
	return updateTasks(tasks, name, matchesAll(KindRename, policy), func(t *models.Task) {
		t.Name = newName
	})
}

// RescheduleTask returns a copy of tasks with the completion time of
// matching tasks set to completionTime and the number of tasks changed.
func RescheduleTask(tasks []models.Task, name, completionTime string, policy models.MatchPolicy) ([]models.Task, int) {
	return updateTasks(tasks, name, matchesAll(KindReschedule, policy), func(t *models.Task) {
		t.CompletionTime = completionTime
	})
}

// CompleteTasks moves the tasks named name from active to the end of
// completed. Both results keep the relative order of their tasks. The input
// slices are not modified.
func CompleteTasks(active, completed []models.Task, name string, policy models.MatchPolicy) (newActive, newCompleted []models.Task, moved int) {
	kept, matched := partition(active, name, matchesAll(KindComplete, policy))
	newCompleted = make([]models.Task, 0, len(completed)+len(matched))
	newCompleted = append(newCompleted, completed...)
	newCompleted = append(newCompleted, matched...)
	return kept, newCompleted, len(matched)
}

// partition splits tasks into those not named name and those named name.
// When all is false only the first match is split off.
func partition(tasks []models.Task, name string, all bool) (kept, matched []models.Task) {
	kept = make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Name == name && (all || len(matched) == 0) {
			matched = append(matched, t)
			continue
		}
		kept = append(kept, t)
	}
	return kept, matched
}

func updateTasks(tasks []models.Task, name string, all bool, apply func(*models.Task)) ([]models.Task, int) {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	changed := 0
	for i := range out {
		if out[i].Name != name {
			continue
		}
		apply(&out[i])
		changed++
		if !all {
			break
		}
	}
	return out, changed
}

// Enumerate returns a lazy, 1-indexed sequence over tasks. The sequence can
// be ranged over once; later iterations yield nothing.
func Enumerate(tasks []models.Task) iter.Seq2[int, models.Task] {
	consumed := false
	return func(yield func(int, models.Task) bool) {
		if consumed {
			return
		}
		consumed = true
		for i, t := range tasks {
			if !yield(i+1, t) {
				return
			}
		}
	}
}
