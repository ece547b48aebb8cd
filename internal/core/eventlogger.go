package core

// Event types recorded for successful mutations.
const (
	EventTaskAdded       = "task.added"
	EventTaskRemoved     = "task.removed"
	EventTaskRenamed     = "task.renamed"
	EventTaskRescheduled = "task.rescheduled"
	EventTaskCompleted   = "task.completed"
)

// EventLogger is the subset of the observability event log that core
// services need. Defining it here avoids importing the observability package.
type EventLogger interface {
	LogEvent(eventType, task string, data map[string]any) error
}
