package core

import (
	"fmt"
	"iter"

	"github.com/valter-silva-au/todo-cli/pkg/models"
)

// CommandKind identifies one task list operation.
type CommandKind string

const (
	KindAdd           CommandKind = "add"
	KindRemove        CommandKind = "remove"
	KindRename        CommandKind = "rename"
	KindReschedule    CommandKind = "reschedule"
	KindComplete      CommandKind = "complete"
	KindListActive    CommandKind = "list-active"
	KindListCompleted CommandKind = "list-completed"
)

// commandArity is the number of positional values each kind takes.
var commandArity = map[CommandKind]int{
	KindAdd:           2,
	KindRemove:        1,
	KindRename:        2,
	KindReschedule:    2,
	KindComplete:      1,
	KindListActive:    0,
	KindListCompleted: 0,
}

// Command is a single parsed invocation. Args holds the positional values;
// Show is only meaningful for the list kinds.
type Command struct {
	Kind CommandKind
	Args []string
	Show bool
}

// Validate checks the command's kind and argument count without touching
// storage.
func (c Command) Validate() error {
	want, ok := commandArity[c.Kind]
	if !ok {
		return ErrNoCommand
	}
	if len(c.Args) != want {
		return fmt.Errorf("%w: %s takes %d, got %d", ErrArgumentCount, c.Kind, want, len(c.Args))
	}
	return nil
}

// Outcome describes the result of a successful command.
type Outcome struct {
	Kind CommandKind
	// Message is a human-readable summary for display.
	Message string
	// Affected counts the tasks added, changed, moved, or listed.
	Affected int
	// Tasks is set for list commands that were asked to show output.
	Tasks iter.Seq2[int, models.Task]
}
