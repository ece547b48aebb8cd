package core

import "errors"

var (
	// ErrArgumentCount is returned when a command receives the wrong number
	// of positional values. It is detected before any file is touched.
	ErrArgumentCount = errors.New("wrong number of arguments")

	// ErrInvalidArgument is returned when a positional value is present but
	// unusable, such as an empty task name.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTaskNotFound is returned when no task matches the given name.
	// Nothing is saved when it is returned.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNoCommand is returned when a command kind is not recognised.
	ErrNoCommand = errors.New("no valid command provided")
)

// IsRecoverable reports whether err is a user-facing condition the CLI
// renders and continues from, as opposed to an I/O or configuration failure
// that ends the process.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrArgumentCount) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrNoCommand)
}
