package models

// Task is a single to-do entry. Name is the identifying key within a
// collection; it is not required to be unique, so a collection may hold
// several tasks with the same name.
type Task struct {
	Name           string `json:"name" yaml:"name"`
	CompletionTime string `json:"completion_time" yaml:"completion_time"`
}

// CollectionKind names one of the two persisted task collections.
type CollectionKind string

const (
	CollectionActive    CollectionKind = "active"
	CollectionCompleted CollectionKind = "completed"
)

// String returns the collection kind as a plain string.
func (k CollectionKind) String() string {
	return string(k)
}

// Valid reports whether k is one of the known collection kinds.
func (k CollectionKind) Valid() bool {
	return k == CollectionActive || k == CollectionCompleted
}
