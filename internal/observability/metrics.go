package observability

import (
	"fmt"
	"time"
)

// Stats summarises the task history over a time window.
type Stats struct {
	Added       int        `json:"added" yaml:"added"`
	Removed     int        `json:"removed" yaml:"removed"`
	Renamed     int        `json:"renamed" yaml:"renamed"`
	Rescheduled int        `json:"rescheduled" yaml:"rescheduled"`
	Completed   int        `json:"completed" yaml:"completed"`
	EventCount  int        `json:"event_count" yaml:"event_count"`
	OldestEvent *time.Time `json:"oldest_event,omitempty" yaml:"oldest_event,omitempty"`
	NewestEvent *time.Time `json:"newest_event,omitempty" yaml:"newest_event,omitempty"`
}

// StatsCalculator derives Stats from the task history.
type StatsCalculator interface {
	Calculate(since time.Time) (*Stats, error)
}

type statsCalculator struct {
	eventLog EventLog
}

// NewStatsCalculator creates a StatsCalculator reading from eventLog.
func NewStatsCalculator(eventLog EventLog) StatsCalculator {
	return &statsCalculator{eventLog: eventLog}
}

// Calculate aggregates the events recorded at or after since. Counts are in
// tasks, so removing two duplicates at once adds 2 to Removed.
func (sc *statsCalculator) Calculate(since time.Time) (*Stats, error) {
	events, err := sc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading history for stats: %w", err)
	}

	s := &Stats{EventCount: len(events)}
	for i, event := range events {
		t := event.Time
		if i == 0 {
			s.OldestEvent = &t
		}
		s.NewestEvent = &t

		n := eventCount(event)
		switch event.Type {
		case "task.added":
			s.Added += n
		case "task.removed":
			s.Removed += n
		case "task.renamed":
			s.Renamed += n
		case "task.rescheduled":
			s.Rescheduled += n
		case "task.completed":
			s.Completed += n
		}
	}

	return s, nil
}

// eventCount reads the "count" field of an event, defaulting to 1. JSON
// numbers decode as float64.
func eventCount(event Event) int {
	switch v := event.Data["count"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 1
	}
}
