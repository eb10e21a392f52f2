package calendar

import (
	"context"
	"time"
)

// Event is the provider-independent shape of a calendar entry.
type Event struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Attendees   []string
}

// Sync pushes booked meetings onto an external calendar. Implementations
// are best-effort collaborators: callers must treat failures as retryable,
// never as booking failures.
type Sync interface {
	CreateEvent(ctx context.Context, ev Event) (eventID string, err error)
}
