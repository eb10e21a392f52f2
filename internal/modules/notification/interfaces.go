package notification

import (
	"context"

	"lashdiary/internal/domain"
)

// OutboxRepository persists deferred side effects.
type OutboxRepository interface {
	Create(ctx context.Context, e *domain.OutboxEntry) error
	Save(ctx context.Context, e *domain.OutboxEntry) error
	GetByID(ctx context.Context, id string) (*domain.OutboxEntry, error)
	ListPending(ctx context.Context, limit int) ([]domain.OutboxEntry, error)
	ListFailed(ctx context.Context, limit int) ([]domain.OutboxEntry, error)
}

// Executor runs one kind of external action. It returns the identifier of
// the external resource it created (message ID, calendar event ID).
type Executor interface {
	Execute(ctx context.Context, payload string) (string, error)
}

// BookingCalendarWriter lets the calendar executor record the created event
// on the booking row.
type BookingCalendarWriter interface {
	SetCalendarEventID(ctx context.Context, id int64, eventID string) error
}
