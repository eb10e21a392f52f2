package booking

import (
	"context"

	"lashdiary/internal/domain"
)

// ShowcaseRepository defines the persistence surface for showcase bookings.
type ShowcaseRepository interface {
	Create(ctx context.Context, b *domain.ShowcaseBooking) error
	CountActiveAtSlot(ctx context.Context, slotDate string, slotMinutes int) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.ShowcaseBooking, error)
	GetActiveByProjectID(ctx context.Context, projectID int64) (*domain.ShowcaseBooking, error)
	ListByDate(ctx context.Context, slotDate string) ([]domain.ShowcaseBooking, error)
	CancelWithReason(ctx context.Context, id int64, reason string) error
}

// ConsultationCounter is the view of the consultation collection the
// conflict detector needs: both record kinds share one time grid.
type ConsultationCounter interface {
	CountActiveAtSlot(ctx context.Context, slotDate string, slotMinutes int) (int64, error)
}

// ProjectRepository resolves invite tokens and maintains the booking link.
type ProjectRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	AttachShowcaseBooking(ctx context.Context, projectID, bookingID int64) error
	DetachShowcaseBooking(ctx context.Context, projectID int64) error
}

// Outbox accepts deferred side effects (emails, calendar sync).
type Outbox interface {
	Enqueue(ctx context.Context, actionType string, payload any) error
}
