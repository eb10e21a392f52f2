package consultation

import (
	"context"

	"lashdiary/internal/domain"
)

// ConsultationRepository defines the persistence surface for consultations.
type ConsultationRepository interface {
	Create(ctx context.Context, c *domain.Consultation) error
	CountActiveAtSlot(ctx context.Context, slotDate string, slotMinutes int) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Consultation, error)
	ListByDate(ctx context.Context, slotDate string) ([]domain.Consultation, error)
	Cancel(ctx context.Context, id int64) error
}

// ShowcaseCounter is the showcase-side view of the shared grid.
type ShowcaseCounter interface {
	CountActiveAtSlot(ctx context.Context, slotDate string, slotMinutes int) (int64, error)
}

// Outbox accepts deferred side effects.
type Outbox interface {
	Enqueue(ctx context.Context, actionType string, payload any) error
}
