package consultation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"lashdiary/internal/domain"
	"lashdiary/internal/modules/booking"
	"lashdiary/internal/modules/notification"
	"lashdiary/internal/pkg/logger"
	"lashdiary/internal/pkg/slotlock"
	"lashdiary/internal/pkg/timeparse"
	"lashdiary/internal/pkg/validator"
	"lashdiary/internal/repository"
)

type Service struct {
	consults ConsultationRepository
	bookings ShowcaseCounter
	outbox   Outbox
	locks    *slotlock.Keyed

	loc        *time.Location
	ownerEmail string
}

func NewService(
	consults ConsultationRepository,
	bookings ShowcaseCounter,
	outbox Outbox,
	locks *slotlock.Keyed,
	loc *time.Location,
	ownerEmail string,
) *Service {
	return &Service{
		consults:   consults,
		bookings:   bookings,
		outbox:     outbox,
		locks:      locks,
		loc:        loc,
		ownerEmail: ownerEmail,
	}
}

// Create books a consultation slot. Consultations share the showcase time
// grid, so the conflict check spans both collections and commits are
// serialized on the same slot keys the booking module uses.
func (s *Service) Create(ctx context.Context, req CreateConsultationRequest) (*domain.Consultation, error) {
	slotDate, err := timeparse.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	clock, err := timeparse.ParseLabel(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	startTime, err := timeparse.SlotTime(slotDate, clock, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// Same key the showcase flow locks: both kinds contend for one grid.
	unlock := s.locks.Lock(booking.SlotKey(slotDate, clock.Minutes()))
	defer unlock()

	cnt, err := s.consults.CountActiveAtSlot(ctx, slotDate, clock.Minutes())
	if err != nil {
		return nil, err
	}
	if cnt == 0 {
		cnt, err = s.bookings.CountActiveAtSlot(ctx, slotDate, clock.Minutes())
		if err != nil {
			return nil, err
		}
	}
	if cnt > 0 {
		return nil, ErrSlotTaken
	}

	c := &domain.Consultation{
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,
		Topic:         req.Topic,
		SlotDate:      slotDate,
		SlotMinutes:   clock.Minutes(),
		StartTime:     startTime,
		PreferredTime: clock.Label(),
		Status:        domain.ConsultationActive,
	}

	if fields := validator.Validate(c); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fields)
	}

	if err := s.consults.Create(ctx, c); err != nil {
		if repository.IsDuplicateSlot(err) {
			return nil, ErrOverbooking
		}
		return nil, err
	}

	subject := fmt.Sprintf("New consultation request: %s on %s", c.ClientName, c.SlotDate)
	html := fmt.Sprintf(
		"<p><strong>%s</strong> (%s) requested a consultation on %s at %s.</p><p>Topic: %s</p>",
		c.ClientName, c.ClientEmail, c.SlotDate, c.PreferredTime, c.Topic)
	if err := s.outbox.Enqueue(ctx, domain.ActionEmail, notification.EmailPayload{
		To: []string{s.ownerEmail}, Subject: subject, HTML: html,
	}); err != nil {
		logger.Get().Error("failed to enqueue consultation notification",
			zap.Int64("consultation_id", c.ID), zap.Error(err))
	}

	return c, nil
}

// Cancel releases the slot.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Consultation, error) {
	c, err := s.consults.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if c.Status == domain.ConsultationCancelled {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.consults.Cancel(ctx, id); err != nil {
		return nil, err
	}
	return s.consults.GetByID(ctx, id)
}

func (s *Service) ListByDate(ctx context.Context, date string) ([]domain.Consultation, error) {
	slotDate, err := timeparse.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.consults.ListByDate(ctx, slotDate)
}
