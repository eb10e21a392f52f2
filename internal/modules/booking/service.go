package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"lashdiary/internal/domain"
	"lashdiary/internal/modules/notification"
	"lashdiary/internal/pkg/logger"
	"lashdiary/internal/pkg/slotlock"
	"lashdiary/internal/pkg/timeparse"
	"lashdiary/internal/pkg/validator"
	"lashdiary/internal/repository"
)

// The showcase grid offered to clients. Slots are 90 minutes apart so a
// meeting never runs into the next one.
var dayGrid = []string{"10:00 AM", "11:30 AM", "1:00 PM", "2:30 PM", "4:00 PM"}

const (
	onlineLocation   = "Google Meet"
	physicalLocation = "LashDiary Studio, Nairobi"
)

type Service struct {
	bookings ShowcaseRepository
	consults ConsultationCounter
	projects ProjectRepository
	outbox   Outbox
	locks    *slotlock.Keyed

	loc             *time.Location
	meetingDuration time.Duration
	ownerEmail      string
}

func NewService(
	bookings ShowcaseRepository,
	consults ConsultationCounter,
	projects ProjectRepository,
	outbox Outbox,
	locks *slotlock.Keyed,
	loc *time.Location,
	meetingDuration time.Duration,
	ownerEmail string,
) *Service {
	return &Service{
		bookings:        bookings,
		consults:        consults,
		projects:        projects,
		outbox:          outbox,
		locks:           locks,
		loc:             loc,
		meetingDuration: meetingDuration,
		ownerEmail:      ownerEmail,
	}
}

// SlotKey is the canonical identity of one bookable window; all conflict
// checks and commit serialization use it.
func SlotKey(slotDate string, slotMinutes int) string {
	return fmt.Sprintf("%s#%d", slotDate, slotMinutes)
}

// CreateShowcase validates the request, resolves its invite token and
// commits the booking. The check-then-act sequence runs under the per-slot
// lock, and the partial unique index backs it up at the storage layer.
// Once the insert commits the booking stands; calendar sync and emails are
// queued best-effort and never fail the request.
func (s *Service) CreateShowcase(ctx context.Context, req CreateShowcaseRequest) (*domain.ShowcaseBooking, error) {
	meetingType, err := parseMeetingType(req.MeetingType)
	if err != nil {
		return nil, err
	}

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

	project, err := s.projects.GetByToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if project == nil || project.Status == domain.ProjectClosed {
		return nil, ErrNotFound
	}

	// A project books its showcase once; resubmitting the same invite is a
	// conflict, not a duplicate.
	existing, err := s.bookings.GetActiveByProjectID(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	unlock := s.locks.Lock(SlotKey(slotDate, clock.Minutes()))
	defer unlock()

	taken, err := s.slotTaken(ctx, slotDate, clock.Minutes())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	b := &domain.ShowcaseBooking{
		ProjectID:      project.ID,
		ClientName:     req.ClientName,
		ClientEmail:    req.ClientEmail,
		ClientPhone:    req.ClientPhone,
		MeetingType:    meetingType,
		SlotDate:       slotDate,
		SlotMinutes:    clock.Minutes(),
		StartTime:      startTime,
		TimeLabel:      clock.Label(),
		ClientTimezone: req.ClientTimezone,
		ClientCountry:  req.ClientCountry,
		Status:         domain.BookingPending,
	}

	if fields := validator.Validate(b); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fields)
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if repository.IsDuplicateSlot(err) {
			return nil, ErrOverbooking
		}
		return nil, err
	}

	// The booking is durable from here on; everything below is best-effort.
	if err := s.projects.AttachShowcaseBooking(ctx, project.ID, b.ID); err != nil {
		logger.Get().Error("failed to link booking to project",
			zap.Int64("booking_id", b.ID), zap.Int64("project_id", project.ID), zap.Error(err))
	}

	s.enqueueSideEffects(ctx, b, project)

	return b, nil
}

// slotTaken checks both collections under the same policy: any record that
// is not cancelled blocks the slot, pending ones included.
func (s *Service) slotTaken(ctx context.Context, slotDate string, slotMinutes int) (bool, error) {
	cnt, err := s.bookings.CountActiveAtSlot(ctx, slotDate, slotMinutes)
	if err != nil {
		return false, err
	}
	if cnt > 0 {
		return true, nil
	}

	cnt, err = s.consults.CountActiveAtSlot(ctx, slotDate, slotMinutes)
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (s *Service) enqueueSideEffects(ctx context.Context, b *domain.ShowcaseBooking, project *domain.Project) {
	location := onlineLocation
	if b.MeetingType == domain.MeetingPhysical {
		location = physicalLocation
	}

	calPayload := notification.CalendarPayload{
		BookingID:   b.ID,
		Summary:     fmt.Sprintf("Showcase: %s", project.Name),
		Description: fmt.Sprintf("Website showcase walkthrough with %s (%s)", b.ClientName, b.ClientEmail),
		Location:    location,
		Start:       b.StartTime,
		End:         b.StartTime.Add(s.meetingDuration),
		Attendees:   []string{b.ClientEmail, s.ownerEmail},
	}
	if err := s.outbox.Enqueue(ctx, domain.ActionCalendarSync, calPayload); err != nil {
		logger.Get().Error("failed to enqueue calendar sync",
			zap.Int64("booking_id", b.ID), zap.Error(err))
	}

	subject, html := clientConfirmationEmail(b, project.Name, location)
	if err := s.outbox.Enqueue(ctx, domain.ActionEmail, notification.EmailPayload{
		To: []string{b.ClientEmail}, Subject: subject, HTML: html,
	}); err != nil {
		logger.Get().Error("failed to enqueue client confirmation",
			zap.Int64("booking_id", b.ID), zap.Error(err))
	}

	subject, html = ownerNotificationEmail(b, project.Name)
	if err := s.outbox.Enqueue(ctx, domain.ActionEmail, notification.EmailPayload{
		To: []string{s.ownerEmail}, Subject: subject, HTML: html,
	}); err != nil {
		logger.Get().Error("failed to enqueue owner notification",
			zap.Int64("booking_id", b.ID), zap.Error(err))
	}
}

// CancelShowcase frees the slot and detaches the booking from its project
// so the invite token can be used again.
func (s *Service) CancelShowcase(ctx context.Context, id int64, reason string) (*domain.ShowcaseBooking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if b.Status == domain.BookingCancelled || b.Status == domain.BookingCompleted {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.CancelWithReason(ctx, id, reason); err != nil {
		return nil, err
	}
	if err := s.projects.DetachShowcaseBooking(ctx, b.ProjectID); err != nil {
		logger.Get().Error("failed to detach booking from project",
			zap.Int64("booking_id", id), zap.Int64("project_id", b.ProjectID), zap.Error(err))
	}

	subject, html := cancellationEmail(b, reason)
	if err := s.outbox.Enqueue(ctx, domain.ActionEmail, notification.EmailPayload{
		To: []string{b.ClientEmail}, Subject: subject, HTML: html,
	}); err != nil {
		logger.Get().Error("failed to enqueue cancellation email",
			zap.Int64("booking_id", id), zap.Error(err))
	}

	return s.bookings.GetByID(ctx, id)
}

// DaySchedule returns the bookable grid for a date with availability flags.
// Availability reflects both showcase bookings and consultations.
func (s *Service) DaySchedule(ctx context.Context, date string) (*DayScheduleResponse, error) {
	slotDate, err := timeparse.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	takenMinutes := make(map[int]bool)

	bookings, err := s.bookings.ListByDate(ctx, slotDate)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if b.Status != domain.BookingCancelled {
			takenMinutes[b.SlotMinutes] = true
		}
	}

	slots := make([]ScheduleSlot, 0, len(dayGrid))
	for _, label := range dayGrid {
		clock, err := timeparse.ParseLabel(label)
		if err != nil {
			return nil, err
		}
		available := !takenMinutes[clock.Minutes()]
		if available {
			cnt, err := s.consults.CountActiveAtSlot(ctx, slotDate, clock.Minutes())
			if err != nil {
				return nil, err
			}
			available = cnt == 0
		}
		slots = append(slots, ScheduleSlot{
			Time:      clock.Label(),
			Minutes:   clock.Minutes(),
			Available: available,
		})
	}

	return &DayScheduleResponse{Date: slotDate, Slots: slots}, nil
}

// GetByID retrieves a booking by ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.ShowcaseBooking, error) {
	return s.bookings.GetByID(ctx, id)
}

func parseMeetingType(raw string) (domain.MeetingType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "online":
		return domain.MeetingOnline, nil
	case "physical":
		return domain.MeetingPhysical, nil
	default:
		return "", fmt.Errorf("%w: unknown meeting type %q", ErrValidation, raw)
	}
}
