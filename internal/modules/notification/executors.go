package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lashdiary/internal/pkg/calendar"
	"lashdiary/internal/pkg/mailer"
)

// EmailPayload is the stored shape of a deferred email.
type EmailPayload struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// EmailExecutor delivers outbox emails through the configured sender.
type EmailExecutor struct {
	sender mailer.Sender
}

func NewEmailExecutor(sender mailer.Sender) *EmailExecutor {
	return &EmailExecutor{sender: sender}
}

func (e *EmailExecutor) Execute(ctx context.Context, payload string) (string, error) {
	var p EmailPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return "", fmt.Errorf("unmarshal email payload: %w", err)
	}
	if len(p.To) == 0 {
		return "", fmt.Errorf("email payload has no recipients")
	}

	res, err := e.sender.Send(ctx, mailer.SendRequest{
		To:      p.To,
		Subject: p.Subject,
		HTML:    p.HTML,
	})
	if err != nil {
		return "", err
	}
	return res.MessageID, nil
}

// CalendarPayload is the stored shape of a deferred calendar sync.
type CalendarPayload struct {
	BookingID   int64     `json:"booking_id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Attendees   []string  `json:"attendees"`
}

// CalendarExecutor creates the external calendar event for a booking and
// records the event ID back on the booking row.
type CalendarExecutor struct {
	sync     calendar.Sync
	bookings BookingCalendarWriter
}

func NewCalendarExecutor(sync calendar.Sync, bookings BookingCalendarWriter) *CalendarExecutor {
	return &CalendarExecutor{sync: sync, bookings: bookings}
}

func (e *CalendarExecutor) Execute(ctx context.Context, payload string) (string, error) {
	var p CalendarPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return "", fmt.Errorf("unmarshal calendar payload: %w", err)
	}

	eventID, err := e.sync.CreateEvent(ctx, calendar.Event{
		Summary:     p.Summary,
		Description: p.Description,
		Location:    p.Location,
		Start:       p.Start,
		End:         p.End,
		Attendees:   p.Attendees,
	})
	if err != nil {
		return "", err
	}

	if p.BookingID > 0 {
		if err := e.bookings.SetCalendarEventID(ctx, p.BookingID, eventID); err != nil {
			// The event exists; losing the back-reference is not worth a retry
			// that would duplicate it.
			return eventID, nil
		}
	}
	return eventID, nil
}
