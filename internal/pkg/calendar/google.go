package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleSync creates events on a Google Calendar using a service account.
type GoogleSync struct {
	svc        *gcal.Service
	calendarID string
}

func NewGoogleSync(ctx context.Context, credentialsFile, calendarID string) (*GoogleSync, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init google calendar client: %w", err)
	}
	return &GoogleSync{svc: svc, calendarID: calendarID}, nil
}

func (g *GoogleSync) CreateEvent(ctx context.Context, ev Event) (string, error) {
	e := &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
		},
	}
	for _, a := range ev.Attendees {
		e.Attendees = append(e.Attendees, &gcal.EventAttendee{Email: a})
	}

	created, err := g.svc.Events.Insert(g.calendarID, e).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar event: %w", err)
	}
	return created.Id, nil
}
