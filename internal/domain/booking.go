package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type MeetingType string

const (
	MeetingOnline   MeetingType = "online"
	MeetingPhysical MeetingType = "physical"
)

// ShowcaseBooking is a post-delivery walkthrough meeting for a finished
// website-build project. SlotDate and SlotMinutes are the canonical slot
// key in the business timezone; TimeLabel keeps the label the client saw.
type ShowcaseBooking struct {
	ID          int64       `json:"id"`
	ProjectID   int64       `json:"project_id" validate:"required"`
	ClientName  string      `json:"client_name" validate:"required"`
	ClientEmail string      `json:"client_email" validate:"required,email"`
	ClientPhone string      `json:"client_phone,omitempty"`
	MeetingType MeetingType `json:"meeting_type"`

	SlotDate    string    `json:"slot_date" gorm:"index"`
	SlotMinutes int       `json:"slot_minutes"`
	StartTime   time.Time `json:"start_time"`
	TimeLabel   string    `json:"time_label"`

	ClientTimezone string `json:"client_timezone,omitempty"`
	ClientCountry  string `json:"client_country,omitempty"`

	Status          BookingStatus `json:"status"`
	CalendarEventID string        `json:"calendar_event_id,omitempty"`

	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"type:text"`

	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}
