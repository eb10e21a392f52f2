package domain

import "time"

type ConsultationStatus string

const (
	ConsultationActive    ConsultationStatus = "active"
	ConsultationCancelled ConsultationStatus = "cancelled"
)

// Consultation is a pre-sales meeting. It lives in its own table but shares
// the showcase time grid, so an active consultation blocks a showcase
// booking at the same slot and vice versa.
type Consultation struct {
	ID          int64  `json:"id"`
	ClientName  string `json:"client_name" validate:"required"`
	ClientEmail string `json:"client_email" validate:"required,email"`
	ClientPhone string `json:"client_phone,omitempty"`
	Topic       string `json:"topic,omitempty" gorm:"type:text"`

	SlotDate      string    `json:"slot_date" gorm:"index"`
	SlotMinutes   int       `json:"slot_minutes"`
	StartTime     time.Time `json:"start_time"`
	PreferredTime string    `json:"preferred_time"`

	Status ConsultationStatus `json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}
