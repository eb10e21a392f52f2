package domain

import "time"

type ProjectKind string

const (
	ProjectWebsiteBuild ProjectKind = "website_build"
	ProjectOrder        ProjectKind = "order"
)

type ProjectStatus string

const (
	ProjectPending   ProjectStatus = "pending"
	ProjectDelivered ProjectStatus = "delivered"
	ProjectClosed    ProjectStatus = "closed"
)

// Project is the subject a showcase meeting is booked against. Kind makes
// the website-build vs. order distinction explicit instead of inferring it
// from field presence. InviteToken is the opaque identifier handed to the
// client; it resolves booking requests to this row.
type Project struct {
	ID          int64         `json:"id"`
	Kind        ProjectKind   `json:"kind"`
	Name        string        `json:"name" validate:"required"`
	ClientName  string        `json:"client_name" validate:"required"`
	ClientEmail string        `json:"client_email" validate:"required,email"`
	InviteToken string        `json:"-" gorm:"uniqueIndex;size:64"`
	Status      ProjectStatus `json:"status"`

	ShowcaseBookingID *int64 `json:"showcase_booking_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
