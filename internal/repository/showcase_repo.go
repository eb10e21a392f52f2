package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"lashdiary/internal/domain"
)

type ShowcaseBookingRepository struct {
	db *gorm.DB
}

func NewShowcaseBookingRepository(db *gorm.DB) *ShowcaseBookingRepository {
	return &ShowcaseBookingRepository{db: db}
}

type showcaseModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	ProjectID          int64      `gorm:"column:project_id"`
	ClientName         string     `gorm:"column:client_name"`
	ClientEmail        string     `gorm:"column:client_email"`
	ClientPhone        string     `gorm:"column:client_phone"`
	MeetingType        string     `gorm:"column:meeting_type"`
	SlotDate           string     `gorm:"column:slot_date"`
	SlotMinutes        int        `gorm:"column:slot_minutes"`
	StartTime          time.Time  `gorm:"column:start_time"`
	TimeLabel          string     `gorm:"column:time_label"`
	ClientTimezone     string     `gorm:"column:client_timezone"`
	ClientCountry      string     `gorm:"column:client_country"`
	Status             string     `gorm:"column:status"`
	CalendarEventID    string     `gorm:"column:calendar_event_id"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CancellationReason string     `gorm:"column:cancellation_reason"`
}

func (showcaseModel) TableName() string { return "showcase_bookings" }

func toDomainShowcase(m showcaseModel) *domain.ShowcaseBooking {
	return &domain.ShowcaseBooking{
		ID:                 m.ID,
		ProjectID:          m.ProjectID,
		ClientName:         m.ClientName,
		ClientEmail:        m.ClientEmail,
		ClientPhone:        m.ClientPhone,
		MeetingType:        domain.MeetingType(m.MeetingType),
		SlotDate:           m.SlotDate,
		SlotMinutes:        m.SlotMinutes,
		StartTime:          m.StartTime,
		TimeLabel:          m.TimeLabel,
		ClientTimezone:     m.ClientTimezone,
		ClientCountry:      m.ClientCountry,
		Status:             domain.BookingStatus(m.Status),
		CalendarEventID:    m.CalendarEventID,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		CancelledAt:        m.CancelledAt,
		CancellationReason: m.CancellationReason,
	}
}

// Create inserts the booking. The partial unique index idx_no_double_booking
// makes this the authoritative double-booking guard; callers map the
// duplicate-key error to a conflict.
func (r *ShowcaseBookingRepository) Create(ctx context.Context, b *domain.ShowcaseBooking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// CountActiveAtSlot counts non-cancelled showcase bookings holding the
// canonical slot. Pending bookings block the slot too: only a cancelled
// record frees it.
func (r *ShowcaseBookingRepository) CountActiveAtSlot(ctx context.Context, slotDate string, slotMinutes int) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&showcaseModel{}).
		Where("slot_date = ?", slotDate).
		Where("slot_minutes = ?", slotMinutes).
		Where("status <> ?", string(domain.BookingCancelled)).
		Count(&cnt).Error
	return cnt, err
}

func (r *ShowcaseBookingRepository) GetByID(ctx context.Context, id int64) (*domain.ShowcaseBooking, error) {
	var m showcaseModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainShowcase(m), nil
}

// GetActiveByProjectID returns the project's live booking, if any.
// Used to reject duplicate submissions for the same invite token.
func (r *ShowcaseBookingRepository) GetActiveByProjectID(ctx context.Context, projectID int64) (*domain.ShowcaseBooking, error) {
	var m showcaseModel
	tx := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Where("status <> ?", string(domain.BookingCancelled)).
		First(&m)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainShowcase(m), nil
}

func (r *ShowcaseBookingRepository) ListByDate(ctx context.Context, slotDate string) ([]domain.ShowcaseBooking, error) {
	var rows []showcaseModel
	tx := r.db.WithContext(ctx).
		Where("slot_date = ?", slotDate).
		Order("slot_minutes").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.ShowcaseBooking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainShowcase(m))
	}
	return out, nil
}

func (r *ShowcaseBookingRepository) CancelWithReason(ctx context.Context, id int64, reason string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&showcaseModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":              string(domain.BookingCancelled),
			"cancellation_reason": reason,
			"cancelled_at":        &now,
			"updated_at":          now.UTC(),
		}).Error
}

// SetCalendarEventID records the external calendar event created for the
// booking once the outbox sync succeeds.
func (r *ShowcaseBookingRepository) SetCalendarEventID(ctx context.Context, id int64, eventID string) error {
	return r.db.WithContext(ctx).
		Model(&showcaseModel{}).
		Where("id = ?", id).
		Update("calendar_event_id", eventID).Error
}
