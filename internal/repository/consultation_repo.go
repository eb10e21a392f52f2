package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"lashdiary/internal/domain"
)

type ConsultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(db *gorm.DB) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

type consultationModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	ClientName    string     `gorm:"column:client_name"`
	ClientEmail   string     `gorm:"column:client_email"`
	ClientPhone   string     `gorm:"column:client_phone"`
	Topic         string     `gorm:"column:topic"`
	SlotDate      string     `gorm:"column:slot_date"`
	SlotMinutes   int        `gorm:"column:slot_minutes"`
	StartTime     time.Time  `gorm:"column:start_time"`
	PreferredTime string     `gorm:"column:preferred_time"`
	Status        string     `gorm:"column:status"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
	CancelledAt   *time.Time `gorm:"column:cancelled_at"`
}

func (consultationModel) TableName() string { return "consultations" }

func toDomainConsultation(m consultationModel) *domain.Consultation {
	return &domain.Consultation{
		ID:            m.ID,
		ClientName:    m.ClientName,
		ClientEmail:   m.ClientEmail,
		ClientPhone:   m.ClientPhone,
		Topic:         m.Topic,
		SlotDate:      m.SlotDate,
		SlotMinutes:   m.SlotMinutes,
		StartTime:     m.StartTime,
		PreferredTime: m.PreferredTime,
		Status:        domain.ConsultationStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		CancelledAt:   m.CancelledAt,
	}
}

func (r *ConsultationRepository) Create(ctx context.Context, c *domain.Consultation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// CountActiveAtSlot counts non-cancelled consultations holding the slot.
// Same policy as showcase bookings: anything not cancelled blocks.
func (r *ConsultationRepository) CountActiveAtSlot(ctx context.Context, slotDate string, slotMinutes int) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&consultationModel{}).
		Where("slot_date = ?", slotDate).
		Where("slot_minutes = ?", slotMinutes).
		Where("status <> ?", string(domain.ConsultationCancelled)).
		Count(&cnt).Error
	return cnt, err
}

func (r *ConsultationRepository) GetByID(ctx context.Context, id int64) (*domain.Consultation, error) {
	var m consultationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainConsultation(m), nil
}

func (r *ConsultationRepository) ListByDate(ctx context.Context, slotDate string) ([]domain.Consultation, error) {
	var rows []consultationModel
	tx := r.db.WithContext(ctx).
		Where("slot_date = ?", slotDate).
		Order("slot_minutes").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Consultation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainConsultation(m))
	}
	return out, nil
}

func (r *ConsultationRepository) Cancel(ctx context.Context, id int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&consultationModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       string(domain.ConsultationCancelled),
			"cancelled_at": &now,
			"updated_at":   now.UTC(),
		}).Error
}
