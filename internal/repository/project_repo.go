package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"lashdiary/internal/domain"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type projectModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	Kind              string    `gorm:"column:kind"`
	Name              string    `gorm:"column:name"`
	ClientName        string    `gorm:"column:client_name"`
	ClientEmail       string    `gorm:"column:client_email"`
	InviteToken       string    `gorm:"column:invite_token"`
	Status            string    `gorm:"column:status"`
	ShowcaseBookingID *int64    `gorm:"column:showcase_booking_id"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (projectModel) TableName() string { return "projects" }

func toDomainProject(m projectModel) *domain.Project {
	return &domain.Project{
		ID:                m.ID,
		Kind:              domain.ProjectKind(m.Kind),
		Name:              m.Name,
		ClientName:        m.ClientName,
		ClientEmail:       m.ClientEmail,
		InviteToken:       m.InviteToken,
		Status:            domain.ProjectStatus(m.Status),
		ShowcaseBookingID: m.ShowcaseBookingID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var m projectModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProject(m), nil
}

// GetByToken resolves an invite token. Returns (nil, nil) when the token is
// unknown so callers can map it to a not-found response without inspecting
// driver errors.
func (r *ProjectRepository) GetByToken(ctx context.Context, token string) (*domain.Project, error) {
	var m projectModel
	tx := r.db.WithContext(ctx).Where("invite_token = ?", token).First(&m)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainProject(m), nil
}

// AttachShowcaseBooking ties a committed booking back to its project.
func (r *ProjectRepository) AttachShowcaseBooking(ctx context.Context, projectID, bookingID int64) error {
	return r.db.WithContext(ctx).
		Model(&projectModel{}).
		Where("id = ?", projectID).
		Updates(map[string]any{
			"showcase_booking_id": bookingID,
			"updated_at":          time.Now().UTC(),
		}).Error
}

// DetachShowcaseBooking clears the link when a booking is cancelled so the
// invite token can be used again.
func (r *ProjectRepository) DetachShowcaseBooking(ctx context.Context, projectID int64) error {
	return r.db.WithContext(ctx).
		Model(&projectModel{}).
		Where("id = ?", projectID).
		Updates(map[string]any{
			"showcase_booking_id": nil,
			"updated_at":          time.Now().UTC(),
		}).Error
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id int64, status domain.ProjectStatus) error {
	return r.db.WithContext(ctx).
		Model(&projectModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		}).Error
}
