package repository

import (
	"context"

	"gorm.io/gorm"

	"lashdiary/internal/domain"
)

type OutboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Create(ctx context.Context, e *domain.OutboxEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *OutboxRepository) Save(ctx context.Context, e *domain.OutboxEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *OutboxRepository) GetByID(ctx context.Context, id string) (*domain.OutboxEntry, error) {
	var e domain.OutboxEntry
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&e)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &e, nil
}

// ListPending returns entries still eligible for processing, oldest first.
func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]domain.OutboxEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []domain.OutboxEntry
	tx := r.db.WithContext(ctx).
		Where("status IN ?", []string{domain.OutboxPending, domain.OutboxRetrying}).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// ListFailed returns entries that exhausted their attempts.
func (r *OutboxRepository) ListFailed(ctx context.Context, limit int) ([]domain.OutboxEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []domain.OutboxEntry
	tx := r.db.WithContext(ctx).
		Where("status = ?", domain.OutboxFailed).
		Order("last_attempted_at DESC").
		Limit(limit).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
