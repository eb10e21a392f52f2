package project

import (
	"context"

	"lashdiary/internal/domain"
)

// ProjectRepository defines the persistence surface for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	GetByToken(ctx context.Context, token string) (*domain.Project, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ProjectStatus) error
}
