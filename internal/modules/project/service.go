package project

import (
	"context"

	"github.com/google/uuid"

	"lashdiary/internal/domain"
)

type Service struct {
	projects ProjectRepository
}

func NewService(projects ProjectRepository) *Service {
	return &Service{projects: projects}
}

// Create registers a project or order and issues its invite token. The
// token is the only credential a client needs to book a showcase meeting.
func (s *Service) Create(ctx context.Context, req CreateProjectRequest) (*domain.Project, error) {
	p := &domain.Project{
		Kind:        domain.ProjectKind(req.Kind),
		Name:        req.Name,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Status:      domain.ProjectPending,
		InviteToken: uuid.NewString(),
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// ResolveToken looks up the project behind an invite token. Closed
// projects resolve the same as unknown tokens so a revoked link leaks
// nothing.
func (s *Service) ResolveToken(ctx context.Context, token string) (*InviteResponse, error) {
	p, err := s.projects.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status == domain.ProjectClosed {
		return nil, ErrNotFound
	}
	return &InviteResponse{
		Kind:        string(p.Kind),
		Name:        p.Name,
		ClientName:  p.ClientName,
		Status:      string(p.Status),
		HasShowcase: p.ShowcaseBookingID != nil,
	}, nil
}

// MarkDelivered transitions a pending project to delivered.
func (s *Service) MarkDelivered(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if p.Status != domain.ProjectPending {
		return nil, ErrInvalidStatusTransition
	}
	if err := s.projects.UpdateStatus(ctx, id, domain.ProjectDelivered); err != nil {
		return nil, err
	}
	return s.projects.GetByID(ctx, id)
}
