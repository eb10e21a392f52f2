package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lashdiary/internal/domain"
	"lashdiary/internal/pkg/logger"
)

const defaultMaxAttempts = 5

// Service is the outbox: side effects are enqueued durably and drained by
// the worker with exponential backoff. A failed send never propagates to
// the request that caused it.
type Service struct {
	repo      OutboxRepository
	executors map[string]Executor
	baseDelay time.Duration
	maxDelay  time.Duration
	batchSize int
}

func NewService(repo OutboxRepository, executors map[string]Executor) *Service {
	return &Service{
		repo:      repo,
		executors: executors,
		baseDelay: 30 * time.Second,
		maxDelay:  1 * time.Hour,
		batchSize: 10,
	}
}

// Enqueue persists a side effect for asynchronous delivery.
func (s *Service) Enqueue(ctx context.Context, actionType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}

	e := &domain.OutboxEntry{
		ID:          uuid.New().String(),
		ActionType:  actionType,
		Payload:     string(raw),
		Status:      domain.OutboxPending,
		MaxAttempts: defaultMaxAttempts,
		CreatedAt:   time.Now(),
	}
	return s.repo.Create(ctx, e)
}

// ProcessPending drains one batch of eligible entries.
func (s *Service) ProcessPending(ctx context.Context) error {
	entries, err := s.repo.ListPending(ctx, s.batchSize)
	if err != nil {
		return fmt.Errorf("list pending outbox entries: %w", err)
	}

	for i := range entries {
		if err := s.processEntry(ctx, &entries[i]); err != nil {
			logger.Get().Error("outbox entry processing failed",
				zap.String("entry_id", entries[i].ID),
				zap.String("action_type", entries[i].ActionType),
				zap.Error(err))
		}
	}
	return nil
}

func (s *Service) processEntry(ctx context.Context, e *domain.OutboxEntry) error {
	// Respect the backoff window between attempts.
	if !e.LastAttemptedAt.IsZero() {
		if time.Since(e.LastAttemptedAt) < e.NextRetryDelay(s.baseDelay, s.maxDelay) {
			return nil
		}
	}

	executor, ok := s.executors[e.ActionType]
	if !ok {
		e.MarkAttempt()
		e.MarkFailed(fmt.Errorf("no executor registered for action type %q", e.ActionType))
		return s.repo.Save(ctx, e)
	}

	e.MarkAttempt()
	externalID, err := executor.Execute(ctx, e.Payload)
	if err != nil {
		e.MarkFailed(err)
		logger.Get().Warn("outbox action failed",
			zap.String("entry_id", e.ID),
			zap.Int("attempt", e.Attempts),
			zap.Error(err))
	} else {
		e.MarkSuccess(externalID)
		logger.Get().Info("outbox action succeeded",
			zap.String("entry_id", e.ID),
			zap.String("action_type", e.ActionType),
			zap.String("external_id", externalID))
	}

	return s.repo.Save(ctx, e)
}

// ListFailed exposes permanently failed entries for operational review.
func (s *Service) ListFailed(ctx context.Context, limit int) ([]domain.OutboxEntry, error) {
	return s.repo.ListFailed(ctx, limit)
}
