package calendar

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"lashdiary/internal/pkg/logger"
)

// NoopSync logs events without creating them. Used when no calendar
// credentials are configured.
type NoopSync struct{}

func NewNoopSync() *NoopSync {
	return &NoopSync{}
}

func (s *NoopSync) CreateEvent(_ context.Context, ev Event) (string, error) {
	logger.Get().Info("noop calendar event",
		zap.String("summary", ev.Summary), zap.Time("start", ev.Start))
	return fmt.Sprintf("noop-%d", time.Now().UnixNano()), nil
}
