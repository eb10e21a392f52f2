package mailer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"lashdiary/internal/pkg/logger"
)

// NoopSender logs sends without delivering anything. Used in development
// and tests when no provider key is configured.
type NoopSender struct{}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	logger.Get().Info("noop email send",
		zap.Strings("to", req.To), zap.String("subject", req.Subject))
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
