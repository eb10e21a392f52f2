package notification

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"lashdiary/internal/pkg/logger"
)

// StartWorker schedules periodic outbox draining. The returned cron can be
// stopped on shutdown; spec accepts standard cron syntax or "@every 1m".
func (s *Service) StartWorker(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := s.ProcessPending(ctx); err != nil {
			logger.Get().Error("outbox worker run failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
