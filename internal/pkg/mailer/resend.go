package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"lashdiary/internal/pkg/logger"
)

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	from := req.From
	if from == "" {
		from = s.from
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
	}
	if req.ReplyTo != "" {
		params.ReplyTo = req.ReplyTo
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		logger.Get().Error("resend send failed",
			zap.Strings("to", req.To), zap.String("subject", req.Subject), zap.Error(err))
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	logger.Get().Info("email sent",
		zap.String("message_id", sent.Id), zap.Strings("to", req.To), zap.String("subject", req.Subject))
	return SendResult{MessageID: sent.Id, SentAt: time.Now()}, nil
}
