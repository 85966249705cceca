package identity

import (
	"context"

	"go.uber.org/zap"
)

// Mailer delivers transactional mail such as one-time codes
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes mail to the log instead of sending it. Used in
// development and tests; production deployments plug in a real sender.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the mail instead of delivering it
func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("outgoing mail",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}
