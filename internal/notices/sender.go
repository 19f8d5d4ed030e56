package notices

import (
	"context"

	"zephvault-backend/internal/shared/telemetry"
)

// Sender delivers a rendered email.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// LogSender records the outgoing email instead of delivering it. It stands in
// until a real provider (Resend, Postmark) is wired and always reports
// success.
type LogSender struct{}

// Send logs the email and returns nil.
func (LogSender) Send(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	telemetry.Info("email.send", map[string]any{
		"to":        email.To,
		"subject":   email.Subject,
		"body_size": len(email.HTML),
	})
	return nil
}

var _ Sender = LogSender{}
