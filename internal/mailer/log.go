package mailer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogMailer logs messages instead of sending them. Used in development when no
// SMTP host is configured.
type LogMailer struct{}

func (m *LogMailer) Send(_ context.Context, message Message) (string, error) {
	receipt := uuid.NewString()
	slog.Info("mail delivery skipped",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
		slog.String("body", message.TextBody),
		slog.String("receipt", receipt))
	return receipt, nil
}
