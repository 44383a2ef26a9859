package notify

import (
	"context"
	"log/slog"
)

var _ Sender = (*LogSender)(nil)

// LogSender writes alerts to the structured log. It stands in for a real
// transport (Telegram bot, webhook) when none is configured.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, userID int64, message string) error {
	slog.Info("Alert", "user_id", userID, "message", message)
	return nil
}
