package notify

import (
	"context"
	"log/slog"
	"time"
)

// LogNotifier writes reset codes to the log instead of sending mail. It is
// used when no SMTP host is configured, which is only sensible in local
// development.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendPasswordResetCode(ctx context.Context, to, code string, expiresAt time.Time) error {
	slog.Info("password reset code issued",
		"to", to,
		"code", code,
		"expiresAt", expiresAt.Format(time.RFC3339),
	)
	return nil
}
