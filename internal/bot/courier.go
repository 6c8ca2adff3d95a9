package bot

import (
	"context"
	"log/slog"

	"github.com/lizark9x/connor-bot/internal/metrics"
)

// Messenger delivers text to the bot's single fixed recipient.
// Satisfied by telegram.Sender implementations.
type Messenger interface {
	Send(ctx context.Context, text string) error
}

// ActivityLog records outbound sends. Satisfied by *tables.Store.
type ActivityLog interface {
	RecordActivity(ctx context.Context, kind, text, result string)
}

// Courier wraps the messenger with activity logging and metrics. Send
// failures are logged and reported as false, never propagated.
type Courier struct {
	messenger Messenger
	activity  ActivityLog
	logger    *slog.Logger
}

func NewCourier(messenger Messenger, activity ActivityLog, logger *slog.Logger) *Courier {
	return &Courier{
		messenger: messenger,
		activity:  activity,
		logger:    logger.With("component", "courier"),
	}
}

// Deliver sends text to the fixed recipient, reporting success.
func (c *Courier) Deliver(ctx context.Context, kind, text string) bool {
	if err := c.messenger.Send(ctx, text); err != nil {
		metrics.MessagesSentTotal.WithLabelValues(kind, "error").Inc()
		c.logger.Error("send message", "kind", kind, "error", err)
		if c.activity != nil {
			c.activity.RecordActivity(ctx, kind, text, "error: "+err.Error())
		}
		return false
	}
	metrics.MessagesSentTotal.WithLabelValues(kind, "ok").Inc()
	c.logger.Info("message sent", "kind", kind)
	if c.activity != nil {
		c.activity.RecordActivity(ctx, kind, text, "ok")
	}
	return true
}
