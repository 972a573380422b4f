package services

import (
	"context"
	"log/slog"
	"time"

	"clubscheduler/internal/domain"
)

// publish sends a domain event if a publisher is configured. Broker failures
// never fail the calling workflow; they are logged.
func publish(ctx context.Context, logger *slog.Logger, publisher domain.EventPublisher, topic string, payload any) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, topic, payload); err != nil {
		logger.WarnContext(ctx, "publish domain event failed", "topic", topic, "err", err)
	}
}

// withTimeout bounds ctx by d. A non-positive d leaves ctx unbounded.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
