package events

import (
	"context"
	"log/slog"

	"github.com/ostlund/vanir/internal/domain"
)

// LogPublisher writes events to the application log instead of a broker.
// Used when no NATS URL is configured, typically in local development.
type LogPublisher struct {
	logger *slog.Logger
}

var _ Publisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.Event) error {
	p.logger.Info("domain event", "event", event.Name(), "occurred_at", event.OccurredAt())
	return nil
}

func (p *LogPublisher) Close() {}
