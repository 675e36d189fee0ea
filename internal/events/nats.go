package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ostlund/vanir/internal/domain"
)

const (
	// StreamName is the JetStream stream holding all sale facts.
	StreamName = "SALES"

	// streamSubjects matches every event name under the sale.* hierarchy,
	// including the nested sale.item.cancelled subject.
	streamSubjects = "sale.>"
)

// NATSPublisher publishes domain events to a NATS JetStream stream. The
// event name doubles as the subject, so consumers can subscribe to a single
// fact type or to the whole sale.> hierarchy.
type NATSPublisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	logger *slog.Logger
}

var _ Publisher = (*NATSPublisher)(nil)

// NewNATSPublisher connects to NATS and ensures the sales stream exists.
func NewNATSPublisher(url string, logger *slog.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(
		url,
		nats.Timeout(10*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if _, err := js.StreamInfo(StreamName); err != nil {
		if !errors.Is(err, nats.ErrStreamNotFound) {
			conn.Close()
			return nil, fmt.Errorf("failed to get stream info for %s: %w", StreamName, err)
		}
		logger.Info("sales stream not found, creating it", "stream", StreamName)
		if _, err := js.AddStream(&nats.StreamConfig{
			Name:     StreamName,
			Subjects: []string{streamSubjects},
		}); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create stream %s: %w", StreamName, err)
		}
	}

	return &NATSPublisher{conn: conn, js: js, logger: logger}, nil
}

// Publish sends one event, using its name as the subject.
func (p *NATSPublisher) Publish(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(envelope{
		Event:      event.Name(),
		OccurredAt: event.OccurredAt(),
		Payload:    event,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	if _, err := p.js.Publish(event.Name(), data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Name(), err)
	}

	p.logger.Debug("event published", "subject", event.Name())
	return nil
}

// Close drains and closes the underlying connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
