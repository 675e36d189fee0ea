// Package worker consumes the sale event stream. It is the read side of the
// system: a durable JetStream consumer that projects published sale facts
// into the application log (and is the extension point for downstream
// projections such as reporting).
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ostlund/vanir/internal/events"
)

// Config holds worker configuration
type Config struct {
	// NATSURL is the broker address
	NATSURL string

	// Durable is the JetStream durable consumer name. Reusing the name
	// across restarts resumes consumption from the last acknowledged message.
	Durable string

	// FetchWait bounds how long a single fetch blocks waiting for messages
	FetchWait time.Duration

	// BatchSize is the maximum number of messages per fetch
	BatchSize int
}

// Worker consumes sale events from the stream
type Worker struct {
	config Config
	conn   *nats.Conn
	sub    *nats.Subscription
	logger *slog.Logger
}

// eventEnvelope mirrors the wire format written by the publisher.
type eventEnvelope struct {
	Event      string          `json:"event"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewWorker connects to NATS and binds a durable pull consumer to the
// sales stream.
func NewWorker(config Config, logger *slog.Logger) (*Worker, error) {
	if config.Durable == "" {
		config.Durable = "vanir-worker"
	}
	if config.FetchWait == 0 {
		config.FetchWait = 5 * time.Second
	}
	if config.BatchSize == 0 {
		config.BatchSize = 10
	}
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(
		config.NATSURL,
		nats.Timeout(10*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
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

	sub, err := js.PullSubscribe(
		"sale.>",
		config.Durable,
		nats.BindStream(events.StreamName),
		nats.AckExplicit(),
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to subscribe to sale events: %w", err)
	}

	return &Worker{
		config: config,
		conn:   conn,
		sub:    sub,
		logger: logger,
	}, nil
}

// Start consumes events until the context is cancelled
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("worker starting",
		"durable", w.config.Durable,
		"stream", events.StreamName,
		"fetch_wait", w.config.FetchWait,
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker shutting down", "durable", w.config.Durable)
			return ctx.Err()
		default:
		}

		msgs, err := w.sub.Fetch(w.config.BatchSize, nats.MaxWait(w.config.FetchWait))
		if err != nil {
			// Timeout just means the stream is idle
			if errors.Is(err, nats.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			if errors.Is(err, nats.ErrConnectionClosed) {
				return fmt.Errorf("connection closed: %w", err)
			}
			w.logger.Error("fetch failed", "error", err)
			continue
		}

		for _, msg := range msgs {
			if err := w.handle(msg); err != nil {
				w.logger.Error("failed to handle event",
					"subject", msg.Subject,
					"error", err,
				)
				// Nak so the message is redelivered
				_ = msg.Nak()
				continue
			}
			_ = msg.Ack()
		}
	}
}

// handle processes one event message
func (w *Worker) handle(msg *nats.Msg) error {
	var env eventEnvelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		return fmt.Errorf("failed to unmarshal envelope on %s: %w", msg.Subject, err)
	}

	w.logger.Info("sale event received",
		"event", env.Event,
		"subject", msg.Subject,
		"occurred_at", env.OccurredAt,
	)
	return nil
}

// Close drains the subscription and closes the connection
func (w *Worker) Close() {
	if w.sub != nil {
		_ = w.sub.Drain()
	}
	if w.conn != nil {
		w.conn.Close()
	}
}
