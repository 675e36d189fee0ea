// Package events delivers domain facts to the outside world after the
// surrounding operation has committed. The aggregate records facts; a
// Publisher owns the transport.
package events

import (
	"context"
	"time"

	"github.com/ostlund/vanir/internal/domain"
)

// Publisher delivers a single domain event. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close()
}

// envelope is the wire shape shared by every published event.
type envelope struct {
	Event      string       `json:"event"`
	OccurredAt time.Time    `json:"occurred_at"`
	Payload    domain.Event `json:"payload"`
}
