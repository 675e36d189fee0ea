package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event names as published on the wire.
const (
	EventSaleCreated       = "sale.created"
	EventSaleModified      = "sale.modified"
	EventSaleCancelled     = "sale.cancelled"
	EventSaleItemCancelled = "sale.item.cancelled"
)

// Event is a domain fact recorded by the sale aggregate and delivered by an
// external dispatcher after a successful commit.
type Event interface {
	Name() string
	OccurredAt() time.Time
}

// SaleCreated is recorded when a sale is first constructed.
type SaleCreated struct {
	Sale SaleSnapshot `json:"sale"`
	At   time.Time    `json:"occurred_at"`
}

func (e SaleCreated) Name() string          { return EventSaleCreated }
func (e SaleCreated) OccurredAt() time.Time { return e.At }

// SaleModified is recorded whenever the item collection changes.
type SaleModified struct {
	Sale SaleSnapshot `json:"sale"`
	At   time.Time    `json:"occurred_at"`
}

func (e SaleModified) Name() string          { return EventSaleModified }
func (e SaleModified) OccurredAt() time.Time { return e.At }

// SaleCancelled is recorded on the Active -> Cancelled transition.
type SaleCancelled struct {
	Sale SaleSnapshot `json:"sale"`
	At   time.Time    `json:"occurred_at"`
}

func (e SaleCancelled) Name() string          { return EventSaleCancelled }
func (e SaleCancelled) OccurredAt() time.Time { return e.At }

// SaleItemCancelled is recorded when a single line item is removed.
// It carries only the identities; the accompanying SaleModified event carries
// the full post-removal snapshot.
type SaleItemCancelled struct {
	SaleID uuid.UUID `json:"sale_id"`
	ItemID uuid.UUID `json:"item_id"`
	At     time.Time `json:"occurred_at"`
}

func (e SaleItemCancelled) Name() string          { return EventSaleItemCancelled }
func (e SaleItemCancelled) OccurredAt() time.Time { return e.At }
