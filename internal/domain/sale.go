package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// SALE DOMAIN ERRORS
// =============================================================================

var (
	ErrSaleNotFound     = &Error{Code: ENOTFOUND, Message: "Sale not found"}
	ErrSaleItemNotFound = &Error{Code: ENOTFOUND, Message: "Sale item not found"}
	ErrSaleCancelled    = &Error{Code: ECONFLICT, Message: "Sale has been cancelled and can no longer be modified"}
)

// SaleStatus is the lifecycle state of a sale. The only transition is
// Active -> Cancelled; cancellation is terminal.
type SaleStatus string

const (
	SaleStatusActive    SaleStatus = "active"
	SaleStatusCancelled SaleStatus = "cancelled"
)

// Sale is the transactional aggregate owning a collection of line items.
// It is the single "priced order" type backing both cart and completed-sale
// flows. All item mutation goes through the aggregate so the quantity limits
// and the cancelled-is-frozen invariant hold at all times.
//
// A Sale is not safe for concurrent mutation; it assumes the single-writer
// semantics of one request handling one loaded instance.
type Sale struct {
	id           uuid.UUID
	createdAt    time.Time
	customerID   uuid.UUID
	customerName string
	branchID     uuid.UUID
	branchName   string
	status       SaleStatus
	items        []SaleItem
	pending      []Event
}

// NewSale creates an active, empty sale. Customer and branch carry both an
// identity and a denormalized display name; empty values are rejected.
func NewSale(customerID uuid.UUID, customerName string, branchID uuid.UUID, branchName string, createdAt time.Time) (*Sale, error) {
	switch {
	case customerID == uuid.Nil:
		return nil, Invalid("sale.create", "customer id is required")
	case strings.TrimSpace(customerName) == "":
		return nil, Invalid("sale.create", "customer name is required")
	case branchID == uuid.Nil:
		return nil, Invalid("sale.create", "branch id is required")
	case strings.TrimSpace(branchName) == "":
		return nil, Invalid("sale.create", "branch name is required")
	}

	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	s := &Sale{
		id:           uuid.New(),
		createdAt:    createdAt,
		customerID:   customerID,
		customerName: customerName,
		branchID:     branchID,
		branchName:   branchName,
		status:       SaleStatusActive,
	}
	s.record(SaleCreated{Sale: s.Snapshot(), At: time.Now().UTC()})

	return s, nil
}

// RestoreSale rehydrates a sale from persistence. No validation runs and no
// facts are recorded; the stored state already passed through NewSale.
func RestoreSale(id uuid.UUID, createdAt time.Time, customerID uuid.UUID, customerName string, branchID uuid.UUID, branchName string, status SaleStatus, items []SaleItem) *Sale {
	return &Sale{
		id:           id,
		createdAt:    createdAt,
		customerID:   customerID,
		customerName: customerName,
		branchID:     branchID,
		branchName:   branchName,
		status:       status,
		items:        slices.Clone(items),
	}
}

// AddItem prices and appends a new line item. The sale must be active.
// If item construction fails, the sale is left untouched and the error
// propagates unchanged.
func (s *Sale) AddItem(productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (SaleItem, error) {
	if s.status == SaleStatusCancelled {
		return SaleItem{}, ErrSaleCancelled
	}
	if productID == uuid.Nil {
		return SaleItem{}, Invalid("sale.add_item", "product id is required")
	}
	if strings.TrimSpace(productName) == "" {
		return SaleItem{}, Invalid("sale.add_item", "product name is required")
	}
	if !unitPrice.IsPositive() {
		return SaleItem{}, Invalid("sale.add_item", "unit price must be positive")
	}

	item, err := newSaleItem(productID, productName, quantity, unitPrice)
	if err != nil {
		return SaleItem{}, err
	}

	s.items = append(s.items, item)
	s.record(SaleModified{Sale: s.Snapshot(), At: time.Now().UTC()})

	return item, nil
}

// RemoveItem removes the line item with the given id and returns it.
// The sale must be active and the item must exist.
func (s *Sale) RemoveItem(itemID uuid.UUID) (SaleItem, error) {
	if s.status == SaleStatusCancelled {
		return SaleItem{}, ErrSaleCancelled
	}

	for i, item := range s.items {
		if item.ID == itemID {
			s.items = slices.Delete(s.items, i, i+1)
			now := time.Now().UTC()
			s.record(SaleItemCancelled{SaleID: s.id, ItemID: itemID, At: now})
			s.record(SaleModified{Sale: s.Snapshot(), At: now})
			return item, nil
		}
	}

	return SaleItem{}, ErrSaleItemNotFound
}

// Cancel transitions the sale to Cancelled. Cancelling an already-cancelled
// sale is a no-op; the transition is terminal either way.
func (s *Sale) Cancel() {
	if s.status == SaleStatusCancelled {
		return
	}

	s.status = SaleStatusCancelled
	s.record(SaleCancelled{Sale: s.Snapshot(), At: time.Now().UTC()})
}

// TotalAmount is the live sum of all current item totals. It is always
// recomputed from the item collection, never stored.
func (s *Sale) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Total)
	}
	return total
}

// Items returns a copy of the line items in insertion order. The underlying
// collection is owned exclusively by the sale.
func (s *Sale) Items() []SaleItem {
	return slices.Clone(s.items)
}

func (s *Sale) ID() uuid.UUID         { return s.id }
func (s *Sale) CreatedAt() time.Time  { return s.createdAt }
func (s *Sale) CustomerID() uuid.UUID { return s.customerID }
func (s *Sale) CustomerName() string  { return s.customerName }
func (s *Sale) BranchID() uuid.UUID   { return s.branchID }
func (s *Sale) BranchName() string    { return s.branchName }
func (s *Sale) Status() SaleStatus    { return s.status }

// Snapshot produces the read-only view of the sale exposed to callers and
// carried on domain events.
func (s *Sale) Snapshot() SaleSnapshot {
	return SaleSnapshot{
		ID:           s.id,
		CreatedAt:    s.createdAt,
		CustomerID:   s.customerID,
		CustomerName: s.customerName,
		BranchID:     s.branchID,
		BranchName:   s.branchName,
		Status:       s.status,
		TotalAmount:  s.TotalAmount(),
		Items:        slices.Clone(s.items),
	}
}

// DrainEvents returns the facts recorded since the last drain and clears the
// pending list. The caller owns delivery: drain after a successful commit and
// hand the events to the dispatcher.
func (s *Sale) DrainEvents() []Event {
	events := s.pending
	s.pending = nil
	return events
}

func (s *Sale) record(e Event) {
	s.pending = append(s.pending, e)
}

// SaleSnapshot is the immutable outbound representation of a sale.
type SaleSnapshot struct {
	ID           uuid.UUID       `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	BranchID     uuid.UUID       `json:"branch_id"`
	BranchName   string          `json:"branch_name"`
	Status       SaleStatus      `json:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Items        []SaleItem      `json:"items"`
}
