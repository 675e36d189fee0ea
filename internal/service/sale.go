package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ostlund/vanir/internal/domain"
	"github.com/ostlund/vanir/internal/events"
	"github.com/ostlund/vanir/internal/telemetry"
)

// SaleService provides business logic for sale operations.
type SaleService interface {
	// CreateSale opens a new active sale for a customer at a branch.
	CreateSale(ctx context.Context, params CreateSaleParams) (*domain.SaleSnapshot, error)

	// GetSale retrieves a sale by id.
	GetSale(ctx context.Context, saleID string) (*domain.SaleSnapshot, error)

	// ListSales returns all sales, newest first.
	ListSales(ctx context.Context) ([]domain.SaleSnapshot, error)

	// AddItem prices a catalog product into the sale. The product's current
	// name and unit price are denormalized onto the line item.
	AddItem(ctx context.Context, saleID string, params AddItemParams) (*domain.SaleSnapshot, error)

	// RemoveItem removes one line item from the sale.
	RemoveItem(ctx context.Context, saleID, itemID string) (*domain.SaleSnapshot, error)

	// CancelSale cancels the sale. Cancelling twice is a no-op.
	CancelSale(ctx context.Context, saleID string) (*domain.SaleSnapshot, error)
}

// CreateSaleParams carries the validated request to open a sale.
type CreateSaleParams struct {
	CustomerID   string
	CustomerName string
	BranchID     string
	BranchName   string

	// CreatedAt is the transaction timestamp. Zero means "now"; future
	// timestamps are rejected.
	CreatedAt time.Time
}

// AddItemParams carries the validated request to add a line item.
type AddItemParams struct {
	ProductID string
	Quantity  int
}

type saleService struct {
	sales     domain.SaleRepository
	products  domain.ProductRepository
	publisher events.Publisher
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger
}

// NewSaleService creates a new SaleService instance.
func NewSaleService(
	sales domain.SaleRepository,
	products domain.ProductRepository,
	publisher events.Publisher,
	metrics *telemetry.BusinessMetrics,
	logger *slog.Logger,
) SaleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &saleService{
		sales:     sales,
		products:  products,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

func (s *saleService) CreateSale(ctx context.Context, params CreateSaleParams) (*domain.SaleSnapshot, error) {
	customerID, err := parseID("sale.create", "customer id", params.CustomerID)
	if err != nil {
		return nil, err
	}
	branchID, err := parseID("sale.create", "branch id", params.BranchID)
	if err != nil {
		return nil, err
	}
	if !params.CreatedAt.IsZero() && params.CreatedAt.After(time.Now().Add(time.Minute)) {
		return nil, domain.Invalid("sale.create", "sale date cannot be in the future")
	}

	sale, err := domain.NewSale(customerID, params.CustomerName, branchID, params.BranchName, params.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := s.sales.Create(ctx, sale); err != nil {
		return nil, domain.Internal(err, "sale.create", "failed to save sale")
	}

	s.metrics.SalesCreated.Inc()
	s.dispatch(ctx, sale)

	snap := sale.Snapshot()
	return &snap, nil
}

func (s *saleService) GetSale(ctx context.Context, saleID string) (*domain.SaleSnapshot, error) {
	sale, err := s.loadSale(ctx, "sale.get", saleID)
	if err != nil {
		return nil, err
	}

	snap := sale.Snapshot()
	return &snap, nil
}

func (s *saleService) ListSales(ctx context.Context) ([]domain.SaleSnapshot, error) {
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, domain.Internal(err, "sale.list", "failed to list sales")
	}

	snaps := make([]domain.SaleSnapshot, len(sales))
	for i, sale := range sales {
		snaps[i] = sale.Snapshot()
	}
	return snaps, nil
}

func (s *saleService) AddItem(ctx context.Context, saleID string, params AddItemParams) (*domain.SaleSnapshot, error) {
	productID, err := parseID("sale.add_item", "product id", params.ProductID)
	if err != nil {
		return nil, err
	}

	sale, err := s.loadSale(ctx, "sale.add_item", saleID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	if _, err := sale.AddItem(product.ID, product.Name, params.Quantity, product.UnitPrice); err != nil {
		return nil, err
	}

	if err := s.sales.Update(ctx, sale); err != nil {
		return nil, domain.Internal(err, "sale.add_item", "failed to save sale")
	}

	s.metrics.ItemsAdded.Inc()
	s.observeValue(sale)
	s.dispatch(ctx, sale)

	snap := sale.Snapshot()
	return &snap, nil
}

func (s *saleService) RemoveItem(ctx context.Context, saleID, itemID string) (*domain.SaleSnapshot, error) {
	id, err := parseID("sale.remove_item", "item id", itemID)
	if err != nil {
		return nil, err
	}

	sale, err := s.loadSale(ctx, "sale.remove_item", saleID)
	if err != nil {
		return nil, err
	}

	if _, err := sale.RemoveItem(id); err != nil {
		return nil, err
	}

	if err := s.sales.Update(ctx, sale); err != nil {
		return nil, domain.Internal(err, "sale.remove_item", "failed to save sale")
	}

	s.metrics.ItemsRemoved.Inc()
	s.observeValue(sale)
	s.dispatch(ctx, sale)

	snap := sale.Snapshot()
	return &snap, nil
}

func (s *saleService) CancelSale(ctx context.Context, saleID string) (*domain.SaleSnapshot, error) {
	sale, err := s.loadSale(ctx, "sale.cancel", saleID)
	if err != nil {
		return nil, err
	}

	wasActive := sale.Status() == domain.SaleStatusActive
	sale.Cancel()

	if wasActive {
		if err := s.sales.Update(ctx, sale); err != nil {
			return nil, domain.Internal(err, "sale.cancel", "failed to save sale")
		}
		s.metrics.SalesCancelled.Inc()
		s.dispatch(ctx, sale)
	}

	snap := sale.Snapshot()
	return &snap, nil
}

func (s *saleService) loadSale(ctx context.Context, op, saleID string) (*domain.Sale, error) {
	id, err := parseID(op, "sale id", saleID)
	if err != nil {
		return nil, err
	}
	return s.sales.Get(ctx, id)
}

// dispatch drains the aggregate's pending facts and hands them to the
// publisher. It runs only after a successful save; a publish failure is
// logged and counted but never fails the request.
func (s *saleService) dispatch(ctx context.Context, sale *domain.Sale) {
	for _, event := range sale.DrainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.metrics.EventPublishFailed.WithLabelValues(event.Name()).Inc()
			s.logger.Error("failed to publish domain event",
				"event", event.Name(),
				"sale_id", sale.ID().String(),
				"error", err,
			)
			continue
		}
		s.metrics.EventsPublished.WithLabelValues(event.Name()).Inc()
	}
}

func (s *saleService) observeValue(sale *domain.Sale) {
	value, _ := sale.TotalAmount().Float64()
	s.metrics.SaleValue.Observe(value)
}

func parseID(op, field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, domain.Errorf(domain.EINVALID, op, "invalid %s: %s", field, value)
	}
	return id, nil
}
