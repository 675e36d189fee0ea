package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BusinessMetrics holds Prometheus metrics for business-level observability
// of the sales flow, as opposed to the HTTP transport metrics in middleware.
type BusinessMetrics struct {
	// Sales lifecycle
	SalesCreated   prometheus.Counter
	SalesCancelled prometheus.Counter

	// Line items
	ItemsAdded   prometheus.Counter
	ItemsRemoved prometheus.Counter

	// SaleValue observes the aggregate total after each successful mutation.
	SaleValue prometheus.Histogram

	// Catalog
	ProductsCreated prometheus.Counter
	ProductsDeleted prometheus.Counter

	// Event dispatch
	EventsPublished    *prometheus.CounterVec
	EventPublishFailed *prometheus.CounterVec
}

// NewBusinessMetrics creates and registers all business metrics on the given
// registerer. Tests pass a private registry; main passes the default one.
func NewBusinessMetrics(namespace string, reg prometheus.Registerer) *BusinessMetrics {
	if namespace == "" {
		namespace = "vanir"
	}

	m := &BusinessMetrics{
		SalesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "business",
			Name:      "sales_created_total",
			Help:      "Total number of sales created",
		}),
		SalesCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "business",
			Name:      "sales_cancelled_total",
			Help:      "Total number of sales cancelled",
		}),
		ItemsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "business",
			Name:      "sale_items_added_total",
			Help:      "Total number of line items added to sales",
		}),
		ItemsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "business",
			Name:      "sale_items_removed_total",
			Help:      "Total number of line items removed from sales",
		}),
		SaleValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "business",
			Name:      "sale_value",
			Help:      "Sale total amount after each successful mutation",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
		ProductsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "business",
			Name:      "products_created_total",
			Help:      "Total number of catalog products created",
		}),
		ProductsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "business",
			Name:      "products_deleted_total",
			Help:      "Total number of catalog products deleted",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "business",
			Name:      "events_published_total",
			Help:      "Total number of domain events handed to the publisher",
		}, []string{"event"}),
		EventPublishFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "business",
			Name:      "events_publish_failed_total",
			Help:      "Total number of domain events the publisher rejected",
		}, []string{"event"}),
	}

	reg.MustRegister(
		m.SalesCreated,
		m.SalesCancelled,
		m.ItemsAdded,
		m.ItemsRemoved,
		m.SaleValue,
		m.ProductsCreated,
		m.ProductsDeleted,
		m.EventsPublished,
		m.EventPublishFailed,
	)

	return m
}
