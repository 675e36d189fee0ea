package routes

import (
	"github.com/ostlund/vanir/internal/router"
)

// RegisterAPIRoutes registers the versioned JSON API.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	// Catalog
	r.Post("/api/v1/products", deps.ProductHandler.Create)
	r.Get("/api/v1/products", deps.ProductHandler.List)
	r.Get("/api/v1/products/{id}", deps.ProductHandler.Get)
	r.Delete("/api/v1/products/{id}", deps.ProductHandler.Delete)

	// Sales
	r.Post("/api/v1/sales", deps.SaleHandler.Create)
	r.Get("/api/v1/sales", deps.SaleHandler.List)
	r.Get("/api/v1/sales/{id}", deps.SaleHandler.Get)
	r.Delete("/api/v1/sales/{id}", deps.SaleHandler.Cancel)
	r.Post("/api/v1/sales/{id}/items", deps.SaleHandler.AddItem)
	r.Delete("/api/v1/sales/{id}/items/{itemID}", deps.SaleHandler.RemoveItem)
}
