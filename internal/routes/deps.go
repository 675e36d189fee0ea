package routes

import (
	"github.com/ostlund/vanir/internal/handler/api"
)

// APIDeps contains dependencies for the JSON API routes
type APIDeps struct {
	ProductHandler *api.ProductHandler
	SaleHandler    *api.SaleHandler
}
