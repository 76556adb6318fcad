package inventory

import (
	"github.com/andresuchdata/storeops/backend-go/internal/domain"
)

// ProjectedCatalog returns every product with today's sales subtracted
// from its on-hand quantity. Oversold products go negative. The result is
// a new slice; the engine's catalog is untouched.
func (e *Engine) ProjectedCatalog() []domain.Product {
	products := e.catalog.Products()
	for i, p := range products {
		products[i] = p.WithSafetyStock(p.SafetyStock - e.soldOf(p.Name))
	}
	return products
}

// OverallStatus summarises the projected catalog.
func (e *Engine) OverallStatus() domain.OverallStatus {
	projected := e.ProjectedCatalog()

	status := domain.OverallStatus{
		ProductCount:  e.catalog.Len(),
		LowStockCount: len(e.lowStockProducts(projected)),
		ExpiringCount: len(e.expiringFoods()),
		UnitsSold:     e.ledger.Total(),
	}
	for _, p := range projected {
		status.ProjectedUnits += p.SafetyStock
		status.InventoryValue += p.Price * p.SafetyStock
	}
	return status
}
