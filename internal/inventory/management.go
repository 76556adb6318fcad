package inventory

import (
	"github.com/andresuchdata/storeops/backend-go/internal/domain"
)

// ManagementAnalysis ranks products that appear in the ledger by turnover
// and sales efficiency, and reports overstock and reorder needs across the
// whole catalog.
func (e *Engine) ManagementAnalysis() domain.ManagementAnalysis {
	products := e.catalog.Products()
	analysis := domain.ManagementAnalysis{
		Overstocked: make([]domain.OverstockItem, 0),
	}

	for _, p := range products {
		sold, ok := e.ledger.Quantity(p.Name)
		if !ok {
			continue
		}
		turnover := p.InventoryTurnoverRate(sold)
		efficiency := p.SalesEfficiency(sold)

		// strict comparisons keep the first product seen on ties
		if analysis.MaxTurnover == nil || turnover > analysis.MaxTurnover.Value {
			analysis.MaxTurnover = &domain.MetricLeader{Name: p.Name, Value: turnover}
		}
		if turnover > 0 && (analysis.MinTurnover == nil || turnover < analysis.MinTurnover.Value) {
			analysis.MinTurnover = &domain.MetricLeader{Name: p.Name, Value: turnover}
		}
		if analysis.MaxEfficiency == nil || efficiency > analysis.MaxEfficiency.Value {
			analysis.MaxEfficiency = &domain.MetricLeader{Name: p.Name, Value: efficiency}
		}
	}

	for _, p := range products {
		if e.soldOf(p.Name) == 0 && float64(p.SafetyStock) > float64(p.Stock)*overstockRatio {
			analysis.Overstocked = append(analysis.Overstocked, domain.OverstockItem{
				Name:        p.Name,
				SafetyStock: p.SafetyStock,
			})
		}
	}

	for _, p := range e.lowStockProducts(products) {
		analysis.ReorderCount++
		analysis.ReorderUnits += p.UnitsNeeded()
	}

	return analysis
}
