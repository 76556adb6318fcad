package inventory

import (
	"errors"

	"github.com/andresuchdata/storeops/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// UrgentStock lists low-stock products in catalog order.
func (e *Engine) UrgentStock() []domain.UrgentStockItem {
	items := make([]domain.UrgentStockItem, 0)
	for _, p := range e.lowStockProducts(e.catalog.Products()) {
		ratio, err := p.StockRatio()
		if errors.Is(err, domain.ErrZeroStock) {
			log.Warn().Str("report", string(KindUrgentStock)).Str("product", p.Name).Msg("zero nominal stock, reporting stock rate as 0")
		}

		items = append(items, domain.UrgentStockItem{
			Name:             p.Name,
			Category:         p.Category,
			SafetyStock:      p.SafetyStock,
			Stock:            p.Stock,
			Needed:           p.UnitsNeeded(),
			StockRatePercent: ratio * 100,
		})
	}
	return items
}
