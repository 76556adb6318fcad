package inventory

import (
	"github.com/andresuchdata/storeops/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// Sales joins the ledger to the catalog. Totals cover matched entries
// only; unmatched names are returned in ledger order.
func (e *Engine) Sales() domain.SalesSummary {
	summary := domain.SalesSummary{
		Lines:   make([]domain.SalesLine, 0, e.ledger.Len()),
		Missing: make([]string, 0),
	}

	for _, sale := range e.ledger.Entries() {
		if _, ok := e.catalog.Lookup(sale.Name); !ok {
			log.Warn().Str("report", string(KindSales)).Str("product", sale.Name).Int("quantity", sale.Quantity).Msg("sold product missing from catalog")
			summary.Missing = append(summary.Missing, sale.Name)
		}
	}

	for _, sale := range e.rankedSales() {
		p, ok := e.catalog.Lookup(sale.Name)
		if !ok {
			continue
		}
		revenue := p.Price * sale.Quantity
		summary.TotalRevenue += revenue
		summary.TotalItemsSold += sale.Quantity
		summary.Lines = append(summary.Lines, domain.SalesLine{
			Name:      p.Name,
			Quantity:  sale.Quantity,
			UnitPrice: p.Price,
			Revenue:   revenue,
		})
	}

	return summary
}
