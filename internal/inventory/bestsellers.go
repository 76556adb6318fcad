package inventory

import (
	"sort"

	"github.com/andresuchdata/storeops/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// rankedSales orders ledger entries by quantity, highest first. Equal
// quantities keep ledger order.
func (e *Engine) rankedSales() []domain.SaleEntry {
	entries := e.ledger.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Quantity > entries[j].Quantity
	})
	return entries
}

// Bestsellers returns the five best-selling ledger entries. Entries that
// are missing from the catalog keep their rank and are flagged not found.
func (e *Engine) Bestsellers() []domain.BestsellerEntry {
	ranked := e.rankedSales()
	if len(ranked) > bestsellerLimit {
		ranked = ranked[:bestsellerLimit]
	}

	out := make([]domain.BestsellerEntry, 0, len(ranked))
	for i, sale := range ranked {
		entry := domain.BestsellerEntry{
			Rank:     i + 1,
			Name:     sale.Name,
			Quantity: sale.Quantity,
		}
		if p, ok := e.catalog.Lookup(sale.Name); ok {
			entry.Found = true
			entry.Revenue = p.Price * sale.Quantity
		} else {
			log.Warn().Str("report", string(KindBestsellers)).Str("product", sale.Name).Msg("sold product missing from catalog")
		}
		out = append(out, entry)
	}
	return out
}
