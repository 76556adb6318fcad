package inventory

import (
	"sort"

	"github.com/andresuchdata/storeops/backend-go/internal/domain"
)

type expiringFood struct {
	product domain.Product
	days    int
}

// expiringFoods returns food items at or inside the warning window,
// expired ones included, soonest first. Equal dates keep catalog order.
func (e *Engine) expiringFoods() []expiringFood {
	today := e.today()

	var foods []expiringFood
	for _, p := range e.catalog.Products() {
		if !p.IsFood() {
			continue
		}
		days := p.DaysUntilExpiry(today)
		if days <= e.policy.ExpiryWarningDays {
			foods = append(foods, expiringFood{product: p, days: days})
		}
	}

	sort.SliceStable(foods, func(i, j int) bool {
		return foods[i].days < foods[j].days
	})
	return foods
}

// Expiring lists near-expiry food with its tiered discount.
func (e *Engine) Expiring() []domain.ExpiryItem {
	foods := e.expiringFoods()
	items := make([]domain.ExpiryItem, 0, len(foods))
	for _, f := range foods {
		rate := e.policy.DiscountPolicy.RateFor(f.days)
		items = append(items, domain.ExpiryItem{
			Name:            f.product.Name,
			ExpirationDate:  f.product.ExpirationDate,
			DaysUntilExpiry: f.days,
			DiscountRate:    rate,
			Price:           f.product.Price,
			DiscountedPrice: discountedPrice(f.product.Price, rate),
		})
	}
	return items
}
