package loader

import (
	"time"

	"github.com/andresuchdata/storeops/backend-go/internal/domain"
)

// DemoProducts is the sample convenience-store catalog. Expiration dates
// are relative to today.
func DemoProducts(today time.Time) []domain.Product {
	day := func(n int) time.Time {
		y, m, d := today.AddDate(0, 0, n).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	return []domain.Product{
		domain.NewSnack("Shrimp Crackers", 1500, 30, 5),
		domain.NewBeverage("Cola 500ml", 1500, 25, 8, 500),
		domain.NewFood("Kimchi Stew Box", 5500, 20, 3, day(2)),
		domain.NewFood("Tuna Mayo Onigiri", 1500, 15, 12, day(1)),
		domain.NewFood("Strawberry Sandwich", 2800, 10, 2, day(0)),
		domain.NewBeverage("Water 500ml", 1000, 50, 25, 500),
		domain.NewSnack("Choco Pie", 3000, 20, 15),
		domain.NewFood("Instant Ramen", 1200, 40, 45, day(30)),
		domain.NewHousehold("Wet Wipes", 2000, 30, 10),
	}
}

// DemoSales is the sample same-day ledger for DemoProducts.
func DemoSales() []domain.SaleEntry {
	return []domain.SaleEntry{
		{Name: "Shrimp Crackers", Quantity: 15},
		{Name: "Cola 500ml", Quantity: 12},
		{Name: "Tuna Mayo Onigiri", Quantity: 10},
		{Name: "Choco Pie", Quantity: 8},
		{Name: "Water 500ml", Quantity: 7},
		{Name: "Strawberry Sandwich", Quantity: 3},
		{Name: "Kimchi Stew Box", Quantity: 2},
		{Name: "Wet Wipes", Quantity: 5},
	}
}

// DemoDiscounts is the sample expiry discount schedule.
func DemoDiscounts() domain.DiscountPolicy {
	return domain.DiscountPolicy{3: 0.0, 2: 0.3, 1: 0.5, 0: 0.7}
}

// Demo builds the sample catalog and ledger.
func Demo(today time.Time) (*domain.Catalog, *domain.SalesLedger, error) {
	catalog, err := domain.NewCatalog(DemoProducts(today)...)
	if err != nil {
		return nil, nil, err
	}
	ledger, err := domain.NewSalesLedger(DemoSales()...)
	if err != nil {
		return nil, nil, err
	}
	return catalog, ledger, nil
}
