// backend-go/internal/domain/product.go
package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Category tags the product variant.
type Category int

const (
	CategoryFood Category = iota + 1
	CategoryBeverage
	CategorySnack
	CategoryHousehold
)

var categoryLabels = map[Category]string{
	CategoryFood:      "food",
	CategoryBeverage:  "beverage",
	CategorySnack:     "snack",
	CategoryHousehold: "household",
}

var categoryCodes = map[string]Category{
	"food":      CategoryFood,
	"beverage":  CategoryBeverage,
	"snack":     CategorySnack,
	"household": CategoryHousehold,
}

// String returns the lower-case label used in reports.
func (c Category) String() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}

	return "unknown"
}

// ParseCategory returns the category for a given label (case-insensitive).
func ParseCategory(label string) (Category, error) {
	c, ok := categoryCodes[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, label)
	}

	return c, nil
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Product is a catalog entry. Stock is the reorder-up-to level and
// SafetyStock is the quantity currently on hand.
type Product struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Price       int      `json:"price"`
	Stock       int      `json:"stock"`
	SafetyStock int      `json:"safety_stock"`

	// Food only
	ExpirationDate time.Time `json:"expiration_date,omitzero"`
	// Beverage only, informational
	VolumeML int `json:"volume_ml,omitempty"`
}

func NewFood(name string, price, stock, safetyStock int, expirationDate time.Time) Product {
	return Product{
		Name:           name,
		Category:       CategoryFood,
		Price:          price,
		Stock:          stock,
		SafetyStock:    safetyStock,
		ExpirationDate: expirationDate,
	}
}

func NewBeverage(name string, price, stock, safetyStock, volumeML int) Product {
	return Product{
		Name:        name,
		Category:    CategoryBeverage,
		Price:       price,
		Stock:       stock,
		SafetyStock: safetyStock,
		VolumeML:    volumeML,
	}
}

func NewSnack(name string, price, stock, safetyStock int) Product {
	return Product{Name: name, Category: CategorySnack, Price: price, Stock: stock, SafetyStock: safetyStock}
}

func NewHousehold(name string, price, stock, safetyStock int) Product {
	return Product{Name: name, Category: CategoryHousehold, Price: price, Stock: stock, SafetyStock: safetyStock}
}

// Validate checks the record invariants. A zero Stock is accepted here and
// surfaced through ErrZeroStock by StockRatio.
func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case p.Price < 0:
		return fmt.Errorf("%w: %q has negative price", ErrInvalidProduct, p.Name)
	case p.Stock < 0:
		return fmt.Errorf("%w: %q has negative stock", ErrInvalidProduct, p.Name)
	case p.SafetyStock < 0:
		return fmt.Errorf("%w: %q has negative on-hand quantity", ErrInvalidProduct, p.Name)
	}
	if _, ok := categoryLabels[p.Category]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, p.Name)
	}
	if p.Category == CategoryFood && p.ExpirationDate.IsZero() {
		return fmt.Errorf("%w: food %q has no expiration date", ErrInvalidProduct, p.Name)
	}
	return nil
}

func (p Product) IsFood() bool {
	return p.Category == CategoryFood
}

// StockRatio returns SafetyStock / Stock.
func (p Product) StockRatio() (float64, error) {
	if p.Stock == 0 {
		return 0, fmt.Errorf("%w: %q", ErrZeroStock, p.Name)
	}
	return float64(p.SafetyStock) / float64(p.Stock), nil
}

// IsStockLow reports whether the stock ratio is strictly below threshold.
// A product with zero nominal stock is always low.
func (p Product) IsStockLow(threshold float64) bool {
	ratio, err := p.StockRatio()
	if err != nil {
		return true
	}
	return ratio < threshold
}

// InventoryTurnoverRate is sold divided by the average of the opening and
// closing on-hand quantity. The closing quantity is not clamped, so an
// oversold product yields a negative or infinite rate.
func (p Product) InventoryTurnoverRate(sold int) float64 {
	if sold == 0 {
		return 0.0
	}

	averageInventory := float64(p.SafetyStock+(p.SafetyStock-sold)) / 2.0
	if averageInventory == 0.0 {
		return math.Inf(1)
	}

	return float64(sold) / averageInventory
}

// SalesEfficiency is sold divided by the on-hand quantity.
func (p Product) SalesEfficiency(sold int) float64 {
	if p.SafetyStock == 0 {
		return math.Inf(1)
	}
	return float64(sold) / float64(p.SafetyStock)
}

// UnitsNeeded is how many units bring the product back to its nominal stock.
func (p Product) UnitsNeeded() int {
	return p.Stock - p.SafetyStock
}

// WithSafetyStock returns a copy with a different on-hand quantity.
func (p Product) WithSafetyStock(onHand int) Product {
	p.SafetyStock = onHand
	return p
}

// DaysUntilExpiry is the calendar-day difference between today and the
// expiration date. It is negative for expired items.
func (p Product) DaysUntilExpiry(today time.Time) int {
	return DaysBetween(today, p.ExpirationDate)
}

// DaysBetween counts calendar days from one date to another, ignoring the
// time of day.
func DaysBetween(from, to time.Time) int {
	return int(math.Round(civilDate(to).Sub(civilDate(from)).Hours() / 24))
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
