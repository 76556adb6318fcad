// backend-go/internal/domain/reports.go
package domain

import (
	"encoding/json"
	"math"
	"time"
)

// UrgentStockItem is a low-stock product with its refill need
type UrgentStockItem struct {
	Name             string   `json:"name"`
	Category         Category `json:"category"`
	SafetyStock      int      `json:"safety_stock"`
	Stock            int      `json:"stock"`
	Needed           int      `json:"needed"`
	StockRatePercent float64  `json:"stock_rate_percent"`
}

// ExpiryItem is a food product inside the expiry warning window
type ExpiryItem struct {
	Name            string    `json:"name"`
	ExpirationDate  time.Time `json:"expiration_date"`
	DaysUntilExpiry int       `json:"days_until_expiry"`
	DiscountRate    float64   `json:"discount_rate"`
	Price           int       `json:"price"`
	DiscountedPrice int       `json:"discounted_price"`
}

// BestsellerEntry is one ranked ledger entry. Found is false when the
// ledger names a product the catalog does not have.
type BestsellerEntry struct {
	Rank     int    `json:"rank"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Revenue  int    `json:"revenue"`
	Found    bool   `json:"found"`
}

// SalesLine is the revenue breakdown of one matched ledger entry
type SalesLine struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
	Revenue   int    `json:"revenue"`
}

// SalesSummary totals only the ledger entries that matched the catalog.
type SalesSummary struct {
	TotalRevenue   int         `json:"total_revenue"`
	TotalItemsSold int         `json:"total_items_sold"`
	Lines          []SalesLine `json:"lines"`
	Missing        []string    `json:"missing"`
}

// MetricLeader names the product holding an extreme metric value
type MetricLeader struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MarshalJSON writes infinite values as null with an infinite flag, since
// JSON has no representation for them.
func (m MetricLeader) MarshalJSON() ([]byte, error) {
	out := struct {
		Name     string   `json:"name"`
		Value    *float64 `json:"value"`
		Infinite bool     `json:"infinite,omitempty"`
	}{Name: m.Name}

	if math.IsInf(m.Value, 0) {
		out.Infinite = true
	} else {
		v := m.Value
		out.Value = &v
	}
	return json.Marshal(out)
}

// OverstockItem is an unsold product holding more than half its nominal stock
type OverstockItem struct {
	Name        string `json:"name"`
	SafetyStock int    `json:"safety_stock"`
}

// ManagementAnalysis holds the turnover/efficiency ranking and stock
// status. The leader fields are nil when no product qualifies.
type ManagementAnalysis struct {
	MaxTurnover   *MetricLeader   `json:"max_turnover,omitempty"`
	MinTurnover   *MetricLeader   `json:"min_turnover,omitempty"`
	MaxEfficiency *MetricLeader   `json:"max_efficiency,omitempty"`
	Overstocked   []OverstockItem `json:"overstocked"`
	ReorderCount  int             `json:"reorder_count"`
	ReorderUnits  int             `json:"reorder_units"`
}

// OverallStatus summarises the catalog after today's sales are applied
type OverallStatus struct {
	ProductCount   int `json:"product_count"`
	ProjectedUnits int `json:"projected_units"`
	InventoryValue int `json:"inventory_value"`
	LowStockCount  int `json:"low_stock_count"`
	ExpiringCount  int `json:"expiring_count"`
	UnitsSold      int `json:"units_sold"`
}
