package inventory

import (
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/storeops/backend-go/internal/domain"
	"github.com/andresuchdata/storeops/backend-go/internal/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testToday }

func day(n int) time.Time {
	return time.Date(2026, 10, 17+n, 0, 0, 0, 0, time.UTC)
}

func mustPolicy(t *testing.T) domain.ReportContext {
	t.Helper()
	policy, err := domain.NewReportContext(0.3, 3, loader.DemoDiscounts())
	require.NoError(t, err)
	return policy
}

func newDemoEngine(t *testing.T) *Engine {
	t.Helper()
	catalog, ledger, err := loader.Demo(testToday)
	require.NoError(t, err)
	return NewEngine(catalog, ledger, mustPolicy(t), WithClock(fixedClock))
}

func newEngine(t *testing.T, products []domain.Product, sales []domain.SaleEntry) *Engine {
	t.Helper()
	catalog, err := domain.NewCatalog(products...)
	require.NoError(t, err)
	ledger, err := domain.NewSalesLedger(sales...)
	require.NoError(t, err)
	return NewEngine(catalog, ledger, mustPolicy(t), WithClock(fixedClock))
}

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = name(it)
	}
	return out
}

func TestUrgentStock_ThresholdIsStrict(t *testing.T) {
	e := newEngine(t, []domain.Product{
		domain.NewSnack("Shrimp Crackers", 1500, 100, 10),
		domain.NewBeverage("Cola", 2000, 100, 30, 500),
		domain.NewFood("Lunch Box", 5000, 100, 29, testToday),
	}, nil)

	items := e.UrgentStock()
	require.Len(t, items, 2)
	assert.Equal(t, []string{"Shrimp Crackers", "Lunch Box"}, names(items, func(i domain.UrgentStockItem) string { return i.Name }))
	assert.Equal(t, 90, items[0].Needed)
	assert.InDelta(t, 29.0, items[1].StockRatePercent, 1e-9)
	assert.Equal(t, domain.CategoryFood, items[1].Category)
}

func TestUrgentStock_ZeroStockIsLowWithZeroRate(t *testing.T) {
	e := newEngine(t, []domain.Product{domain.NewSnack("Ghost", 100, 0, 0)}, nil)

	items := e.UrgentStock()
	require.Len(t, items, 1)
	assert.Equal(t, 0.0, items[0].StockRatePercent)
	assert.Equal(t, 0, items[0].Needed)
}

func TestUrgentStockReport_Empty(t *testing.T) {
	e := newEngine(t, []domain.Product{domain.NewSnack("Full", 100, 10, 10)}, nil)
	assert.Equal(t, []string{"  >> No low-stock items."}, e.UrgentStockReport().Lines)
}

func TestExpiring_Demo(t *testing.T) {
	items := newDemoEngine(t).Expiring()

	require.Len(t, items, 3)
	assert.Equal(t, []string{"Strawberry Sandwich", "Tuna Mayo Onigiri", "Kimchi Stew Box"},
		names(items, func(i domain.ExpiryItem) string { return i.Name }))
	assert.Equal(t, []int{0, 1, 2}, []int{items[0].DaysUntilExpiry, items[1].DaysUntilExpiry, items[2].DaysUntilExpiry})
	assert.Equal(t, 840, items[0].DiscountedPrice)
	assert.Equal(t, 750, items[1].DiscountedPrice)
	assert.Equal(t, 3849, items[2].DiscountedPrice)
}

func TestExpiring_KeepsExpiredAndMissingTiers(t *testing.T) {
	e := newEngine(t, []domain.Product{
		domain.NewFood("Fresh", 1000, 10, 5, day(10)),
		domain.NewFood("Old Milk", 1000, 10, 5, day(-2)),
		domain.NewFood("Yogurt", 999, 10, 5, day(3)),
		domain.NewFood("Yogurt Twin", 999, 10, 5, day(3)),
		domain.NewSnack("Chips", 1000, 10, 5),
	}, nil)

	items := e.Expiring()
	require.Len(t, items, 3)
	assert.Equal(t, "Old Milk", items[0].Name)
	assert.Equal(t, -2, items[0].DaysUntilExpiry)
	assert.Equal(t, 0.0, items[0].DiscountRate)
	assert.Equal(t, 1000, items[0].DiscountedPrice)
	assert.Equal(t, []string{"Yogurt", "Yogurt Twin"}, []string{items[1].Name, items[2].Name})
}

func TestExpiryReport_Empty(t *testing.T) {
	e := newEngine(t, []domain.Product{domain.NewFood("Fresh", 1000, 10, 5, day(10))}, nil)
	assert.Equal(t, []string{"  >> No items near expiry."}, e.ExpiryReport().Lines)
}

func TestBestsellers_TopFive(t *testing.T) {
	var products []domain.Product
	var sales []domain.SaleEntry
	for i, qty := range []int{15, 12, 10, 8, 7, 3, 2} {
		name := string(rune('A' + i))
		products = append(products, domain.NewSnack(name, 100, 50, 40))
		sales = append(sales, domain.SaleEntry{Name: name, Quantity: qty})
	}
	// ledger order shuffled
	sales[0], sales[6] = sales[6], sales[0]
	e := newEngine(t, products, sales)

	top := e.Bestsellers()
	require.Len(t, top, 5)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, names(top, func(b domain.BestsellerEntry) string { return b.Name }))
	assert.Equal(t, 1, top[0].Rank)
	assert.Equal(t, 1500, top[0].Revenue)
}

func TestBestsellers_TiesKeepLedgerOrderAndFlagMissing(t *testing.T) {
	e := newEngine(t,
		[]domain.Product{domain.NewSnack("A", 100, 10, 5), domain.NewSnack("B", 200, 10, 5)},
		[]domain.SaleEntry{{Name: "B", Quantity: 4}, {Name: "Ghost", Quantity: 9}, {Name: "A", Quantity: 4}},
	)

	top := e.Bestsellers()
	require.Len(t, top, 3)
	assert.Equal(t, "Ghost", top[0].Name)
	assert.False(t, top[0].Found)
	assert.Equal(t, []string{"B", "A"}, []string{top[1].Name, top[2].Name})

	lines := e.BestsellersReport().Lines
	assert.Contains(t, lines[0], "'Ghost' not found")
	assert.True(t, strings.HasPrefix(lines[1], "  2. B"))
}

func TestBestsellersReport_Empty(t *testing.T) {
	e := newEngine(t, []domain.Product{domain.NewSnack("A", 100, 10, 5)}, nil)
	assert.Equal(t, []string{"  >> No sales recorded."}, e.BestsellersReport().Lines)
}

func TestSales_Demo(t *testing.T) {
	s := newDemoEngine(t).Sales()

	assert.Equal(t, 115900, s.TotalRevenue)
	assert.Equal(t, 62, s.TotalItemsSold)
	assert.Empty(t, s.Missing)
	require.Len(t, s.Lines, 8)
	assert.Equal(t, "Shrimp Crackers", s.Lines[0].Name)
	assert.Equal(t, "Kimchi Stew Box", s.Lines[7].Name)
}

func TestSales_ExcludesOrphansFromTotals(t *testing.T) {
	e := newEngine(t,
		[]domain.Product{domain.NewSnack("A", 100, 10, 5)},
		[]domain.SaleEntry{{Name: "A", Quantity: 2}, {Name: "Ghost", Quantity: 50}},
	)

	s := e.Sales()
	assert.Equal(t, 200, s.TotalRevenue)
	assert.Equal(t, 2, s.TotalItemsSold)
	assert.Equal(t, []string{"Ghost"}, s.Missing)

	lines := e.SalesReport().Lines
	assert.Contains(t, lines[0], "'Ghost' not found")
	assert.Contains(t, lines[1], "Total revenue today: ₩200 (2 items sold)")
}

func TestManagementAnalysis_Demo(t *testing.T) {
	a := newDemoEngine(t).ManagementAnalysis()

	require.NotNil(t, a.MaxTurnover)
	assert.Equal(t, "Cola 500ml", a.MaxTurnover.Name)
	assert.Equal(t, 6.0, a.MaxTurnover.Value)

	require.NotNil(t, a.MinTurnover)
	assert.Equal(t, "Water 500ml", a.MinTurnover.Name)
	assert.InDelta(t, 7/21.5, a.MinTurnover.Value, 1e-9)

	require.NotNil(t, a.MaxEfficiency)
	assert.Equal(t, "Shrimp Crackers", a.MaxEfficiency.Name)
	assert.Equal(t, 3.0, a.MaxEfficiency.Value)

	assert.Equal(t, []domain.OverstockItem{{Name: "Instant Ramen", SafetyStock: 45}}, a.Overstocked)
	assert.Equal(t, 3, a.ReorderCount)
	assert.Equal(t, 50, a.ReorderUnits)
}

func TestManagementAnalysis_ZeroSoldExcludedFromMinimum(t *testing.T) {
	e := newEngine(t,
		[]domain.Product{domain.NewSnack("Idle", 100, 10, 8), domain.NewSnack("Busy", 100, 10, 8)},
		[]domain.SaleEntry{{Name: "Idle", Quantity: 0}, {Name: "Busy", Quantity: 2}},
	)

	a := e.ManagementAnalysis()
	assert.Equal(t, "Busy", a.MaxTurnover.Name)
	assert.Equal(t, "Busy", a.MinTurnover.Name)
	assert.Equal(t, []string{"Idle"}, names(a.Overstocked, func(o domain.OverstockItem) string { return o.Name }))
}

func TestManagementAnalysis_NoPositiveTurnover(t *testing.T) {
	e := newEngine(t,
		[]domain.Product{domain.NewSnack("Idle", 100, 10, 2)},
		[]domain.SaleEntry{{Name: "Idle", Quantity: 0}},
	)

	a := e.ManagementAnalysis()
	require.NotNil(t, a.MaxTurnover)
	assert.Nil(t, a.MinTurnover)

	lines := e.ManagementReport().Lines
	for _, l := range lines {
		assert.NotContains(t, l, "Lowest turnover")
	}
}

func TestManagementReport_EmptyLedgerSkipsRanking(t *testing.T) {
	e := newEngine(t, []domain.Product{domain.NewSnack("A", 100, 10, 2)}, nil)

	a := e.ManagementAnalysis()
	assert.Nil(t, a.MaxTurnover)
	assert.Nil(t, a.MaxEfficiency)

	lines := e.ManagementReport().Lines
	assert.Equal(t, []string{
		"  [Stock status]",
		"  - Overstocked       : none",
		"  - Reorder suggested : 1 items, 8 units",
	}, lines)
}

func TestOverallStatus_Demo(t *testing.T) {
	s := newDemoEngine(t).OverallStatus()

	assert.Equal(t, domain.OverallStatus{
		ProductCount:   9,
		ProjectedUnits: 63,
		InventoryValue: 87700,
		LowStockCount:  6,
		ExpiringCount:  3,
		UnitsSold:      62,
	}, s)
}

func TestOverallStatus_ProjectionIgnoresOrphans(t *testing.T) {
	e := newEngine(t,
		[]domain.Product{domain.NewSnack("A", 100, 10, 5), domain.NewSnack("B", 100, 10, 7)},
		[]domain.SaleEntry{{Name: "A", Quantity: 8}, {Name: "Ghost", Quantity: 4}},
	)

	s := e.OverallStatus()
	assert.Equal(t, 5+7-8, s.ProjectedUnits)
	assert.Equal(t, -300+700, s.InventoryValue)
	assert.Equal(t, 12, s.UnitsSold)
}

func TestProjectedCatalog_DoesNotMutateInputs(t *testing.T) {
	e := newDemoEngine(t)
	before := e.catalog.Products()

	projected := e.ProjectedCatalog()
	assert.Equal(t, -10, projected[0].SafetyStock)
	assert.Equal(t, before, e.catalog.Products())
}

func TestReportsAreIdempotent(t *testing.T) {
	e := newDemoEngine(t)

	first := e.RunAll()
	second := e.RunAll()
	assert.Equal(t, first, second)
}

func TestRunAll_Order(t *testing.T) {
	reports := newDemoEngine(t).RunAll()

	kinds := make([]Kind, len(reports))
	for i, r := range reports {
		kinds[i] = r.Kind
		assert.Empty(t, r.Error)
	}
	assert.Equal(t, Kinds(), kinds)
}

func TestRunAll_IsolatesPanics(t *testing.T) {
	e := newDemoEngine(t)
	e.now = func() time.Time { panic("clock failure") }

	reports := e.RunAll()
	require.Len(t, reports, 6)
	assert.Equal(t, KindExpiry, reports[1].Kind)
	assert.Equal(t, "clock failure", reports[1].Error)
	assert.Empty(t, reports[0].Error)
	assert.Empty(t, reports[2].Error)
	assert.Equal(t, "clock failure", reports[5].Error)
}

func TestRun_Unknown(t *testing.T) {
	_, err := newDemoEngine(t).Run(KindAll)
	assert.ErrorIs(t, err, ErrUnknownReport)
}

func TestExpiryReport_Lines(t *testing.T) {
	lines := newDemoEngine(t).ExpiryReport().Lines
	require.Len(t, lines, 3)
	assert.Equal(t, "  - Strawberry Sandwich : 0 days left -> 70% off (₩2,800 -> ₩840)", lines[0])
}

func TestReportString_Frames(t *testing.T) {
	r := newDemoEngine(t).OverallStatusReport()
	text := r.String()

	assert.Contains(t, text, "  Overall operating status\n")
	assert.Contains(t, text, "  - Inventory value     : ₩87,700\n")
	assert.True(t, strings.HasSuffix(text, ruleLine+"\n"))
	assert.Contains(t, FormatAll([]Report{r}), "Full report")
}
