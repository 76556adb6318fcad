package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStockLow(t *testing.T) {
	tests := []struct {
		name      string
		safety    int
		threshold float64
		want      bool
	}{
		{"below threshold", 29, 0.3, true},
		{"equal to threshold", 30, 0.3, false},
		{"above threshold", 31, 0.3, false},
		{"empty shelf", 0, 0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewSnack("Test Snack", 1000, 100, tt.safety)
			assert.Equal(t, tt.want, p.IsStockLow(tt.threshold))
		})
	}
}

func TestStockRatio_ZeroStock(t *testing.T) {
	p := NewSnack("Ghost", 1000, 0, 5)

	_, err := p.StockRatio()
	require.ErrorIs(t, err, ErrZeroStock)
	assert.True(t, p.IsStockLow(0.3))
}

func TestInventoryTurnoverRate(t *testing.T) {
	p := NewSnack("Test Snack", 1000, 100, 50)

	assert.Equal(t, 0.5, p.InventoryTurnoverRate(20))
	assert.Equal(t, 0.0, p.InventoryTurnoverRate(0))
	assert.Equal(t, 0.0, NewSnack("Empty", 1000, 100, 0).InventoryTurnoverRate(0))
}

func TestInventoryTurnoverRate_Oversold(t *testing.T) {
	// average inventory (2 + -2) / 2 = 0
	assert.True(t, math.IsInf(NewSnack("A", 1, 10, 2).InventoryTurnoverRate(4), 1))
	// average inventory (5 + -10) / 2 = -2.5
	assert.Equal(t, -6.0, NewSnack("B", 1, 30, 5).InventoryTurnoverRate(15))
}

func TestSalesEfficiency(t *testing.T) {
	assert.Equal(t, 0.2, NewSnack("A", 1000, 100, 50).SalesEfficiency(10))
	assert.Equal(t, 0.25, NewSnack("B", 1000, 100, 20).SalesEfficiency(5))
	assert.Equal(t, 3.0, NewSnack("C", 1000, 100, 5).SalesEfficiency(15))

	for _, sold := range []int{0, 1, 10} {
		assert.True(t, math.IsInf(NewSnack("D", 1000, 100, 0).SalesEfficiency(sold), 1))
	}
}

func TestMetricsForSampleFood(t *testing.T) {
	p := NewFood("Test Food", 2000, 50, 20, time.Now())

	assert.False(t, p.IsStockLow(0.3))
	assert.InDelta(t, 0.2857, p.InventoryTurnoverRate(5), 0.0001)
	assert.Equal(t, 0.25, p.SalesEfficiency(5))
}

func TestWithSafetyStock_DoesNotMutate(t *testing.T) {
	p := NewSnack("A", 100, 10, 5)
	projected := p.WithSafetyStock(-3)

	assert.Equal(t, 5, p.SafetyStock)
	assert.Equal(t, -3, projected.SafetyStock)
}

func TestDaysUntilExpiry(t *testing.T) {
	today := time.Date(2026, 10, 17, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		expires time.Time
		want    int
	}{
		{time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC), -2},
		{time.Date(2026, 11, 16, 0, 0, 0, 0, time.UTC), 30},
	}
	for _, tt := range tests {
		p := NewFood("Bread", 100, 10, 5, tt.expires)
		assert.Equal(t, tt.want, p.DaysUntilExpiry(today), tt.expires.String())
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, NewHousehold("Soap", 0, 10, 0).Validate())
	assert.ErrorIs(t, NewSnack("", 100, 10, 1).Validate(), ErrInvalidProduct)
	assert.ErrorIs(t, NewSnack("A", -1, 10, 1).Validate(), ErrInvalidProduct)
	assert.ErrorIs(t, NewSnack("A", 1, 10, -1).Validate(), ErrInvalidProduct)
	assert.ErrorIs(t, NewFood("A", 1, 10, 1, time.Time{}).Validate(), ErrInvalidProduct)
	assert.ErrorIs(t, Product{Name: "A", Stock: 1}.Validate(), ErrUnknownCategory)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Beverage ")
	require.NoError(t, err)
	assert.Equal(t, CategoryBeverage, c)
	assert.Equal(t, "beverage", c.String())

	_, err = ParseCategory("toys")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
