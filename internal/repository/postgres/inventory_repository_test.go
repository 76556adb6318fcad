package postgres

import (
	"testing"
	"time"

	"github.com/andresuchdata/storeops/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRowRoundTrip(t *testing.T) {
	products := []domain.Product{
		domain.NewFood("Kimchi Stew Box", 5500, 20, 3, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)),
		domain.NewBeverage("Cola 500ml", 1500, 25, 8, 500),
		domain.NewHousehold("Wet Wipes", 2000, 30, 10),
	}

	for _, p := range products {
		row := fromDomain(p)
		got, err := row.toDomain()
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestFromDomain_NullableColumns(t *testing.T) {
	row := fromDomain(domain.NewSnack("Choco Pie", 3000, 20, 15))

	assert.Equal(t, "snack", row.Category)
	assert.False(t, row.ExpirationDate.Valid)
	assert.False(t, row.VolumeML.Valid)
}

func TestProductRow_UnknownCategory(t *testing.T) {
	_, err := productRow{Name: "X", Category: "toys"}.toDomain()
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestDriverName(t *testing.T) {
	for in, want := range map[string]string{"": "postgres", "postgres": "postgres", "pq": "postgres", "pgx": "pgx"} {
		got, err := driverName(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := driverName("mysql")
	assert.Error(t, err)
}
