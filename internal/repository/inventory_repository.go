// backend-go/internal/repository/inventory_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/andresuchdata/storeops/backend-go/internal/domain"
)

// ErrAlreadyCommitted is returned when a day's sales were already applied
// to the stored on-hand quantities.
var ErrAlreadyCommitted = errors.New("sales for this day were already committed")

// InventoryRepository persists the catalog and daily sales ledgers.
type InventoryRepository interface {
	// ListProducts returns the catalog with on-hand quantities as they
	// stood at the start of day, before any commit made for that day.
	ListProducts(ctx context.Context, day time.Time) ([]domain.Product, error)
	UpsertProducts(ctx context.Context, products []domain.Product) error
	ListSales(ctx context.Context, day time.Time) ([]domain.SaleEntry, error)
	RecordSales(ctx context.Context, day time.Time, entries []domain.SaleEntry) error
	// CommitProjection stores post-sale on-hand quantities for a day and
	// keeps the opening quantities so the day's reports stay stable.
	CommitProjection(ctx context.Context, day time.Time, projected []domain.Product) (CommitResult, error)
}

// CommitResult describes what a projection commit changed.
type CommitResult struct {
	Day      time.Time `json:"day"`
	Updated  int       `json:"updated"`
	Oversold []string  `json:"oversold"`
}
