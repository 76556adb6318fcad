// backend-go/internal/repository/postgres/inventory_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andresuchdata/storeops/backend-go/internal/domain"
	"github.com/andresuchdata/storeops/backend-go/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

// productRow mirrors the products table.
type productRow struct {
	Name           string        `db:"name"`
	Category       string        `db:"category"`
	Price          int           `db:"price"`
	Stock          int           `db:"stock"`
	SafetyStock    int           `db:"safety_stock"`
	ExpirationDate sql.NullTime  `db:"expiration_date"`
	VolumeML       sql.NullInt64 `db:"volume_ml"`
}

func (r productRow) toDomain() (domain.Product, error) {
	category, err := domain.ParseCategory(r.Category)
	if err != nil {
		return domain.Product{}, err
	}

	p := domain.Product{
		Name:        r.Name,
		Category:    category,
		Price:       r.Price,
		Stock:       r.Stock,
		SafetyStock: r.SafetyStock,
	}
	if r.ExpirationDate.Valid {
		p.ExpirationDate = r.ExpirationDate.Time
	}
	if r.VolumeML.Valid {
		p.VolumeML = int(r.VolumeML.Int64)
	}
	return p, nil
}

func fromDomain(p domain.Product) productRow {
	row := productRow{
		Name:        p.Name,
		Category:    p.Category.String(),
		Price:       p.Price,
		Stock:       p.Stock,
		SafetyStock: p.SafetyStock,
	}
	if !p.ExpirationDate.IsZero() {
		row.ExpirationDate = sql.NullTime{Time: p.ExpirationDate, Valid: true}
	}
	if p.VolumeML > 0 {
		row.VolumeML = sql.NullInt64{Int64: int64(p.VolumeML), Valid: true}
	}
	return row
}

// ListProducts overlays the opening snapshot of a committed day so the
// day's sales are not subtracted twice.
func (r *inventoryRepository) ListProducts(ctx context.Context, day time.Time) ([]domain.Product, error) {
	query := `
		SELECT p.name, p.category, p.price, p.stock,
			COALESCE(l.opening, p.safety_stock) AS safety_stock,
			p.expiration_date, p.volume_ml
		FROM products p
		LEFT JOIN stock_commit_lines l
			ON l.product_name = p.name AND l.commit_date = $1::date
		ORDER BY p.position
	`

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query, day.Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", row.Name, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *inventoryRepository) UpsertProducts(ctx context.Context, products []domain.Product) error {
	query := `
		INSERT INTO products (name, category, price, stock, safety_stock, expiration_date, volume_ml, updated_at)
		VALUES (:name, :category, :price, :stock, :safety_stock, :expiration_date, :volume_ml, NOW())
		ON CONFLICT (name)
		DO UPDATE SET
			category = EXCLUDED.category,
			price = EXCLUDED.price,
			stock = EXCLUDED.stock,
			safety_stock = EXCLUDED.safety_stock,
			expiration_date = EXCLUDED.expiration_date,
			volume_ml = EXCLUDED.volume_ml,
			updated_at = NOW()
	`

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, p := range products {
			if _, err := tx.NamedExecContext(ctx, query, fromDomain(p)); err != nil {
				return fmt.Errorf("failed to upsert product %q: %w", p.Name, err)
			}
		}
		return nil
	})
}

func (r *inventoryRepository) ListSales(ctx context.Context, day time.Time) ([]domain.SaleEntry, error) {
	query := `
		SELECT product_name AS name, quantity
		FROM daily_sales
		WHERE sale_date = $1::date
		ORDER BY position
	`

	var entries []domain.SaleEntry
	if err := r.db.SelectContext(ctx, &entries, query, day.Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("error listing sales: %w", err)
	}
	return entries, nil
}

func (r *inventoryRepository) RecordSales(ctx context.Context, day time.Time, entries []domain.SaleEntry) error {
	query := `
		INSERT INTO daily_sales (sale_date, product_name, quantity)
		VALUES ($1::date, $2, $3)
		ON CONFLICT (sale_date, product_name)
		DO UPDATE SET quantity = daily_sales.quantity + EXCLUDED.quantity
	`

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, e := range entries {
			if _, err := stmt.ExecContext(ctx, day.Format("2006-01-02"), e.Name, e.Quantity); err != nil {
				return fmt.Errorf("failed to record sale of %q: %w", e.Name, err)
			}
		}
		return nil
	})
}

// CommitProjection writes post-sale on-hand quantities once per day.
// Oversold products are stored as 0 and reported in the result.
func (r *inventoryRepository) CommitProjection(ctx context.Context, day time.Time, projected []domain.Product) (repository.CommitResult, error) {
	result := repository.CommitResult{Day: day, Oversold: make([]string, 0)}
	dayStr := day.Format("2006-01-02")

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM stock_commits WHERE commit_date = $1::date)`, dayStr); err != nil {
			return fmt.Errorf("failed to check commit log: %w", err)
		}
		if exists {
			return fmt.Errorf("%s: %w", dayStr, repository.ErrAlreadyCommitted)
		}

		for _, p := range projected {
			onHand := p.SafetyStock
			if onHand < 0 {
				log.Warn().Str("product", p.Name).Int("shortfall", -onHand).Msg("oversold product committed with zero on hand")
				result.Oversold = append(result.Oversold, p.Name)
				onHand = 0
			}

			if _, err := tx.ExecContext(ctx, `
				INSERT INTO stock_commit_lines (commit_date, product_name, opening)
				SELECT $1::date, name, safety_stock FROM products WHERE name = $2
			`, dayStr, p.Name); err != nil {
				return fmt.Errorf("failed to snapshot %q: %w", p.Name, err)
			}

			res, err := tx.ExecContext(ctx, `UPDATE products SET safety_stock = $1, updated_at = NOW() WHERE name = $2`, onHand, p.Name)
			if err != nil {
				return fmt.Errorf("failed to update %q: %w", p.Name, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				result.Updated++
			}
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO stock_commits (commit_date, updated) VALUES ($1::date, $2)`, dayStr, result.Updated); err != nil {
			return fmt.Errorf("failed to log commit: %w", err)
		}
		return nil
	})
	if err != nil {
		return repository.CommitResult{}, err
	}

	return result, nil
}
