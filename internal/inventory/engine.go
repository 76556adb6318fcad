// Package inventory turns a product catalog, a same-day sales ledger and a
// report policy into the store's analytics reports.
//
// The engine never mutates its inputs, so one Engine may serve any number
// of concurrent readers.
package inventory

import (
	"time"

	"github.com/andresuchdata/storeops/backend-go/internal/domain"
)

const (
	defaultCurrencySymbol = "₩"
	bestsellerLimit       = 5
	overstockRatio        = 0.5
)

// Engine computes report datasets and renders them as text lines.
type Engine struct {
	catalog  *domain.Catalog
	ledger   *domain.SalesLedger
	policy   domain.ReportContext
	now      func() time.Time
	currency string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock fixes the notion of "today" used by the expiry calculations.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithCurrencySymbol sets the symbol printed before amounts.
func WithCurrencySymbol(symbol string) Option {
	return func(e *Engine) {
		e.currency = symbol
	}
}

// NewEngine binds a catalog, ledger and policy. A nil catalog or ledger is
// treated as empty.
func NewEngine(catalog *domain.Catalog, ledger *domain.SalesLedger, policy domain.ReportContext, opts ...Option) *Engine {
	if catalog == nil {
		catalog, _ = domain.NewCatalog()
	}
	if ledger == nil {
		ledger, _ = domain.NewSalesLedger()
	}

	e := &Engine{
		catalog:  catalog,
		ledger:   ledger,
		policy:   policy,
		now:      time.Now,
		currency: defaultCurrencySymbol,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the report context the engine was built with.
func (e *Engine) Policy() domain.ReportContext {
	return e.policy
}

func (e *Engine) today() time.Time {
	return e.now()
}

// soldOf returns the ledger quantity for a product, 0 when unsold.
func (e *Engine) soldOf(name string) int {
	q, _ := e.ledger.Quantity(name)
	return q
}

func (e *Engine) lowStockProducts(products []domain.Product) []domain.Product {
	var low []domain.Product
	for _, p := range products {
		if p.IsStockLow(e.policy.StockLowThreshold) {
			low = append(low, p)
		}
	}
	return low
}
