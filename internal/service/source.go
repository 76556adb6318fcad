package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/storeops/backend-go/internal/config"
	"github.com/andresuchdata/storeops/backend-go/internal/domain"
	"github.com/andresuchdata/storeops/backend-go/internal/loader"
	"github.com/andresuchdata/storeops/backend-go/internal/repository"
	"golang.org/x/sync/errgroup"
)

// Source yields the catalog and the sales ledger for a given day.
type Source interface {
	Load(ctx context.Context, day time.Time) (*domain.Catalog, *domain.SalesLedger, error)
}

type demoSource struct{}

// NewDemoSource serves the built-in sample store.
func NewDemoSource() Source {
	return demoSource{}
}

func (demoSource) Load(ctx context.Context, day time.Time) (*domain.Catalog, *domain.SalesLedger, error) {
	return loader.Demo(day)
}

type csvSource struct {
	catalogFile string
	salesFile   string
}

func NewCSVSource(catalogFile, salesFile string) Source {
	return &csvSource{catalogFile: catalogFile, salesFile: salesFile}
}

func (s *csvSource) Load(ctx context.Context, day time.Time) (*domain.Catalog, *domain.SalesLedger, error) {
	var (
		catalog *domain.Catalog
		ledger  *domain.SalesLedger
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = loader.LoadCatalogFile(s.catalogFile)
		return err
	})
	g.Go(func() error {
		var err error
		ledger, err = loader.LoadLedgerFile(s.salesFile)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return catalog, ledger, nil
}

type repositorySource struct {
	repo repository.InventoryRepository
}

func NewRepositorySource(repo repository.InventoryRepository) Source {
	return &repositorySource{repo: repo}
}

func (s *repositorySource) Load(ctx context.Context, day time.Time) (*domain.Catalog, *domain.SalesLedger, error) {
	var (
		products []domain.Product
		entries  []domain.SaleEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.repo.ListProducts(gctx, day)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.repo.ListSales(gctx, day)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	catalog, err := domain.NewCatalog(products...)
	if err != nil {
		return nil, nil, fmt.Errorf("stored catalog: %w", err)
	}
	ledger, err := domain.NewSalesLedger(entries...)
	if err != nil {
		return nil, nil, fmt.Errorf("stored sales: %w", err)
	}
	return catalog, ledger, nil
}

// SourceFor picks the source named by DATA_SOURCE. The repository is only
// required for the postgres source.
func SourceFor(cfg config.DataConfig, repo repository.InventoryRepository) (Source, error) {
	switch cfg.Source {
	case "", config.SourceDemo:
		return NewDemoSource(), nil
	case config.SourceCSV:
		if cfg.CatalogFile == "" || cfg.SalesFile == "" {
			return nil, fmt.Errorf("csv source needs DATA_CATALOG_FILE and DATA_SALES_FILE")
		}
		return NewCSVSource(cfg.CatalogFile, cfg.SalesFile), nil
	case config.SourcePostgres:
		if repo == nil {
			return nil, fmt.Errorf("postgres source needs a database connection")
		}
		return NewRepositorySource(repo), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Source)
	}
}
