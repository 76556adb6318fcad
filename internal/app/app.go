// Package app wires configuration into a ReportService for the binaries.
package app

import (
	"context"
	"fmt"

	"github.com/andresuchdata/storeops/backend-go/internal/cache"
	"github.com/andresuchdata/storeops/backend-go/internal/config"
	"github.com/andresuchdata/storeops/backend-go/internal/repository"
	"github.com/andresuchdata/storeops/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/storeops/backend-go/internal/service"
	"github.com/andresuchdata/storeops/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

// App holds the report service and the resources it owns.
type App struct {
	Reports *service.ReportService
	db      *postgres.DB
}

// Options tweak what Build connects to.
type Options struct {
	// NeedDatabase forces a database connection even when the data source
	// is not postgres, e.g. for commit and seed.
	NeedDatabase bool
}

// Build connects the configured data source, cache and archive. Cache
// failures degrade to no caching; database and archive failures are fatal
// when those are requested.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	policy, err := cfg.Policy.ReportContext()
	if err != nil {
		return nil, err
	}

	a := &App{}
	var repo repository.InventoryRepository
	if opts.NeedDatabase || cfg.Data.Source == config.SourcePostgres {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		a.db = db
		repo = postgres.NewInventoryRepository(db)
	}

	source, err := service.SourceFor(cfg.Data, repo)
	if err != nil {
		a.Close()
		return nil, err
	}

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("report cache unavailable, continuing without cache")
		reportCache = cache.NewNoopReportCache()
	}

	svcOpts := []service.ReportServiceOption{
		service.WithReportCache(reportCache),
		service.WithCurrency(cfg.Report.CurrencySymbol),
	}
	if repo != nil {
		svcOpts = append(svcOpts, service.WithRepository(repo))
	}
	if cfg.Archive.Enabled {
		archive, err := storage.NewMinioClient(cfg.Archive)
		if err != nil {
			a.Close()
			return nil, err
		}
		svcOpts = append(svcOpts, service.WithArchive(archive))
	}

	a.Reports = service.NewReportService(source, policy, svcOpts...)
	return a, nil
}

// Close releases the database connection, if any.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close database")
		}
	}
}
