package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andresuchdata/storeops/backend-go/internal/cache"
	"github.com/andresuchdata/storeops/backend-go/internal/domain"
	"github.com/andresuchdata/storeops/backend-go/internal/inventory"
	"github.com/andresuchdata/storeops/backend-go/internal/repository"
	"github.com/andresuchdata/storeops/backend-go/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrArchiveDisabled = errors.New("report archive is not configured")
	ErrNoRepository    = errors.New("no inventory repository configured")
	ErrInvalidArchive  = errors.New("not an archived report key")
)

const archivePrefix = "reports/"

type ReportService struct {
	source   Source
	cache    cache.ReportCache
	archive  storage.ObjectStorage
	repo     repository.InventoryRepository
	policy   domain.ReportContext
	currency string
	now      func() time.Time
}

type ReportServiceOption func(*ReportService)

func WithReportCache(c cache.ReportCache) ReportServiceOption {
	return func(s *ReportService) {
		if c != nil {
			s.cache = c
		}
	}
}

func WithArchive(store storage.ObjectStorage) ReportServiceOption {
	return func(s *ReportService) { s.archive = store }
}

// WithRepository enables Commit and Seed.
func WithRepository(repo repository.InventoryRepository) ReportServiceOption {
	return func(s *ReportService) { s.repo = repo }
}

func WithCurrency(symbol string) ReportServiceOption {
	return func(s *ReportService) { s.currency = symbol }
}

func WithNow(now func() time.Time) ReportServiceOption {
	return func(s *ReportService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewReportService(source Source, policy domain.ReportContext, opts ...ReportServiceOption) *ReportService {
	s := &ReportService{
		source: source,
		cache:  cache.NewNoopReportCache(),
		policy: policy,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the report policy in use.
func (s *ReportService) Policy() domain.ReportContext {
	return s.policy
}

func (s *ReportService) engine(ctx context.Context) (*inventory.Engine, string, error) {
	today := s.now()
	catalog, ledger, err := s.source.Load(ctx, today)
	if err != nil {
		return nil, "", fmt.Errorf("load inventory: %w", err)
	}

	fingerprint, err := cache.Fingerprint(catalog.Products(), ledger.Entries(), s.policy, today)
	if err != nil {
		log.Warn().Err(err).Msg("reports: fingerprint failed, cache bypassed")
		fingerprint = ""
	}

	opts := []inventory.Option{inventory.WithClock(func() time.Time { return today })}
	if s.currency != "" {
		opts = append(opts, inventory.WithCurrencySymbol(s.currency))
	}
	return inventory.NewEngine(catalog, ledger, s.policy, opts...), fingerprint, nil
}

// Generate builds the reports for kind. KindAll yields every report in
// the fixed order; any other kind yields exactly one report.
func (s *ReportService) Generate(ctx context.Context, kind inventory.Kind) ([]inventory.Report, error) {
	kind, err := inventory.ParseKind(string(kind))
	if err != nil {
		return nil, err
	}

	engine, fingerprint, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}

	if fingerprint != "" {
		if reports, ok, err := s.cache.GetReports(ctx, kind, fingerprint); err == nil && ok {
			return reports, nil
		} else if err != nil {
			log.Warn().Err(err).Str("kind", string(kind)).Msg("reports: cache get failed")
		}
	}

	var reports []inventory.Report
	if kind == inventory.KindAll {
		reports = engine.RunAll()
	} else {
		report, err := engine.Run(kind)
		if err != nil {
			return nil, err
		}
		reports = []inventory.Report{report}
	}

	if fingerprint != "" {
		if err := s.cache.SetReports(ctx, kind, fingerprint, reports); err != nil {
			log.Warn().Err(err).Str("kind", string(kind)).Msg("reports: cache set failed")
		}
	}
	return reports, nil
}

// Render returns the printable text for kind.
func (s *ReportService) Render(ctx context.Context, kind inventory.Kind) (string, error) {
	kind, err := inventory.ParseKind(string(kind))
	if err != nil {
		return "", err
	}

	reports, err := s.Generate(ctx, kind)
	if err != nil {
		return "", err
	}
	if kind == inventory.KindAll {
		return inventory.FormatAll(reports), nil
	}
	return reports[0].String(), nil
}

// Archive renders kind and uploads the text to object storage. The key is
// returned.
func (s *ReportService) Archive(ctx context.Context, kind inventory.Kind) (string, error) {
	if s.archive == nil {
		return "", ErrArchiveDisabled
	}

	kind, err := inventory.ParseKind(string(kind))
	if err != nil {
		return "", err
	}

	text, err := s.Render(ctx, kind)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s%s/%s-%s.txt", archivePrefix, s.now().Format("2006-01-02"), kind, uuid.NewString())
	if err := s.archive.UploadObject(ctx, key, []byte(text)); err != nil {
		return "", err
	}

	log.Info().Str("key", key).Str("kind", string(kind)).Msg("report archived")
	return key, nil
}

// ListArchive lists archived reports, for one day when day is set.
func (s *ReportService) ListArchive(ctx context.Context, day time.Time) ([]storage.ObjectInfo, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}

	prefix := archivePrefix
	if !day.IsZero() {
		prefix += day.Format("2006-01-02") + "/"
	}

	objects, err := s.archive.ListObjects(ctx, prefix)
	if err != nil {
		return nil, err
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

// FetchArchive downloads an archived report to destPath.
func (s *ReportService) FetchArchive(ctx context.Context, key, destPath string) error {
	if s.archive == nil {
		return ErrArchiveDisabled
	}
	if !strings.HasPrefix(key, archivePrefix) || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidArchive, key)
	}

	return s.archive.DownloadObject(ctx, key, destPath)
}

// Commit writes today's projected on-hand quantities to the repository
// and drops cached reports.
func (s *ReportService) Commit(ctx context.Context) (repository.CommitResult, error) {
	if s.repo == nil {
		return repository.CommitResult{}, ErrNoRepository
	}

	engine, _, err := s.engine(ctx)
	if err != nil {
		return repository.CommitResult{}, err
	}

	result, err := s.repo.CommitProjection(ctx, s.now(), engine.ProjectedCatalog())
	if err != nil {
		return repository.CommitResult{}, err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("reports: cache invalidate failed")
	}
	return result, nil
}

// Seed copies the source's catalog and today's sales into the repository.
func (s *ReportService) Seed(ctx context.Context) error {
	if s.repo == nil {
		return ErrNoRepository
	}

	today := s.now()
	catalog, ledger, err := s.source.Load(ctx, today)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}

	if err := s.repo.UpsertProducts(ctx, catalog.Products()); err != nil {
		return err
	}
	if err := s.repo.RecordSales(ctx, today, ledger.Entries()); err != nil {
		return err
	}

	log.Info().Int("products", catalog.Len()).Int("sales", ledger.Len()).Msg("inventory seeded")
	return s.cache.InvalidateAll(ctx)
}
