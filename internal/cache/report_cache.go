package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/andresuchdata/storeops/backend-go/internal/config"
	"github.com/andresuchdata/storeops/backend-go/internal/domain"
	"github.com/andresuchdata/storeops/backend-go/internal/inventory"
	"github.com/redis/go-redis/v9"
)

const (
	reportKeyPrefix     = "inventory:reports"
	reportScanBatchSize = 100
	reportClientName    = "storeops-reports"

	// used when CACHE_REPORT_TTL_SECONDS is not positive
	defaultReportTTL = 5 * time.Minute
)

// ReportCache stores rendered reports keyed by report kind and a
// fingerprint of the inputs they were computed from.
type ReportCache interface {
	GetReports(ctx context.Context, kind inventory.Kind, fingerprint string) ([]inventory.Report, bool, error)
	SetReports(ctx context.Context, kind inventory.Kind, fingerprint string, reports []inventory.Report) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	opts, err := reportRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisReportCache{
		client: client,
		ttl:    reportTTL(cfg),
	}, nil
}

// reportRedisOptions prefers REDIS_URL and falls back to host/port.
func reportRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	var opts *redis.Options
	if cfg.RedisURL != "" {
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		opts = parsed
	} else {
		host, port := cfg.RedisHost, cfg.RedisPort
		if host == "" {
			host = "127.0.0.1"
		}
		if port == "" {
			port = "6379"
		}
		opts = &redis.Options{
			Addr:     net.JoinHostPort(host, port),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}
	}

	opts.ClientName = reportClientName
	return opts, nil
}

func reportTTL(cfg config.CacheConfig) time.Duration {
	if cfg.ReportTTLSeconds <= 0 {
		return defaultReportTTL
	}
	return time.Duration(cfg.ReportTTLSeconds) * time.Second
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetReports(ctx context.Context, kind inventory.Kind, fingerprint string) ([]inventory.Report, bool, error) {
	payload, err := c.client.Get(ctx, buildReportKey(kind, fingerprint)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var reports []inventory.Report
	if err := json.Unmarshal(payload, &reports); err != nil {
		return nil, false, fmt.Errorf("decode report cache: %w", err)
	}

	return reports, true, nil
}

func (c *redisReportCache) SetReports(ctx context.Context, kind inventory.Kind, fingerprint string, reports []inventory.Report) error {
	payload, err := json.Marshal(reports)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}

	if err := c.client.Set(ctx, buildReportKey(kind, fingerprint), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// InvalidateAll unlinks every cached report in batches.
func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, reportKeyPrefix+":*", reportScanBatchSize).Iterator()

	batch := make([]string, 0, reportScanBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis unlink failed: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == reportScanBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}
	return flush()
}

func (n *noopReportCache) GetReports(ctx context.Context, kind inventory.Kind, fingerprint string) ([]inventory.Report, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetReports(ctx context.Context, kind inventory.Kind, fingerprint string, reports []inventory.Report) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildReportKey(kind inventory.Kind, fingerprint string) string {
	return fmt.Sprintf("%s:%s:%s", reportKeyPrefix, kind, fingerprint)
}

// Fingerprint hashes everything a report depends on: the catalog, the
// ledger, the policy and the calendar day.
func Fingerprint(products []domain.Product, sales []domain.SaleEntry, policy domain.ReportContext, today time.Time) (string, error) {
	raw, err := json.Marshal(struct {
		Day      string               `json:"day"`
		Products []domain.Product     `json:"products"`
		Sales    []domain.SaleEntry   `json:"sales"`
		Policy   domain.ReportContext `json:"policy"`
	}{
		Day:      today.Format("2006-01-02"),
		Products: products,
		Sales:    sales,
		Policy:   policy,
	})
	if err != nil {
		return "", fmt.Errorf("fingerprint report inputs: %w", err)
	}

	sum := sha1.Sum(raw)
	return hex.EncodeToString(sum[:]), nil
}
