// backend-go/internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/andresuchdata/storeops/backend-go/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Archive  ArchiveConfig
	Policy   PolicyConfig
	Data     DataConfig
	Report   ReportConfig
	LogLevel string
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ReportTTLSeconds int
}

type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type PolicyConfig struct {
	StockLowThreshold float64
	ExpiryWarningDays int
	DiscountTiers     string
}

// DataConfig selects where the catalog and sales ledger come from.
type DataConfig struct {
	Source      string // demo, csv or postgres
	CatalogFile string
	SalesFile   string
}

type ReportConfig struct {
	CurrencySymbol string
}

const (
	SourceDemo     = "demo"
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

var (
	once     sync.Once
	instance *Config
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "storeops")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_REPORT_TTL_SECONDS", 60)
	v.SetDefault("ARCHIVE_ENABLED", false)
	v.SetDefault("ARCHIVE_ENDPOINT", "")
	v.SetDefault("ARCHIVE_BUCKET", "store-reports")
	v.SetDefault("ARCHIVE_USE_SSL", true)
	v.SetDefault("POLICY_STOCK_LOW_THRESHOLD", 0.3)
	v.SetDefault("POLICY_EXPIRY_WARNING_DAYS", 3)
	v.SetDefault("POLICY_DISCOUNT_TIERS", "3:0,2:0.3,1:0.5,0:0.7")
	v.SetDefault("DATA_SOURCE", SourceDemo)
	v.SetDefault("DATA_CATALOG_FILE", "./data/catalog.csv")
	v.SetDefault("DATA_SALES_FILE", "./data/sales.csv")
	v.SetDefault("REPORT_CURRENCY_SYMBOL", "₩")
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads the process configuration once from the environment and an
// optional .env file.
func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		v := viper.New()
		setDefaults(v)
		v.AutomaticEnv()

		instance = fromViper(v)
	})

	return instance
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Driver:   v.GetString("DB_DRIVER"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Cache: CacheConfig{
			Enabled:          v.GetBool("CACHE_ENABLED"),
			RedisURL:         v.GetString("REDIS_URL"),
			RedisHost:        v.GetString("REDIS_HOST"),
			RedisPort:        v.GetString("REDIS_PORT"),
			RedisPassword:    v.GetString("REDIS_PASSWORD"),
			RedisDB:          v.GetInt("REDIS_DB"),
			ReportTTLSeconds: v.GetInt("CACHE_REPORT_TTL_SECONDS"),
		},
		Archive: ArchiveConfig{
			Enabled:   v.GetBool("ARCHIVE_ENABLED"),
			Endpoint:  v.GetString("ARCHIVE_ENDPOINT"),
			AccessKey: v.GetString("ARCHIVE_ACCESS_KEY"),
			SecretKey: v.GetString("ARCHIVE_SECRET_KEY"),
			Bucket:    v.GetString("ARCHIVE_BUCKET"),
			UseSSL:    v.GetBool("ARCHIVE_USE_SSL"),
		},
		Policy: PolicyConfig{
			StockLowThreshold: v.GetFloat64("POLICY_STOCK_LOW_THRESHOLD"),
			ExpiryWarningDays: v.GetInt("POLICY_EXPIRY_WARNING_DAYS"),
			DiscountTiers:     v.GetString("POLICY_DISCOUNT_TIERS"),
		},
		Data: DataConfig{
			Source:      strings.ToLower(v.GetString("DATA_SOURCE")),
			CatalogFile: v.GetString("DATA_CATALOG_FILE"),
			SalesFile:   v.GetString("DATA_SALES_FILE"),
		},
		Report: ReportConfig{
			CurrencySymbol: v.GetString("REPORT_CURRENCY_SYMBOL"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}
}

// ReportContext converts the policy settings into the engine's policy
// bundle.
func (p PolicyConfig) ReportContext() (domain.ReportContext, error) {
	tiers, err := domain.ParseDiscountPolicy(p.DiscountTiers)
	if err != nil {
		return domain.ReportContext{}, fmt.Errorf("invalid POLICY_DISCOUNT_TIERS: %w", err)
	}
	return domain.NewReportContext(p.StockLowThreshold, p.ExpiryWarningDays, tiers)
}

// DSN builds a libpq-style connection string, understood by both lib/pq
// and pgx.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}
