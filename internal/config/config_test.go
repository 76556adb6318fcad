package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, SourceDemo, cfg.Data.Source)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "₩", cfg.Report.CurrencySymbol)

	policy, err := cfg.Policy.ReportContext()
	require.NoError(t, err)
	assert.Equal(t, 0.3, policy.StockLowThreshold)
	assert.Equal(t, 3, policy.ExpiryWarningDays)
	assert.Equal(t, 0.7, policy.DiscountPolicy.RateFor(0))
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("POLICY_STOCK_LOW_THRESHOLD", "0.25")
	t.Setenv("POLICY_DISCOUNT_TIERS", "1:0.1")
	t.Setenv("DATA_SOURCE", "CSV")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	cfg := fromViper(v)

	assert.Equal(t, SourceCSV, cfg.Data.Source)
	policy, err := cfg.Policy.ReportContext()
	require.NoError(t, err)
	assert.Equal(t, 0.25, policy.StockLowThreshold)
	assert.Equal(t, 0.1, policy.DiscountPolicy.RateFor(1))
	assert.Equal(t, 0.0, policy.DiscountPolicy.RateFor(0))
}

func TestInvalidPolicy(t *testing.T) {
	_, err := PolicyConfig{StockLowThreshold: 0.3, DiscountTiers: "oops"}.ReportContext()
	assert.Error(t, err)

	_, err = PolicyConfig{StockLowThreshold: 1.5, DiscountTiers: ""}.ReportContext()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "store", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=store sslmode=disable", d.DSN())
}
