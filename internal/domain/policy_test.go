package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDiscountPolicy(t *testing.T) {
	p, err := ParseDiscountPolicy("3:0, 2:0.3,1:0.5,0:0.7")
	require.NoError(t, err)

	assert.Equal(t, 0.7, p.RateFor(0))
	assert.Equal(t, 0.3, p.RateFor(2))
	assert.Equal(t, 0.0, p.RateFor(3))
	assert.Equal(t, 0.0, p.RateFor(-1))
	assert.Equal(t, "3:0,2:0.3,1:0.5,0:0.7", p.String())
}

func TestParseDiscountPolicy_Invalid(t *testing.T) {
	for _, raw := range []string{"3", "x:0.1", "1:abc"} {
		_, err := ParseDiscountPolicy(raw)
		assert.Error(t, err, raw)
	}

	_, err := ParseDiscountPolicy("1:1.0")
	assert.ErrorIs(t, err, ErrInvalidDiscountRate)
}

func TestNewReportContext(t *testing.T) {
	tiers := DiscountPolicy{0: 0.5}
	ctx, err := NewReportContext(0.3, 3, tiers)
	require.NoError(t, err)

	tiers[0] = 0.9
	assert.Equal(t, 0.5, ctx.DiscountPolicy.RateFor(0))

	_, err = NewReportContext(0, 3, nil)
	assert.ErrorIs(t, err, ErrInvalidThreshold)
	_, err = NewReportContext(1, 3, nil)
	assert.ErrorIs(t, err, ErrInvalidThreshold)
	_, err = NewReportContext(0.3, -1, nil)
	assert.ErrorIs(t, err, ErrInvalidWarningDays)
	_, err = NewReportContext(0.3, 1, DiscountPolicy{1: -0.1})
	assert.ErrorIs(t, err, ErrInvalidDiscountRate)
}
