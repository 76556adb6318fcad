package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DiscountPolicy maps whole days until expiry to a discount rate.
type DiscountPolicy map[int]float64

// RateFor returns the discount for an exact day count, or 0 when the
// policy has no tier for it.
func (d DiscountPolicy) RateFor(days int) float64 {
	return d[days]
}

func (d DiscountPolicy) Validate() error {
	for days, rate := range d {
		if rate < 0 || rate >= 1 {
			return fmt.Errorf("%w: %d days -> %v", ErrInvalidDiscountRate, days, rate)
		}
	}
	return nil
}

// String renders the tiers as "days:rate" pairs, longest horizon first.
func (d DiscountPolicy) String() string {
	days := make([]int, 0, len(d))
	for k := range d {
		days = append(days, k)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(days)))

	parts := make([]string, len(days))
	for i, k := range days {
		parts[i] = fmt.Sprintf("%d:%s", k, strconv.FormatFloat(d[k], 'f', -1, 64))
	}
	return strings.Join(parts, ",")
}

// ParseDiscountPolicy reads tiers written as "3:0,2:0.3,1:0.5,0:0.7".
func ParseDiscountPolicy(raw string) (DiscountPolicy, error) {
	policy := make(DiscountPolicy)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		daysStr, rateStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("discount tier %q: expected days:rate", part)
		}
		days, err := strconv.Atoi(strings.TrimSpace(daysStr))
		if err != nil {
			return nil, fmt.Errorf("discount tier %q: invalid days: %w", part, err)
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(rateStr), 64)
		if err != nil {
			return nil, fmt.Errorf("discount tier %q: invalid rate: %w", part, err)
		}
		policy[days] = rate
	}

	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return policy, nil
}

// ReportContext is the read-only policy bundle shared by every report.
type ReportContext struct {
	StockLowThreshold float64        `json:"stock_low_threshold"`
	ExpiryWarningDays int            `json:"expiry_warning_days"`
	DiscountPolicy    DiscountPolicy `json:"discount_policy"`
}

// NewReportContext validates the policy and takes a private copy of the
// discount tiers.
func NewReportContext(threshold float64, warningDays int, discounts DiscountPolicy) (ReportContext, error) {
	if threshold <= 0 || threshold >= 1 {
		return ReportContext{}, fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}
	if warningDays < 0 {
		return ReportContext{}, fmt.Errorf("%w: got %d", ErrInvalidWarningDays, warningDays)
	}
	if err := discounts.Validate(); err != nil {
		return ReportContext{}, err
	}

	tiers := make(DiscountPolicy, len(discounts))
	for k, v := range discounts {
		tiers[k] = v
	}

	return ReportContext{
		StockLowThreshold: threshold,
		ExpiryWarningDays: warningDays,
		DiscountPolicy:    tiers,
	}, nil
}
