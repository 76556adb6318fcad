package inventory

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a report.
type Kind string

const (
	KindAll           Kind = "all"
	KindUrgentStock   Kind = "urgent_stock"
	KindExpiry        Kind = "expiry"
	KindBestsellers   Kind = "bestsellers"
	KindSales         Kind = "sales"
	KindManagement    Kind = "management"
	KindOverallStatus Kind = "overall_status"
)

// ErrUnknownReport is returned for a report name or menu number that does
// not map to a report.
var ErrUnknownReport = errors.New("unknown report")

// reportOrder is the fixed order of the all-reports run.
var reportOrder = []Kind{
	KindUrgentStock,
	KindExpiry,
	KindBestsellers,
	KindSales,
	KindManagement,
	KindOverallStatus,
}

var menuKinds = map[int]Kind{
	1: KindAll,
	2: KindUrgentStock,
	3: KindExpiry,
	4: KindBestsellers,
	5: KindSales,
	6: KindManagement,
	7: KindOverallStatus,
}

var kindAliases = map[string]Kind{
	"all":            KindAll,
	"urgent":         KindUrgentStock,
	"urgent_stock":   KindUrgentStock,
	"low_stock":      KindUrgentStock,
	"expiry":         KindExpiry,
	"expiration":     KindExpiry,
	"bestsellers":    KindBestsellers,
	"top":            KindBestsellers,
	"sales":          KindSales,
	"management":     KindManagement,
	"analysis":       KindManagement,
	"overall":        KindOverallStatus,
	"overall_status": KindOverallStatus,
	"status":         KindOverallStatus,
}

// ParseKind resolves a report name (case-insensitive, '-' or '_').
func ParseKind(name string) (Kind, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if k, ok := kindAliases[key]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownReport, name)
}

// KindForMenu maps the interactive menu numbers 1-7 to reports.
func KindForMenu(choice int) (Kind, bool) {
	k, ok := menuKinds[choice]
	return k, ok
}

// Kinds returns the single-report kinds in all-reports order.
func Kinds() []Kind {
	return append([]Kind(nil), reportOrder...)
}
