package inventory

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	ruleLine   = "+--------------------------------------------------+"
	bannerLine = "+==================================================+"
)

// Report is one rendered report: a title, its text lines and the dataset
// the lines were rendered from.
type Report struct {
	Kind  Kind     `json:"kind"`
	Title string   `json:"title"`
	Lines []string `json:"lines"`
	Data  any      `json:"data,omitempty"`
	Error string   `json:"error,omitempty"`
}

// String frames the report between a title header and a closing rule.
func (r Report) String() string {
	var b strings.Builder
	b.WriteString("\n" + ruleLine + "\n")
	b.WriteString("  " + r.Title + "\n")
	b.WriteString(ruleLine + "\n")
	for _, line := range r.Lines {
		b.WriteString(line + "\n")
	}
	b.WriteString(ruleLine + "\n")
	return b.String()
}

// FormatAll prints the overall banner followed by each report.
func FormatAll(reports []Report) string {
	var b strings.Builder
	b.WriteString("\n" + bannerLine + "\n")
	b.WriteString("  Full report\n")
	b.WriteString(bannerLine + "\n")
	for _, r := range reports {
		b.WriteString(r.String())
	}
	return b.String()
}

// Run builds a single report. KindAll is not accepted here; use RunAll.
func (e *Engine) Run(kind Kind) (Report, error) {
	switch kind {
	case KindUrgentStock:
		return e.UrgentStockReport(), nil
	case KindExpiry:
		return e.ExpiryReport(), nil
	case KindBestsellers:
		return e.BestsellersReport(), nil
	case KindSales:
		return e.SalesReport(), nil
	case KindManagement:
		return e.ManagementReport(), nil
	case KindOverallStatus:
		return e.OverallStatusReport(), nil
	default:
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownReport, kind)
	}
}

// RunAll builds every report in the fixed order. A report that panics is
// replaced by an error report and the remaining reports still run.
func (e *Engine) RunAll() []Report {
	reports := make([]Report, 0, len(reportOrder))
	for _, kind := range reportOrder {
		reports = append(reports, e.runIsolated(kind))
	}
	return reports
}

func (e *Engine) runIsolated(kind Kind) (report Report) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("report", string(kind)).Interface("panic", r).Msg("report generation failed")
			report = Report{
				Kind:  kind,
				Title: e.title(kind),
				Lines: []string{"  >> Report could not be generated."},
				Error: fmt.Sprint(r),
			}
		}
	}()

	report, err := e.Run(kind)
	if err != nil {
		return Report{Kind: kind, Title: e.title(kind), Lines: []string{"  >> " + err.Error()}, Error: err.Error()}
	}
	return report
}

func (e *Engine) title(kind Kind) string {
	switch kind {
	case KindUrgentStock:
		return fmt.Sprintf("Urgent stock alert (stock rate below %s%%)", formatFixed(e.policy.StockLowThreshold*100, 0))
	case KindExpiry:
		return fmt.Sprintf("Expiry management (within %d days)", e.policy.ExpiryWarningDays)
	case KindBestsellers:
		return fmt.Sprintf("Today's bestsellers TOP %d", bestsellerLimit)
	case KindSales:
		return "Sales overview"
	case KindManagement:
		return "Management analysis"
	case KindOverallStatus:
		return "Overall operating status"
	default:
		return string(kind)
	}
}

func (e *Engine) money(amount int) string {
	return formatMoney(e.currency, amount)
}

func (e *Engine) UrgentStockReport() Report {
	items := e.UrgentStock()
	lines := make([]string, 0, len(items))
	if len(items) == 0 {
		lines = append(lines, "  >> No low-stock items.")
	}
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("  - %-15s %-11s : %3d -> %3d units (%3d needed) [stock rate: %s%%]",
			it.Name, "("+it.Category.String()+")", it.SafetyStock, it.Stock, it.Needed, formatFixed(it.StockRatePercent, 1)))
	}
	return Report{Kind: KindUrgentStock, Title: e.title(KindUrgentStock), Lines: lines, Data: items}
}

func (e *Engine) ExpiryReport() Report {
	items := e.Expiring()
	lines := make([]string, 0, len(items))
	if len(items) == 0 {
		lines = append(lines, "  >> No items near expiry.")
	}
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("  - %-18s : %d days left -> %s%% off (%s -> %s)",
			it.Name, it.DaysUntilExpiry, formatFixed(it.DiscountRate*100, 0), e.money(it.Price), e.money(it.DiscountedPrice)))
	}
	return Report{Kind: KindExpiry, Title: e.title(KindExpiry), Lines: lines, Data: items}
}

func (e *Engine) BestsellersReport() Report {
	entries := e.Bestsellers()
	lines := make([]string, 0, len(entries))
	if len(entries) == 0 {
		lines = append(lines, "  >> No sales recorded.")
	}
	for _, it := range entries {
		if !it.Found {
			lines = append(lines, fmt.Sprintf("  warning: product '%s' not found in catalog", it.Name))
			continue
		}
		lines = append(lines, fmt.Sprintf("  %d. %-18s : %2d sold (revenue %s)", it.Rank, it.Name, it.Quantity, e.money(it.Revenue)))
	}
	return Report{Kind: KindBestsellers, Title: e.title(KindBestsellers), Lines: lines, Data: entries}
}

func (e *Engine) SalesReport() Report {
	summary := e.Sales()
	lines := make([]string, 0, len(summary.Missing)+len(summary.Lines)+2)
	for _, name := range summary.Missing {
		lines = append(lines, fmt.Sprintf("  warning: product '%s' not found in catalog", name))
	}
	lines = append(lines,
		fmt.Sprintf("  - Total revenue today: %s (%d items sold)", e.money(summary.TotalRevenue), summary.TotalItemsSold),
		"  ------------------------------------------------",
	)
	for _, l := range summary.Lines {
		lines = append(lines, fmt.Sprintf("    * %-18s: %-9s (%2d x %s)", l.Name, e.money(l.Revenue), l.Quantity, e.money(l.UnitPrice)))
	}
	return Report{Kind: KindSales, Title: e.title(KindSales), Lines: lines, Data: summary}
}

func (e *Engine) ManagementReport() Report {
	a := e.ManagementAnalysis()
	var lines []string

	if a.MaxTurnover != nil {
		lines = append(lines, "  [Efficiency]",
			fmt.Sprintf("  - Highest turnover  : %s (%s)", a.MaxTurnover.Name, formatFixed(a.MaxTurnover.Value, 2)))
		if a.MinTurnover != nil {
			lines = append(lines, fmt.Sprintf("  - Lowest turnover   : %s (%s)", a.MinTurnover.Name, formatFixed(a.MinTurnover.Value, 2)))
		}
		lines = append(lines,
			fmt.Sprintf("  - Top efficiency    : %s (%s%%)", a.MaxEfficiency.Name, formatFixed(a.MaxEfficiency.Value*100, 0)),
			"")
	}

	overstocked := "none"
	if len(a.Overstocked) > 0 {
		names := make([]string, len(a.Overstocked))
		for i, o := range a.Overstocked {
			names[i] = fmt.Sprintf("%s(%d)", o.Name, o.SafetyStock)
		}
		overstocked = strings.Join(names, ", ")
	}

	lines = append(lines,
		"  [Stock status]",
		"  - Overstocked       : "+overstocked,
		fmt.Sprintf("  - Reorder suggested : %d items, %d units", a.ReorderCount, a.ReorderUnits),
	)
	return Report{Kind: KindManagement, Title: e.title(KindManagement), Lines: lines, Data: a}
}

func (e *Engine) OverallStatusReport() Report {
	s := e.OverallStatus()
	lines := []string{
		fmt.Sprintf("  - Registered products : %d", s.ProductCount),
		fmt.Sprintf("  - Units on hand       : %d", s.ProjectedUnits),
		fmt.Sprintf("  - Inventory value     : %s", e.money(s.InventoryValue)),
		fmt.Sprintf("  - Low-stock products  : %d", s.LowStockCount),
		fmt.Sprintf("  - Near expiry         : %d", s.ExpiringCount),
		fmt.Sprintf("  - Units sold today    : %d", s.UnitsSold),
	}
	return Report{Kind: KindOverallStatus, Title: e.title(KindOverallStatus), Lines: lines, Data: s}
}

