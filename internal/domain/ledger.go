package domain

import "fmt"

// SaleEntry is the quantity sold of one product during the period.
type SaleEntry struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// SalesLedger maps product names to quantities sold, remembering the order
// in which names were first recorded. That order breaks ties when sales are
// ranked.
type SalesLedger struct {
	entries []SaleEntry
	index   map[string]int
}

// NewSalesLedger builds a ledger. Repeated names are summed into the first
// entry.
func NewSalesLedger(entries ...SaleEntry) (*SalesLedger, error) {
	l := &SalesLedger{
		entries: make([]SaleEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		if e.Quantity < 0 {
			return nil, fmt.Errorf("%w: %q sold %d", ErrNegativeQuantity, e.Name, e.Quantity)
		}
		if i, ok := l.index[e.Name]; ok {
			l.entries[i].Quantity += e.Quantity
			continue
		}
		l.index[e.Name] = len(l.entries)
		l.entries = append(l.entries, e)
	}

	return l, nil
}

// Entries returns a copy of the ledger in recording order.
func (l *SalesLedger) Entries() []SaleEntry {
	if l == nil {
		return nil
	}
	out := make([]SaleEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Quantity returns the quantity sold for name and whether the ledger has an
// entry for it.
func (l *SalesLedger) Quantity(name string) (int, bool) {
	if l == nil {
		return 0, false
	}
	i, ok := l.index[name]
	if !ok {
		return 0, false
	}
	return l.entries[i].Quantity, true
}

// Total sums every entry, including names missing from the catalog.
func (l *SalesLedger) Total() int {
	if l == nil {
		return 0
	}
	total := 0
	for _, e := range l.entries {
		total += e.Quantity
	}
	return total
}

func (l *SalesLedger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}
