// backend-go/internal/loader/csv.go
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/storeops/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// DateLayout is the expiration_date format in catalog files.
const DateLayout = "2006-01-02"

var (
	catalogColumns = []string{"name", "category", "price", "stock", "safety_stock"}
	ledgerColumns  = []string{"name", "quantity"}
)

// ReadCatalog parses a catalog CSV with the header
// name,category,price,stock,safety_stock[,expiration_date][,volume_ml].
func ReadCatalog(r io.Reader) ([]domain.Product, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	colMap, err := readHeader(reader, catalogColumns)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	var products []domain.Product
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: %w", line, err)
		}

		p, err := parseProduct(record, colMap)
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: %w", line, err)
		}
		products = append(products, p)
	}

	log.Debug().Int("products", len(products)).Msg("catalog parsed")
	return products, nil
}

func parseProduct(record []string, colMap map[string]int) (domain.Product, error) {
	field := func(name string) string {
		i, ok := colMap[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	category, err := domain.ParseCategory(field("category"))
	if err != nil {
		return domain.Product{}, err
	}

	p := domain.Product{Name: field("name"), Category: category}
	if p.Price, err = atoi("price", field("price")); err != nil {
		return domain.Product{}, err
	}
	if p.Stock, err = atoi("stock", field("stock")); err != nil {
		return domain.Product{}, err
	}
	if p.SafetyStock, err = atoi("safety_stock", field("safety_stock")); err != nil {
		return domain.Product{}, err
	}

	switch category {
	case domain.CategoryFood:
		raw := field("expiration_date")
		if raw == "" {
			return domain.Product{}, fmt.Errorf("food %q: expiration_date is required", p.Name)
		}
		if p.ExpirationDate, err = time.Parse(DateLayout, raw); err != nil {
			return domain.Product{}, fmt.Errorf("food %q: invalid expiration_date: %w", p.Name, err)
		}
	case domain.CategoryBeverage:
		if raw := field("volume_ml"); raw != "" {
			if p.VolumeML, err = atoi("volume_ml", raw); err != nil {
				return domain.Product{}, err
			}
		}
	}

	return p, nil
}

// ReadLedger parses a sales CSV with the header name,quantity.
func ReadLedger(r io.Reader) ([]domain.SaleEntry, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	colMap, err := readHeader(reader, ledgerColumns)
	if err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}

	var entries []domain.SaleEntry
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ledger line %d: %w", line, err)
		}

		qty, err := atoi("quantity", strings.TrimSpace(record[colMap["quantity"]]))
		if err != nil {
			return nil, fmt.Errorf("ledger line %d: %w", line, err)
		}
		entries = append(entries, domain.SaleEntry{
			Name:     strings.TrimSpace(record[colMap["name"]]),
			Quantity: qty,
		})
	}

	return entries, nil
}

// LoadCatalogFile reads and validates a catalog file.
func LoadCatalogFile(path string) (*domain.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	products, err := ReadCatalog(f)
	if err != nil {
		return nil, err
	}
	return domain.NewCatalog(products...)
}

// LoadLedgerFile reads a sales file into a ledger.
func LoadLedgerFile(path string) (*domain.SalesLedger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sales file: %w", err)
	}
	defer f.Close()

	entries, err := ReadLedger(f)
	if err != nil {
		return nil, err
	}
	return domain.NewSalesLedger(entries...)
}

func readHeader(reader *csv.Reader, required []string) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	reader.FieldsPerRecord = len(header)

	colMap := make(map[string]int, len(header))
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range required {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	return colMap, nil
}

func atoi(field, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	return v, nil
}
