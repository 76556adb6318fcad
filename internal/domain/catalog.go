package domain

import "fmt"

// Catalog is an ordered, name-indexed set of products.
type Catalog struct {
	products []Product
	index    map[string]int
}

// NewCatalog validates the products and builds the name index. Product
// names must be unique because sales are joined by name.
func NewCatalog(products ...Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}

	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.index[p.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProduct, p.Name)
		}
		c.index[p.Name] = len(c.products)
		c.products = append(c.products, p)
	}

	return c, nil
}

// Products returns a copy of the catalog in insertion order.
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Lookup(name string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	i, ok := c.index[name]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}
