package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/Alturino/storefront/product/pkg/response"
)

//go:embed seed/products.json
var sampleProducts []byte

var Categories = []response.Category{
	{ID: "1", Name: "All"},
	{ID: "2", Name: "Electronics"},
	{ID: "3", Name: "Clothing"},
	{ID: "4", Name: "Accessories"},
	{ID: "5", Name: "Furniture"},
}

// Catalog is a read-only product list.
type Catalog struct {
	products []response.Product
}

func New(products []response.Product) *Catalog {
	return &Catalog{products: slices.Clone(products)}
}

// SampleProducts decodes the embedded seed catalog.
func SampleProducts() ([]response.Product, error) {
	products := []response.Product{}
	if err := json.Unmarshal(sampleProducts, &products); err != nil {
		return nil, fmt.Errorf("failed decoding sample products with error=%w", err)
	}
	return products, nil
}

func (c *Catalog) Products() []response.Product {
	return slices.Clone(c.products)
}

func (c *Catalog) Find(q Query) []response.Product {
	return q.Apply(c.products)
}

func (c *Catalog) FindById(id string) (response.Product, bool) {
	idx := slices.IndexFunc(c.products, func(p response.Product) bool { return p.ID == id })
	if idx < 0 {
		return response.Product{}, false
	}
	return c.products[idx], true
}

func (c *Catalog) Featured() []response.Product {
	featured := []response.Product{}
	for _, p := range c.products {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured
}
