package catalog

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/product/pkg/response"
)

func ids(products []response.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestFilter(t *testing.T) {
	products, err := SampleProducts()
	require.NoError(t, err)
	require.Len(t, products, 8)

	tests := []struct {
		name     string
		search   string
		category string
		expected []string
	}{
		{
			name:     "given empty search and all category should return every product",
			search:   "",
			category: "all",
			expected: []string{"1", "2", "3", "4", "5", "6", "7", "8"},
		},
		{
			name:     "given laptop search should match name or description only",
			search:   "laptop",
			category: "all",
			expected: []string{"4"},
		},
		{
			name:     "given electronics category should return only electronics",
			search:   "",
			category: "electronics",
			expected: []string{"1", "2", "4"},
		},
		{
			name:     "given mixed case inputs should compare case insensitively",
			search:   "PREMIUM",
			category: "Electronics",
			expected: []string{"1"},
		},
		{
			name:     "given search matching description only should return product",
			search:   "noise cancellation",
			category: "all",
			expected: []string{"1"},
		},
		{
			name:     "given search and category should require both",
			search:   "premium",
			category: "clothing",
			expected: []string{"5"},
		},
		{
			name:     "given empty category should behave as all",
			search:   "table",
			category: "",
			expected: []string{"5", "8"},
		},
		{
			name:     "given unknown category should return nothing",
			search:   "",
			category: "toys",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := Filter(products, tt.search, tt.category)
			assert.Equal(t, tt.expected, ids(actual))
		})
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	products := []response.Product{
		{ID: "a", Name: "Lamp", Category: "furniture", Price: decimal.NewFromInt(10)},
		{ID: "b", Name: "Phone", Category: "electronics", Price: decimal.NewFromInt(20)},
	}
	before := ids(products)

	first := Filter(products, "phone", "all")
	second := Filter(products, "phone", "all")

	assert.Equal(t, before, ids(products))
	assert.Equal(t, first, second)
}

func TestQuery(t *testing.T) {
	t.Run("given no category param should default to all", func(t *testing.T) {
		q := ParseQuery(url.Values{QueryKeySearch: {"bag"}})
		assert.Equal(t, Query{Search: "bag", Category: CategoryAll}, q)
	})

	t.Run("given category param should lowercase it", func(t *testing.T) {
		q := ParseQuery(url.Values{QueryKeyCategory: {"Furniture"}})
		assert.Equal(t, "furniture", q.Category)
	})

	t.Run("given all category should omit it from values", func(t *testing.T) {
		values := Query{Search: "watch", Category: CategoryAll}.Values()
		assert.Equal(t, url.Values{QueryKeySearch: {"watch"}}, values)
	})

	t.Run("given query should round trip through values", func(t *testing.T) {
		q := Query{Search: "chair", Category: "furniture"}
		assert.Equal(t, q, ParseQuery(q.Values()))
	})
}

func TestCatalog(t *testing.T) {
	products, err := SampleProducts()
	require.NoError(t, err)
	c := New(products)

	product, ok := c.FindById("4")
	assert.True(t, ok)
	assert.Equal(t, "Ultra-Slim Laptop Pro", product.Name)
	assert.True(t, decimal.RequireFromString("1299.99").Equal(product.Price))

	_, ok = c.FindById("404")
	assert.False(t, ok)

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(c.Featured()))
	assert.Equal(t, []string{"6", "8"}, ids(c.Find(Query{Category: "furniture"})))
}
