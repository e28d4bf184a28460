package catalog

import (
	"strings"

	"github.com/Alturino/storefront/product/pkg/response"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Filter returns the products, in their original order, whose name or
// description contains search and whose category equals category. Both
// comparisons ignore case. An empty search and the "all" category match
// everything. The input slice is never modified.
func Filter(products []response.Product, search string, category string) []response.Product {
	search = strings.ToLower(search)
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = CategoryAll
	}

	filtered := make([]response.Product, 0, len(products))
	for _, product := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(product.Name), search) &&
			!strings.Contains(strings.ToLower(product.Description), search) {
			continue
		}
		if category != CategoryAll && strings.ToLower(product.Category) != category {
			continue
		}
		filtered = append(filtered, product)
	}
	return filtered
}
