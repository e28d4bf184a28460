package catalog

import (
	"net/url"
	"strings"

	"github.com/Alturino/storefront/product/pkg/response"
)

const (
	QueryKeySearch   = "search"
	QueryKeyCategory = "category"
)

// Query is the search and category state owned by the caller, mirrored in
// url query values so filtered views can be bookmarked.
type Query struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

func ParseQuery(values url.Values) Query {
	category := strings.ToLower(strings.TrimSpace(values.Get(QueryKeyCategory)))
	if category == "" {
		category = CategoryAll
	}
	return Query{
		Search:   values.Get(QueryKeySearch),
		Category: category,
	}
}

// Values is the inverse of ParseQuery. The category key is dropped when it
// is "all", and the search key when it is empty.
func (q Query) Values() url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set(QueryKeySearch, q.Search)
	}
	category := strings.ToLower(strings.TrimSpace(q.Category))
	if category != "" && category != CategoryAll {
		values.Set(QueryKeyCategory, category)
	}
	return values
}

func (q Query) Apply(products []response.Product) []response.Product {
	return Filter(products, q.Search, q.Category)
}
