package response

import "github.com/shopspring/decimal"

// Product is immutable reference data. The json layout is also the layout
// of the product embedded in a persisted cart.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      float64         `json:"rating"`
	InStock     bool            `json:"inStock"`
	Featured    bool            `json:"featured,omitempty"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
