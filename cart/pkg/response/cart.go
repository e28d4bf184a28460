package response

import (
	"github.com/shopspring/decimal"

	productResponse "github.com/Alturino/storefront/product/pkg/response"
)

const CalculatedAtCheckout = "Calculated at checkout"

// CartItem is a cart line item. Its json layout is the persisted layout.
type CartItem struct {
	Product  productResponse.Product `json:"product"`
	Quantity int                     `json:"quantity"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	Items          []CartItem      `json:"items"`
	ItemCount      int             `json:"itemCount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Shipping       string          `json:"shipping"`
	Tax            string          `json:"tax"`
	EstimatedTotal decimal.Decimal `json:"estimatedTotal"`
}
