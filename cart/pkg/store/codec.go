package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Alturino/storefront/cart/pkg/response"
)

var ErrIncompatiblePayload = errors.New("incompatible cart payload")

// Encode serializes line items as a json array of {product, quantity}.
func Encode(items []response.CartItem) ([]byte, error) {
	if items == nil {
		items = []response.CartItem{}
	}
	return json.Marshal(items)
}

// Decode is the inverse of Encode. A payload that is not an array of
// {product, quantity} with quantities in [1, MaxQuantity] and unique product
// ids is rejected as a whole.
func Decode(data []byte) ([]response.CartItem, error) {
	items := []response.CartItem{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed unmarshaling cart with error=%w", errors.Join(ErrIncompatiblePayload, err))
	}

	if items == nil {
		items = []response.CartItem{}
	}

	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.Product.ID == "" {
			return nil, fmt.Errorf("item %d has no product id: %w", i, ErrIncompatiblePayload)
		}
		if item.Quantity < 1 || item.Quantity > MaxQuantity {
			return nil, fmt.Errorf("item %d has quantity %d: %w", i, item.Quantity, ErrIncompatiblePayload)
		}
		if _, ok := seen[item.Product.ID]; ok {
			return nil, fmt.Errorf("productId=%s appears twice: %w", item.Product.ID, ErrIncompatiblePayload)
		}
		seen[item.Product.ID] = struct{}{}
	}
	return items, nil
}
