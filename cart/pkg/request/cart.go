package request

// AddItem quantity defaults to one. Both quantities are bounded by store.MaxQuantity.
type AddItem struct {
	ProductId string `validate:"required"                       json:"productId"`
	Quantity  *int   `validate:"omitempty,gte=1,max=2147483647" json:"quantity"`
}

// UpdateQuantity replaces the quantity. Zero or below removes the line item.
type UpdateQuantity struct {
	Quantity *int `validate:"required,max=2147483647" json:"quantity"`
}
