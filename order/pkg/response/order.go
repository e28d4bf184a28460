package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const StatusPending = "pending"

type Order struct {
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	OrderItems    []OrderItem     `json:"orderItems"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	Total         decimal.Decimal `json:"total"`
	ID            uuid.UUID       `json:"id"`
	UserId        uuid.UUID       `json:"userId"`
}

// ShortId is the order reference shown to the shopper.
func (o Order) ShortId() string {
	return o.ID.String()[:8]
}

// OrderItem snapshots the price at the time of checkout.
type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderId   uuid.UUID       `json:"orderId"`
	ProductId string          `json:"productId"`
	Quantity  int32           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}
