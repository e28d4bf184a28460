package repository

import (
	"encoding/json"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/order/pkg/response"
)

func Numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:              d.Coefficient(),
		Exp:              d.Exponent(),
		InfinityModifier: pgtype.Finite,
		NaN:              false,
		Valid:            true,
	}
}

func Decimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func (f FindOrderByIdRow) Response() (response.Order, error) {
	orderItems := []response.OrderItem{}
	if err := json.Unmarshal(f.OrderItems, &orderItems); err != nil {
		return response.Order{}, err
	}
	return response.Order{
		ID:            f.ID,
		UserId:        f.UserID,
		Status:        f.Status,
		PaymentMethod: f.PaymentMethod,
		Total:         Decimal(f.Total),
		OrderItems:    orderItems,
		CreatedAt:     f.CreatedAt.Time,
		UpdatedAt:     f.UpdatedAt.Time,
	}, nil
}
