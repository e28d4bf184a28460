package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertOrder = `
insert into orders (id, user_id, status, payment_method, total)
values ($1, $2, $3::order_status, $4, $5)
returning id, user_id, status::text, payment_method, total, created_at, updated_at
`

type InsertOrderParams struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Status        string
	PaymentMethod string
	Total         pgtype.Numeric
}

type Order struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Status        string
	PaymentMethod string
	Total         pgtype.Numeric
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func (q *Queries) InsertOrder(c context.Context, arg InsertOrderParams) (Order, error) {
	row := q.db.QueryRow(c, insertOrder, arg.ID, arg.UserID, arg.Status, arg.PaymentMethod, arg.Total)
	i := Order{}
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.PaymentMethod,
		&i.Total,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertOrderItem = `
insert into order_items (id, order_id, product_id, quantity, price)
values ($1, $2, $3, $4, $5)
`

type InsertOrderItemParams struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID string
	Quantity  int32
	Price     pgtype.Numeric
}

// InsertOrderItem sends every item in one batch and returns the number of
// inserted rows.
func (q *Queries) InsertOrderItem(c context.Context, arg []InsertOrderItemParams) (int64, error) {
	batch := &pgx.Batch{}
	for _, a := range arg {
		batch.Queue(insertOrderItem, a.ID, a.OrderID, a.ProductID, a.Quantity, a.Price)
	}

	results := q.db.SendBatch(c, batch)
	defer results.Close()

	inserted := int64(0)
	for i := range arg {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed inserting orderItem index=%d with error=%w", i, err)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

const findOrderById = `
select
    o.id,
    o.user_id,
    o.status::text,
    o.payment_method,
    o.total,
    o.created_at,
    o.updated_at,
    coalesce(
        json_agg(
            json_build_object(
                'id', oi.id,
                'orderId', oi.order_id,
                'productId', oi.product_id,
                'quantity', oi.quantity,
                'price', oi.price::text
            ) order by oi.product_id
        ) filter (where oi.id is not null),
        '[]'
    ) as order_items
from orders o
left join order_items oi on oi.order_id = o.id
where o.user_id = $1 and o.id = $2
group by o.id
`

type FindOrderByIdParams struct {
	UserID uuid.UUID
	ID     uuid.UUID
}

type FindOrderByIdRow struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Status        string
	PaymentMethod string
	Total         pgtype.Numeric
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
	OrderItems    []byte
}

func (q *Queries) FindOrderById(c context.Context, arg FindOrderByIdParams) (FindOrderByIdRow, error) {
	row := q.db.QueryRow(c, findOrderById, arg.UserID, arg.ID)
	i := FindOrderByIdRow{}
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.PaymentMethod,
		&i.Total,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.OrderItems,
	)
	return i, err
}
