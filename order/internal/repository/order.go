package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/order/internal/otel"
	"github.com/Alturino/storefront/order/pkg/request"
	"github.com/Alturino/storefront/order/pkg/response"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository persists orders and their items in postgres.
type OrderRepository struct {
	pool    *pgxpool.Pool
	queries *Queries
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool, queries: New(pool)}
}

// SubmitOrder inserts the order and all its items in one transaction and
// returns the stored order.
func (r *OrderRepository) SubmitOrder(c context.Context, order response.Order) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderRepository SubmitOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderRepository SubmitOrder").
		Str(log.KeyOrderID, order.ID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Trace().Msg("initializing transaction")
	tx, err := r.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Msg("initialized transaction")
	defer func() {
		if err := tx.Rollback(c); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			err = fmt.Errorf("failed rolling back transaction with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Trace().Msg("inserting order")
	queries := r.queries.WithTx(tx)
	inserted, err := queries.InsertOrder(c, InsertOrderParams{
		ID:            order.ID,
		UserID:        order.UserId,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		Total:         Numeric(order.Total),
	})
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Msg("inserted order")

	logger = logger.With().Str(log.KeyProcess, "inserting orderItem").Logger()
	args := make([]InsertOrderItemParams, len(order.OrderItems))
	for i, item := range order.OrderItems {
		args[i] = InsertOrderItemParams{
			ID:        item.ID,
			OrderID:   inserted.ID,
			ProductID: item.ProductId,
			Quantity:  item.Quantity,
			Price:     Numeric(item.Price),
		}
	}
	logger.Trace().Int(log.KeyOrderItems, len(args)).Msg("inserting orderItem")
	count, err := queries.InsertOrderItem(c, args)
	if err != nil {
		err = fmt.Errorf("failed inserting orderItem with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Msgf("inserted orderItem count=%d", count)

	logger = logger.With().Str(log.KeyProcess, "getting inserted order").Logger()
	row, err := queries.FindOrderById(c, FindOrderByIdParams{UserID: inserted.UserID, ID: inserted.ID})
	if err != nil {
		err = fmt.Errorf("failed getting inserted order with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Trace().Msg("committing transaction")
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Msg("committed transaction")

	resp, err := row.Response()
	if err != nil {
		err = fmt.Errorf("failed mapping order with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	return resp, nil
}

func (r *OrderRepository) FindOrderById(c context.Context, param request.FindOrderById) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderRepository FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderRepository FindOrderById").
		Str(log.KeyOrderID, param.OrderId.String()).
		Str(log.KeyUserID, param.UserId.String()).
		Str(log.KeyProcess, "finding order by id").
		Logger()

	logger.Trace().Msg("finding order by id")
	row, err := r.queries.FindOrderById(c, FindOrderByIdParams{UserID: param.UserId, ID: param.OrderId})
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding orderId=%s with error=%w", param.OrderId.String(), ErrOrderNotFound)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if err != nil {
		err = fmt.Errorf("failed finding order with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	resp, err := row.Response()
	if err != nil {
		err = fmt.Errorf("failed mapping order with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Msg("found order by id")
	return resp, nil
}

// MemoryRepository keeps orders for the lifetime of the process. It serves
// when no database is configured.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]response.Order
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: map[string]response.Order{}, now: time.Now}
}

func (r *MemoryRepository) SubmitOrder(c context.Context, order response.Order) (response.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.CreatedAt = r.now()
	order.UpdatedAt = order.CreatedAt
	order.OrderItems = slices.Clone(order.OrderItems)
	for i := range order.OrderItems {
		order.OrderItems[i].OrderId = order.ID
	}
	r.orders[order.ID.String()] = order
	return order, nil
}

func (r *MemoryRepository) FindOrderById(c context.Context, param request.FindOrderById) (response.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[param.OrderId.String()]
	if !ok || order.UserId != param.UserId {
		return response.Order{}, fmt.Errorf("failed finding orderId=%s with error=%w", param.OrderId.String(), ErrOrderNotFound)
	}
	return order, nil
}
