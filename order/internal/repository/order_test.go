package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	pgxuuid "github.com/vgarvardt/pgx-google-uuid/v5"

	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/order/pkg/request"
	"github.com/Alturino/storefront/order/pkg/response"
)

func setup(t *testing.T, c context.Context) *pgxpool.Pool {
	t.Helper()

	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	})

	pgConnStr, err := pgContainer.ConnectionString(c, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}
	pgConfig, err := pgxpool.ParseConfig(pgConnStr)
	if err != nil {
		t.Fatalf("failed parsing pgconfig with error: %s", err)
	}
	pgConfig.AfterConnect = func(c context.Context, conn *pgx.Conn) error {
		pgxuuid.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(c, pgConfig)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}
	t.Cleanup(pool.Close)

	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed ping postgres pool with error: %s", err)
	}
	if err = infra.Migrate(c, pool, "file://../../migrations"); err != nil {
		t.Fatalf("failed migrating with error: %s", err)
	}
	return pool
}

func newOrder(userId uuid.UUID) response.Order {
	orderId := uuid.New()
	return response.Order{
		ID:            orderId,
		UserId:        userId,
		Status:        response.StatusPending,
		PaymentMethod: request.PaymentMethodPaypal,
		Total:         decimal.RequireFromString("659.97"),
		OrderItems: []response.OrderItem{
			{ID: uuid.New(), OrderId: orderId, ProductId: "1", Quantity: 2, Price: decimal.RequireFromString("249.99")},
			{ID: uuid.New(), OrderId: orderId, ProductId: "3", Quantity: 1, Price: decimal.RequireFromString("159.99")},
		},
	}
}

type orderRepository interface {
	SubmitOrder(c context.Context, order response.Order) (response.Order, error)
	FindOrderById(c context.Context, param request.FindOrderById) (response.Order, error)
}

func testRepository(t *testing.T, repo orderRepository) {
	c := context.Background()
	userId := uuid.New()

	order := newOrder(userId)
	submitted, err := repo.SubmitOrder(c, order)
	require.NoError(t, err)

	assert.Equal(t, order.ID, submitted.ID)
	assert.Equal(t, response.StatusPending, submitted.Status)
	assert.True(t, order.Total.Equal(submitted.Total))
	assert.False(t, submitted.CreatedAt.IsZero())
	require.Len(t, submitted.OrderItems, 2)
	assert.Equal(t, "1", submitted.OrderItems[0].ProductId)
	assert.True(t, submitted.OrderItems[0].Price.Equal(decimal.RequireFromString("249.99")))
	assert.Equal(t, int32(2), submitted.OrderItems[0].Quantity)

	found, err := repo.FindOrderById(c, request.FindOrderById{UserId: userId, OrderId: order.ID})
	require.NoError(t, err)
	assert.Equal(t, submitted.ID, found.ID)
	assert.Len(t, found.OrderItems, 2)

	tests := []struct {
		name  string
		param request.FindOrderById
	}{
		{name: "given another user should not find order", param: request.FindOrderById{UserId: uuid.New(), OrderId: order.ID}},
		{name: "given unknown order should not find order", param: request.FindOrderById{UserId: userId, OrderId: uuid.New()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.FindOrderById(c, tt.param)
			assert.ErrorIs(t, err, ErrOrderNotFound)
		})
	}
}

func TestOrderRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container in short mode")
	}
	testRepository(t, NewOrderRepository(setup(t, context.Background())))
}

func TestMemoryRepository(t *testing.T) {
	testRepository(t, NewMemoryRepository())
}
