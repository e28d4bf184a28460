package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/cart/pkg/store"
	"github.com/Alturino/storefront/internal/config"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/metric"
	"github.com/Alturino/storefront/product/pkg/catalog"
)

func TestNewStorage(t *testing.T) {
	tests := []struct {
		name        string
		driver      string
		expectedErr error
	}{
		{name: "given memory driver should open memory storage", driver: config.StorageDriverMemory},
		{name: "given sqlite driver should open sqlite storage", driver: config.StorageDriverSqlite},
		{name: "given unknown driver should fail", driver: "floppy", expectedErr: inErrors.ErrUnknownStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Storage: config.Storage{
				Driver:     tt.driver,
				SqlitePath: filepath.Join(t.TempDir(), "storefront.db"),
				CartKey:    config.DefaultCartKey,
			}}

			storage, closeStorage, err := NewStorage(context.Background(), cfg)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			defer closeStorage()

			_, err = storage.Load(context.Background(), cfg.Storage.CartKey)
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestNewCartStoreSurvivesRestartAndTracksMetrics(t *testing.T) {
	c := context.Background()
	cfg := &config.Config{Storage: config.Storage{
		Driver:     config.StorageDriverSqlite,
		SqlitePath: filepath.Join(t.TempDir(), "storefront.db"),
		CartKey:    config.DefaultCartKey,
	}}
	products, err := catalog.SampleProducts()
	require.NoError(t, err)

	storage, closeStorage, err := NewStorage(c, cfg)
	require.NoError(t, err)
	metrics := metric.New()
	cartStore := NewCartStore(c, storage, cfg.Storage.CartKey, metrics)
	require.NoError(t, cartStore.AddItem(c, products[0], 2))
	require.NoError(t, cartStore.AddItem(c, products[1], 1))
	cartStore.RemoveItem(c, products[1].ID)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.CartMutations.WithLabelValues(string(store.OperationAdd))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CartMutations.WithLabelValues(string(store.OperationRemove))))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.CartItems))
	require.NoError(t, closeStorage())

	storage, closeStorage, err = NewStorage(c, cfg)
	require.NoError(t, err)
	defer closeStorage()
	restarted := NewCartStore(c, storage, cfg.Storage.CartKey, metric.New())
	assert.Equal(t, cartStore.Items(), restarted.Items())

	require.NoError(t, ResetCart(c, storage, cfg.Storage.CartKey))
	assert.Empty(t, NewCartStore(c, storage, cfg.Storage.CartKey, metric.New()).Items())
}
