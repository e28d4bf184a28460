package cmd

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/controller"
	"github.com/Alturino/storefront/cart/internal/service"
	"github.com/Alturino/storefront/cart/internal/storage"
	"github.com/Alturino/storefront/cart/pkg/store"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/metric"
	"github.com/Alturino/storefront/notification/pkg/notification"
)

type CloseFunc func() error

// NewStorage opens the storage backend named by cfg.Storage.Driver. The
// returned CloseFunc releases it.
func NewStorage(c context.Context, cfg *config.Config) (store.Storage, CloseFunc, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppCartService).
		Str(log.KeyTag, "main NewStorage").
		Str(log.KeyStorageDriver, cfg.Storage.Driver).
		Str(log.KeyProcess, "initializing cart storage").
		Logger()

	logger.Info().Msg("initializing cart storage")
	c = logger.WithContext(c)
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		logger.Warn().Msg("cart will not survive a restart")
		return store.NewMemoryStorage(), func() error { return nil }, nil
	case config.StorageDriverSqlite:
		db, err := infra.NewSqliteClient(c, cfg.Storage.SqlitePath)
		if err != nil {
			return nil, nil, err
		}
		sqlDb, err := db.DB()
		if err != nil {
			err = fmt.Errorf("failed getting sqlite connection with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return nil, nil, err
		}
		sqliteStorage, err := storage.NewSqliteStorage(c, db)
		if err != nil {
			_ = sqlDb.Close()
			return nil, nil, err
		}
		logger.Info().Msg("initialized cart storage")
		return sqliteStorage, sqlDb.Close, nil
	case config.StorageDriverRedis:
		cache := infra.NewCacheClient(c, cfg.Cache)
		logger.Info().Msg("initialized cart storage")
		return storage.NewRedisStorage(cache), cache.Close, nil
	default:
		err := fmt.Errorf("failed initializing storage driver=%s with error=%w", cfg.Storage.Driver, inErrors.ErrUnknownStorage)
		logger.Error().Err(err).Msg(err.Error())
		return nil, nil, err
	}
}

// NewCartStore rehydrates the cart and keeps the cart metrics in step with
// every mutation.
func NewCartStore(
	c context.Context,
	storage store.Storage,
	key string,
	metrics *metric.Metrics,
) *store.Store {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppCartService).
		Str(log.KeyTag, "main NewCartStore").
		Str(log.KeyCartKey, key).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing cart store").Logger()
	logger.Info().Msg("initializing cart store")
	cartStore := store.New(logger.WithContext(c), storage, key)
	metrics.CartItems.Set(float64(cartStore.ItemCount()))
	cartStore.Subscribe(func(e store.Event) {
		metrics.CartMutations.WithLabelValues(string(e.Operation)).Inc()
		metrics.CartItems.Set(float64(e.ItemCount()))
	})
	logger.Info().Int(log.KeyCartItemCount, cartStore.ItemCount()).Msg("initialized cart store")

	return cartStore
}

func AttachCartService(
	c context.Context,
	router *mux.Router,
	cartStore *store.Store,
	products service.ProductFinder,
	notifier notification.Notifier,
	validate *validator.Validate,
) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppCartService).
		Str(log.KeyTag, "main AttachCartService").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing cart service").Logger()
	logger.Info().Msg("initializing cart service")
	cartService := service.NewCartService(cartStore, products)
	logger.Info().Msg("initialized cart service")

	logger = logger.With().Str(log.KeyProcess, "initializing cart controller").Logger()
	logger.Info().Msg("initializing cart controller")
	controller.AttachCartController(router, cartService, notifier, validate)
	logger.Info().Msg("initialized cart controller")
}

// ResetCart drops whatever is persisted under key.
func ResetCart(c context.Context, storage store.Storage, key string) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppCartService).
		Str(log.KeyTag, "main ResetCart").
		Str(log.KeyCartKey, key).
		Str(log.KeyProcess, "deleting persisted cart").
		Logger()

	logger.Info().Msg("deleting persisted cart")
	if err := storage.Delete(c, key); err != nil {
		err = fmt.Errorf("failed deleting persisted cart with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted persisted cart")
	return nil
}
