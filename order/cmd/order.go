package cmd

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/auth"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/metric"
	"github.com/Alturino/storefront/internal/middleware"
	"github.com/Alturino/storefront/notification/pkg/notification"
	"github.com/Alturino/storefront/order/internal/controller"
	"github.com/Alturino/storefront/order/internal/repository"
	"github.com/Alturino/storefront/order/internal/service"
)

// NewOrderRepository connects to postgres when a database host is
// configured and otherwise keeps orders in memory. The returned func
// releases the connection pool.
func NewOrderRepository(c context.Context, cfg config.Database) (service.OrderRepository, func()) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppOrderService).
		Str(log.KeyTag, "main NewOrderRepository").
		Logger()

	if cfg.Host == "" {
		logger.Warn().Msg("no database configured, orders will be kept in memory")
		return repository.NewMemoryRepository(), func() {}
	}

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	pool := infra.NewDatabaseClient(logger.WithContext(c), cfg)
	logger.Info().Msg("initialized database")

	return repository.NewOrderRepository(pool), func() {
		logger = logger.With().Str(log.KeyProcess, "shutting down database").Logger()
		logger.Info().Msg("shutting down database")
		pool.Close()
		logger.Info().Msg("shutdown database")
	}
}

func AttachOrderService(
	c context.Context,
	router *mux.Router,
	cart service.CartStore,
	orders service.OrderRepository,
	notifier notification.Notifier,
	validate *validator.Validate,
	metrics *metric.Metrics,
	verifier auth.Verifier,
) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppOrderService).
		Str(log.KeyTag, "main AttachOrderService").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing checkout service").Logger()
	logger.Info().Msg("initializing checkout service")
	checkoutService := service.NewCheckoutService(cart, orders, notifier, validate, metrics)
	logger.Info().Msg("initialized checkout service")

	logger = logger.With().Str(log.KeyProcess, "initializing order controller").Logger()
	logger.Info().Msg("initializing order controller")
	controller.AttachOrderController(router, checkoutService, middleware.Auth(verifier))
	logger.Info().Msg("initialized order controller")
}
