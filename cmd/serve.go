package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	cartCmd "github.com/Alturino/storefront/cart/cmd"
	"github.com/Alturino/storefront/internal/auth"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/metric"
	"github.com/Alturino/storefront/internal/middleware"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/validate"
	notificationCmd "github.com/Alturino/storefront/notification/cmd"
	"github.com/Alturino/storefront/notification/pkg/notification"
	orderCmd "github.com/Alturino/storefront/order/cmd"
	productCmd "github.com/Alturino/storefront/product/cmd"
)

func runStorefront(c context.Context, cfg *config.Config) {
	c, span := inOtel.Tracer.Start(c, "RunStorefront")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppStorefront).
		Str(log.KeyTag, "main RunStorefront").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := inOtel.InitOtelSdk(c, constants.AppStorefront, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(c), 5*time.Second)
		defer cancel()
		if err := inOtel.ShutdownOtel(shutdownCtx, otelShutdowns); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	metrics := metric.New()
	router := mux.NewRouter()
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	api := router.NewRoute().Subrouter()
	api.Use(otelmux.Middleware(constants.AppStorefront), middleware.RecoverPanic, middleware.Logging)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(log.KeyProcess, "initializing catalog").Logger()
	c = logger.WithContext(c)
	catalog, err := productCmd.NewCatalog(c)
	if err != nil {
		inErrors.HandleError(err, span)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "initializing cart storage").Logger()
	c = logger.WithContext(c)
	storage, closeStorage, err := cartCmd.NewStorage(c, cfg)
	if err != nil {
		inErrors.HandleError(err, span)
		return
	}
	defer func() {
		logger.Info().Msg("closing cart storage")
		if err := closeStorage(); err != nil {
			err = fmt.Errorf("failed closing cart storage with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("closed cart storage")
	}()
	cartStore := cartCmd.NewCartStore(c, storage, cfg.Storage.CartKey, metrics)

	orders, closeOrders := orderCmd.NewOrderRepository(c, cfg.Database)
	defer closeOrders()

	validation := validate.New()
	hub := notification.NewHub(notification.DefaultCapacity)
	productCmd.AttachProductService(c, api, catalog, validation)
	cartCmd.AttachCartService(c, api, cartStore, catalog, hub, validation)
	orderCmd.AttachOrderService(
		c,
		api,
		cartStore,
		orders,
		hub,
		validation,
		metrics,
		auth.NewVerifier(cfg.Application.SecretKey),
	)
	notificationCmd.AttachNotificationService(c, api, hub)

	logger = logger.With().Str(log.KeyProcess, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	httpServer := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().Msg("initialized server")

	serverErr := make(chan error, 1)
	go func() {
		logger := logger.With().Str(log.KeyProcess, "start server").Logger()
		logger.Info().Msgf("start listening request at %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("error=%w occured while server is running", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			serverErr <- err
			return
		}
		logger.Info().Msg("shutdown server")
	}()

	select {
	case <-c.Done():
		logger = logger.With().Str(log.KeyProcess, "shutdown server").Logger()
		logger.Info().Msg("received interuption signal shutting down")
	case <-serverErr:
		return
	}

	logger.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(c), 10*time.Second)
	defer cancel()
	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		err = fmt.Errorf("failed shutting down http server with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("shutdown http server")
}
