package cmd

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/product/internal/controller"
	"github.com/Alturino/storefront/product/internal/service"
	"github.com/Alturino/storefront/product/pkg/catalog"
)

// NewCatalog loads the sample catalog served by the storefront.
func NewCatalog(c context.Context) (*catalog.Catalog, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppProductService).
		Str(log.KeyTag, "main NewCatalog").
		Str(log.KeyProcess, "loading sample products").
		Logger()

	logger.Info().Msg("loading sample products")
	products, err := catalog.SampleProducts()
	if err != nil {
		err = fmt.Errorf("failed loading sample products with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(log.KeyProductsCount, len(products)).Msg("loaded sample products")

	return catalog.New(products), nil
}

func AttachProductService(
	c context.Context,
	router *mux.Router,
	catalog *catalog.Catalog,
	validate *validator.Validate,
) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppProductService).
		Str(log.KeyTag, "main AttachProductService").
		Str(log.KeyProcess, "initializing product controller").
		Logger()

	logger.Info().Msg("initializing product controller")
	controller.AttachProductController(router, service.NewProductService(catalog), validate)
	logger.Info().Msg("initialized product controller")
}
