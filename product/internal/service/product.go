package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/product/internal/otel"
	"github.com/Alturino/storefront/product/pkg/catalog"
	"github.com/Alturino/storefront/product/pkg/request"
	"github.com/Alturino/storefront/product/pkg/response"
)

var ErrProductNotFound = errors.New("product not found")

type ProductService struct {
	catalog *catalog.Catalog
}

func NewProductService(catalog *catalog.Catalog) *ProductService {
	return &ProductService{catalog: catalog}
}

func (svc *ProductService) FindProducts(
	c context.Context,
	param request.FindProducts,
) []response.Product {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	query := catalog.Query{Search: param.Search, Category: param.Category}
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Str(log.KeySearchQuery, query.Search).
		Str(log.KeyCategory, query.Category).
		Str(log.KeyProcess, "filtering products").
		Logger()

	logger.Trace().Msg("filtering products")
	products := svc.catalog.Find(query)
	logger.Info().Int(log.KeyProductsCount, len(products)).Msg("filtered products")

	return products
}

func (svc *ProductService) FindProductById(
	c context.Context,
	param request.FindProductById,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, param.ID).
		Str(log.KeyProcess, "finding product by id").
		Logger()

	logger.Trace().Msg("finding product by id")
	product, ok := svc.catalog.FindById(param.ID)
	if !ok {
		err := fmt.Errorf("failed finding productId=%s with error=%w", param.ID, ErrProductNotFound)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Trace().Msg("found product by id")

	return product, nil
}

func (svc *ProductService) FindFeaturedProducts(c context.Context) []response.Product {
	c, span := otel.Tracer.Start(c, "ProductService FindFeaturedProducts")
	defer span.End()

	products := svc.catalog.Featured()
	zerolog.Ctx(c).
		Trace().
		Str(log.KeyTag, "ProductService FindFeaturedProducts").
		Int(log.KeyProductsCount, len(products)).
		Msg("found featured products")

	return products
}

func (svc *ProductService) FindCategories(c context.Context) []response.Category {
	return catalog.Categories
}
