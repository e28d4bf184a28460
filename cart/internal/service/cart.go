package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/otel"
	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/cart/pkg/store"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	productResponse "github.com/Alturino/storefront/product/pkg/response"
)

var ErrProductNotFound = errors.New("product not found")

// ProductFinder resolves a product id to the product snapshot stored in the
// cart.
type ProductFinder interface {
	FindById(id string) (productResponse.Product, bool)
}

type CartService struct {
	store    *store.Store
	products ProductFinder
}

func NewCartService(store *store.Store, products ProductFinder) *CartService {
	return &CartService{store: store, products: products}
}

func (svc *CartService) FindCart(c context.Context) response.Cart {
	_, span := otel.Tracer.Start(c, "CartService FindCart")
	defer span.End()

	return svc.store.Summary()
}

// AddItem returns the added product alongside the updated cart. Quantity
// defaults to one.
func (svc *CartService) AddItem(
	c context.Context,
	param request.AddItem,
) (productResponse.Product, response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	quantity := 1
	if param.Quantity != nil {
		quantity = *param.Quantity
	}

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyProductID, param.ProductId).
		Int(log.KeyCartItemQuantity, quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product by id").Logger()
	logger.Trace().Msg("finding product by id")
	product, ok := svc.products.FindById(param.ProductId)
	if !ok {
		err := fmt.Errorf("failed finding productId=%s with error=%w", param.ProductId, ErrProductNotFound)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, response.Cart{}, err
	}
	logger.Trace().Msg("found product by id")

	logger = logger.With().Str(log.KeyProcess, "adding item to cart").Logger()
	logger.Trace().Msg("adding item to cart")
	c = logger.WithContext(c)
	if err := svc.store.AddItem(c, product, quantity); err != nil {
		err = fmt.Errorf("failed adding item to cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, response.Cart{}, err
	}
	logger.Info().Int(log.KeyCartItemCount, svc.store.ItemCount()).Msg("added item to cart")

	return product, svc.store.Summary(), nil
}

// UpdateQuantity reports whether the cart changed. Updating a product that
// is not in the cart leaves it untouched.
func (svc *CartService) UpdateQuantity(
	c context.Context,
	productId string,
	param request.UpdateQuantity,
) (response.Cart, bool) {
	c, span := otel.Tracer.Start(c, "CartService UpdateQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateQuantity").
		Str(log.KeyProductID, productId).
		Int(log.KeyCartItemQuantity, *param.Quantity).
		Str(log.KeyProcess, "updating cart item quantity").
		Logger()

	logger.Trace().Msg("updating cart item quantity")
	c = logger.WithContext(c)
	if !svc.store.UpdateQuantity(c, productId, *param.Quantity) {
		logger.Trace().Msg("product not in cart, cart unchanged")
		return svc.store.Summary(), false
	}
	logger.Info().Msg("updated cart item quantity")

	return svc.store.Summary(), true
}

// RemoveItem reports whether the cart changed.
func (svc *CartService) RemoveItem(c context.Context, productId string) (response.Cart, bool) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeyProductID, productId).
		Str(log.KeyProcess, "removing cart item").
		Logger()

	logger.Trace().Msg("removing cart item")
	c = logger.WithContext(c)
	if !svc.store.RemoveItem(c, productId) {
		logger.Trace().Msg("product not in cart, cart unchanged")
		return svc.store.Summary(), false
	}
	logger.Info().Msg("removed cart item")

	return svc.store.Summary(), true
}

func (svc *CartService) ClearCart(c context.Context) response.Cart {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyProcess, "clearing cart").
		Logger()

	logger.Trace().Msg("clearing cart")
	svc.store.ClearCart(logger.WithContext(c))
	logger.Info().Msg("cleared cart")

	return svc.store.Summary()
}
