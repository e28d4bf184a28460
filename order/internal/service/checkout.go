package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	cartResponse "github.com/Alturino/storefront/cart/pkg/response"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/metric"
	"github.com/Alturino/storefront/notification/pkg/notification"
	"github.com/Alturino/storefront/order/internal/otel"
	"github.com/Alturino/storefront/order/internal/repository"
	"github.com/Alturino/storefront/order/pkg/request"
	"github.com/Alturino/storefront/order/pkg/response"
)

var (
	ErrInvalidCheckout        = errors.New("invalid checkout details")
	ErrMissingIdentity        = errors.New("authentication required")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrPaymentDetailsRequired = errors.New("payment information required")
	ErrOrderNotFound          = repository.ErrOrderNotFound
)

// CartStore is the part of the cart the checkout reads and settles.
// SettleItems removes exactly the ordered quantities, so items added while
// the order is being submitted survive the checkout.
type CartStore interface {
	Items() []cartResponse.CartItem
	SettleItems(c context.Context, ordered []cartResponse.CartItem)
}

type OrderRepository interface {
	SubmitOrder(c context.Context, order response.Order) (response.Order, error)
	FindOrderById(c context.Context, param request.FindOrderById) (response.Order, error)
}

type CheckoutService struct {
	cart     CartStore
	orders   OrderRepository
	notifier notification.Notifier
	validate *validator.Validate
	metrics  *metric.Metrics
}

func NewCheckoutService(
	cart CartStore,
	orders OrderRepository,
	notifier notification.Notifier,
	validate *validator.Validate,
	metrics *metric.Metrics,
) *CheckoutService {
	return &CheckoutService{
		cart:     cart,
		orders:   orders,
		notifier: notifier,
		validate: validate,
		metrics:  metrics,
	}
}

// Checkout turns the current cart into a pending order for userId. The cart
// is cleared only once the order has been stored.
func (svc *CheckoutService) Checkout(
	c context.Context,
	userId uuid.UUID,
	form request.Checkout,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutService Checkout").
		Str(log.KeyUserID, userId.String()).
		Logger()

	fail := func(err error, n notification.Notification) (response.Order, error) {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		svc.notifier.Notify(c, n)
		svc.metrics.Checkouts.WithLabelValues(metric.ResultFailed).Inc()
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "validating checkout form").Logger()
	logger.Trace().Msg("validating checkout form")
	if err := svc.validate.StructCtx(c, form); err != nil {
		err = fmt.Errorf("failed validating checkout form with error=%w", errors.Join(ErrInvalidCheckout, err))
		return fail(err, notification.Failure("Invalid checkout details", "Please review your shipping and payment details"))
	}
	logger.Trace().Msg("validated checkout form")

	if userId == uuid.Nil {
		err := fmt.Errorf("failed checking out with error=%w", ErrMissingIdentity)
		return fail(err, notification.Failure("Authentication required", "Please login to complete your purchase"))
	}

	items := svc.cart.Items()
	if len(items) == 0 {
		err := fmt.Errorf("failed checking out with error=%w", ErrEmptyCart)
		return fail(err, notification.Failure("Empty cart", "Your cart is empty. Add items before checking out."))
	}

	if form.RequiresCard() && !form.HasCard() {
		err := fmt.Errorf("failed checking out paymentMethod=%s with error=%w", form.PaymentMethod, ErrPaymentDetailsRequired)
		return fail(err, notification.Failure("Payment information required", "Please enter your complete card details"))
	}

	logger = logger.With().Str(log.KeyProcess, "submitting order").Logger()
	order, err := newOrder(userId, form.PaymentMethod, items)
	if err != nil {
		err = fmt.Errorf("failed creating order with error=%w", err)
		return fail(err, notification.Failure("Invalid checkout details", "Please review the quantities in your cart"))
	}
	logger.Trace().
		Str(log.KeyOrderID, order.ID.String()).
		Str(log.KeyCartTotal, order.Total.String()).
		Msg("submitting order")
	submitted, err := svc.orders.SubmitOrder(logger.WithContext(c), order)
	if err != nil {
		err = fmt.Errorf("failed submitting order with error=%w", err)
		return fail(err, notification.Failure("Checkout failed", "There was an error processing your order. Please try again."))
	}
	logger.Info().Str(log.KeyOrderID, submitted.ID.String()).Msg("submitted order")

	svc.cart.SettleItems(logger.WithContext(c), items)
	svc.notifier.Notify(c, notification.Success(
		"Order placed successfully!",
		fmt.Sprintf("Your order #%s has been placed.", submitted.ShortId()),
	))
	svc.metrics.Checkouts.WithLabelValues(metric.ResultSuccess).Inc()

	return submitted, nil
}

func (svc *CheckoutService) FindOrderById(
	c context.Context,
	param request.FindOrderById,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService FindOrderById")
	defer span.End()

	if param.UserId == uuid.Nil {
		err := fmt.Errorf("failed finding order with error=%w", ErrMissingIdentity)
		inErrors.HandleError(err, span)
		return response.Order{}, err
	}
	return svc.orders.FindOrderById(c, param)
}

// newOrder snapshots the cart into a pending order. Total is computed from
// the same snapshot as the items.
func newOrder(userId uuid.UUID, paymentMethod string, items []cartResponse.CartItem) (response.Order, error) {
	orderId := uuid.New()
	total := decimal.Zero
	orderItems := make([]response.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 || item.Quantity > math.MaxInt32 {
			return response.Order{}, fmt.Errorf(
				"productId=%s quantity=%d out of range: %w",
				item.Product.ID,
				item.Quantity,
				ErrInvalidCheckout,
			)
		}
		total = total.Add(item.LineTotal())
		orderItems = append(orderItems, response.OrderItem{
			ID:        uuid.New(),
			OrderId:   orderId,
			ProductId: item.Product.ID,
			Quantity:  int32(item.Quantity),
			Price:     item.Product.Price,
		})
	}
	return response.Order{
		ID:            orderId,
		UserId:        userId,
		Status:        response.StatusPending,
		PaymentMethod: paymentMethod,
		Total:         total,
		OrderItems:    orderItems,
	}, nil
}
