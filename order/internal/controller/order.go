package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/auth"
	inErrors "github.com/Alturino/storefront/internal/errors"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/order/internal/otel"
	"github.com/Alturino/storefront/order/internal/service"
	"github.com/Alturino/storefront/order/pkg/request"
)

type OrderController struct {
	service *service.CheckoutService
}

// AttachOrderController mounts the order routes behind authMiddleware.
func AttachOrderController(
	mux *mux.Router,
	service *service.CheckoutService,
	authMiddleware mux.MiddlewareFunc,
) {
	controller := OrderController{service: service}

	router := mux.PathPrefix("/orders").Subrouter()
	router.Use(authMiddleware)
	router.HandleFunc("/checkout", controller.Checkout).Methods(http.MethodPost)
	router.HandleFunc("/{orderId}", controller.FindOrderById).Methods(http.MethodGet)
}

func (o OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController Checkout")
	defer span.End()

	userId := auth.UserIdFromContext(c)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController Checkout").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	form := request.Checkout{}
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	c = logger.WithContext(c)
	order, err := o.service.Checkout(c, userId, form)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrMissingIdentity):
			statusCode = http.StatusUnauthorized
		case errors.Is(err, service.ErrInvalidCheckout),
			errors.Is(err, service.ErrPaymentDetailsRequired):
			statusCode = http.StatusBadRequest
		case errors.Is(err, service.ErrEmptyCart):
			statusCode = http.StatusConflict
		}
		inHttp.WriteFailed(c, w, statusCode, err)
		return
	}

	inHttp.WriteSuccess(c, w, http.StatusCreated, "placed order", map[string]interface{}{
		"order": order,
		"link":  "/orders/" + order.ID.String(),
	})
}

func (o OrderController) FindOrderById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrderById").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating orderId").Logger()
	logger.Trace().Msg("validating orderId")
	orderId, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		err = fmt.Errorf("failed validating orderId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Str(log.KeyOrderID, orderId.String()).Logger()
	logger.Trace().Msg("validated orderId")

	c = logger.WithContext(c)
	order, err := o.service.FindOrderById(c, request.FindOrderById{
		UserId:  auth.UserIdFromContext(c),
		OrderId: orderId,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, service.ErrMissingIdentity):
			statusCode = http.StatusUnauthorized
		}
		inHttp.WriteFailed(c, w, statusCode, err)
		return
	}

	inHttp.WriteSuccess(c, w, http.StatusOK, "found order", map[string]interface{}{
		"order": order,
	})
}
