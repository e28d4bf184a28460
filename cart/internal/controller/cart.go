package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/otel"
	"github.com/Alturino/storefront/cart/internal/service"
	"github.com/Alturino/storefront/cart/pkg/request"
	inErrors "github.com/Alturino/storefront/internal/errors"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/notification/pkg/notification"
)

type CartController struct {
	service  *service.CartService
	notifier notification.Notifier
	validate *validator.Validate
}

func AttachCartController(
	mux *mux.Router,
	service *service.CartService,
	notifier notification.Notifier,
	validate *validator.Validate,
) {
	controller := CartController{service: service, notifier: notifier, validate: validate}

	router := mux.PathPrefix("/carts").Subrouter()
	router.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	router.HandleFunc("", controller.ClearCart).Methods(http.MethodDelete)
	router.HandleFunc("/items", controller.AddItem).Methods(http.MethodPost)
	router.HandleFunc("/items/{productId}", controller.UpdateQuantity).Methods(http.MethodPut)
	router.HandleFunc("/items/{productId}", controller.RemoveItem).Methods(http.MethodDelete)
}

func (t CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	inHttp.WriteSuccess(c, w, http.StatusOK, "found cart", map[string]interface{}{
		"cart": t.service.FindCart(c),
	})
}

func (t CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddItem").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Trace().Msg("decoding requestbody")
	reqBody := request.AddItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Trace().Msg("validating request body")
	if err := t.validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("validated request body")

	c = logger.WithContext(c)
	product, cart, err := t.service.AddItem(c, reqBody)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, inErrors.ErrInvalidQuantity):
			statusCode = http.StatusBadRequest
		}
		inHttp.WriteFailed(c, w, statusCode, err)
		return
	}

	t.notifier.Notify(c, notification.Success("Added to cart", product.Name+" added to your cart"))
	inHttp.WriteSuccess(c, w, http.StatusOK, "added item to cart", map[string]interface{}{
		"cart": cart,
	})
}

func (t CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateQuantity")
	defer span.End()

	productId := mux.Vars(r)["productId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateQuantity").
		Str(log.KeyProductID, productId).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Trace().Msg("decoding requestbody")
	reqBody := request.UpdateQuantity{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	if err := t.validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	c = logger.WithContext(c)
	cart, changed := t.service.UpdateQuantity(c, productId, reqBody)
	message := "updated cart item"
	if !changed {
		message = "cart unchanged"
	}

	inHttp.WriteSuccess(c, w, http.StatusOK, message, map[string]interface{}{
		"cart": cart,
	})
}

func (t CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveItem")
	defer span.End()

	productId := mux.Vars(r)["productId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveItem").
		Str(log.KeyProductID, productId).
		Logger()

	c = logger.WithContext(c)
	cart, changed := t.service.RemoveItem(c, productId)
	if !changed {
		inHttp.WriteSuccess(c, w, http.StatusOK, "cart unchanged", map[string]interface{}{
			"cart": cart,
		})
		return
	}

	t.notifier.Notify(c, notification.Success("Removed from cart", "The item was removed from your cart"))
	inHttp.WriteSuccess(c, w, http.StatusOK, "removed cart item", map[string]interface{}{
		"cart": cart,
	})
}

func (t CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	cart := t.service.ClearCart(c)

	t.notifier.Notify(c, notification.Success("Cart cleared", "All items were removed from your cart"))
	inHttp.WriteSuccess(c, w, http.StatusOK, "cleared cart", map[string]interface{}{
		"cart": cart,
	})
}
