package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/storefront/internal/errors"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/product/internal/otel"
	"github.com/Alturino/storefront/product/internal/service"
	"github.com/Alturino/storefront/product/pkg/catalog"
	"github.com/Alturino/storefront/product/pkg/request"
)

type ProductController struct {
	service  *service.ProductService
	validate *validator.Validate
}

func AttachProductController(
	mux *mux.Router,
	service *service.ProductService,
	validate *validator.Validate,
) {
	controller := ProductController{service: service, validate: validate}

	router := mux.PathPrefix("/products").Subrouter()
	router.HandleFunc("", controller.FindProducts).Methods(http.MethodGet)
	router.HandleFunc("/featured", controller.FindFeaturedProducts).Methods(http.MethodGet)
	router.HandleFunc("/categories", controller.FindCategories).Methods(http.MethodGet)
	router.HandleFunc("/{productId}", controller.FindProductById).Methods(http.MethodGet)
}

func (p ProductController) FindProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProducts").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating query").Logger()
	logger.Trace().Msg("validating query")
	query := catalog.ParseQuery(r.URL.Query())
	param := request.FindProducts{Search: query.Search, Category: query.Category}
	if err := p.validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating query with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("validated query")

	c = logger.WithContext(c)
	products := p.service.FindProducts(c, param)

	inHttp.WriteSuccess(c, w, http.StatusOK, "found products", map[string]interface{}{
		"products": products,
		"query":    query,
		"link":     "/products?" + query.Values().Encode(),
	})
}

func (p ProductController) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductById")
	defer span.End()

	param := request.FindProductById{ID: mux.Vars(r)["productId"]}
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProductById").
		Str(log.KeyProductID, param.ID).
		Logger()

	c = logger.WithContext(c)
	product, err := p.service.FindProductById(c, param)
	if err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusInternalServerError
		if errors.Is(err, service.ErrProductNotFound) {
			statusCode = http.StatusNotFound
		}
		inHttp.WriteFailed(c, w, statusCode, err)
		return
	}

	inHttp.WriteSuccess(c, w, http.StatusOK, "found product", map[string]interface{}{
		"product": product,
	})
}

func (p ProductController) FindFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindFeaturedProducts")
	defer span.End()

	products := p.service.FindFeaturedProducts(c)
	inHttp.WriteSuccess(c, w, http.StatusOK, "found featured products", map[string]interface{}{
		"products": products,
	})
}

func (p ProductController) FindCategories(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindCategories")
	defer span.End()

	inHttp.WriteSuccess(c, w, http.StatusOK, "found categories", map[string]interface{}{
		"categories": p.service.FindCategories(c),
	})
}
