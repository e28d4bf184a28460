package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/cart/pkg/store"
	"github.com/Alturino/storefront/internal/auth"
	"github.com/Alturino/storefront/internal/metric"
	"github.com/Alturino/storefront/internal/middleware"
	"github.com/Alturino/storefront/internal/validate"
	"github.com/Alturino/storefront/notification/pkg/notification"
	"github.com/Alturino/storefront/order/internal/repository"
	"github.com/Alturino/storefront/order/internal/service"
	"github.com/Alturino/storefront/order/pkg/response"
	"github.com/Alturino/storefront/product/pkg/catalog"
)

const secretKey = "test-secret"

const checkoutBody = `{
	"name": "Jane Doe",
	"email": "jane@example.com",
	"address": "221B Baker Street",
	"city": "London",
	"state": "LN",
	"zipCode": "10001",
	"paymentMethod": "credit",
	"cardNumber": "4242 4242 4242 4242",
	"expiryDate": "12/29",
	"cvc": "123"
}`

type orderResponse struct {
	StatusCode int `json:"statusCode"`
	Data       struct {
		Order response.Order `json:"order"`
	} `json:"data"`
}

func setup(t *testing.T) (*mux.Router, *store.Store) {
	t.Helper()
	c := context.Background()

	products, err := catalog.SampleProducts()
	require.NoError(t, err)
	cartStore := store.New(c, store.NewMemoryStorage(), "cart")
	require.NoError(t, cartStore.AddItem(c, products[0], 2))

	svc := service.NewCheckoutService(
		cartStore,
		repository.NewMemoryRepository(),
		notification.NewHub(notification.DefaultCapacity),
		validate.New(),
		metric.New(),
	)
	router := mux.NewRouter()
	AttachOrderController(router, svc, middleware.Auth(auth.NewVerifier(secretKey)))
	return router, cartStore
}

func do(t *testing.T, router *mux.Router, method, path, token, body string) (int, orderResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	resp := orderResponse{}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	return recorder.Code, resp
}

func TestCheckoutAndFindOrder(t *testing.T) {
	router, cartStore := setup(t)
	userId := uuid.New()
	token, err := auth.NewVerifier(secretKey).IssueToken(userId, time.Hour)
	require.NoError(t, err)

	statusCode, resp := do(t, router, http.MethodPost, "/orders/checkout", token, checkoutBody)
	require.Equal(t, http.StatusCreated, statusCode)
	assert.Equal(t, userId, resp.Data.Order.UserId)
	assert.Equal(t, "499.98", resp.Data.Order.Total.StringFixed(2))
	assert.Equal(t, 0, cartStore.ItemCount())

	orderId := resp.Data.Order.ID.String()
	statusCode, resp = do(t, router, http.MethodGet, "/orders/"+orderId, token, "")
	require.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, orderId, resp.Data.Order.ID.String())

	otherToken, err := auth.NewVerifier(secretKey).IssueToken(uuid.New(), time.Hour)
	require.NoError(t, err)
	statusCode, _ = do(t, router, http.MethodGet, "/orders/"+orderId, otherToken, "")
	assert.Equal(t, http.StatusNotFound, statusCode)

	statusCode, _ = do(t, router, http.MethodPost, "/orders/checkout", token, checkoutBody)
	assert.Equal(t, http.StatusConflict, statusCode)
}

func TestCheckoutRejections(t *testing.T) {
	token, err := auth.NewVerifier(secretKey).IssueToken(uuid.New(), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name               string
		token              string
		path               string
		method             string
		body               string
		expectedStatusCode int
	}{
		{
			name:               "given no token should be unauthorized",
			path:               "/orders/checkout",
			method:             http.MethodPost,
			body:               checkoutBody,
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "given forged token should be unauthorized",
			token:              "not.a.token",
			path:               "/orders/checkout",
			method:             http.MethodPost,
			body:               checkoutBody,
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "given missing card details should be bad request",
			token:              token,
			path:               "/orders/checkout",
			method:             http.MethodPost,
			body:               strings.Replace(checkoutBody, `"cvc": "123"`, `"cvc": ""`, 1),
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "given malformed body should be bad request",
			token:              token,
			path:               "/orders/checkout",
			method:             http.MethodPost,
			body:               `{"name":`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "given malformed order id should be bad request",
			token:              token,
			path:               "/orders/not-a-uuid",
			method:             http.MethodGet,
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, cartStore := setup(t)

			statusCode, _ := do(t, router, tt.method, tt.path, tt.token, tt.body)

			assert.Equal(t, tt.expectedStatusCode, statusCode)
			assert.Equal(t, 2, cartStore.ItemCount())
		})
	}
}
