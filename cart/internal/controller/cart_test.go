package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/cart/internal/service"
	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/cart/pkg/store"
	"github.com/Alturino/storefront/internal/validate"
	"github.com/Alturino/storefront/notification/pkg/notification"
	"github.com/Alturino/storefront/product/pkg/catalog"
)

type cartResponse struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       struct {
		Cart response.Cart `json:"cart"`
	} `json:"data"`
}

func setup(t *testing.T) (*mux.Router, *store.Store, *notification.Hub) {
	t.Helper()
	products, err := catalog.SampleProducts()
	require.NoError(t, err)

	cartStore := store.New(context.Background(), store.NewMemoryStorage(), "cart")
	hub := notification.NewHub(notification.DefaultCapacity)
	router := mux.NewRouter()
	AttachCartController(router, service.NewCartService(cartStore, catalog.New(products)), hub, validate.New())
	return router, cartStore, hub
}

func do(t *testing.T, router *mux.Router, method, path, body string) (int, cartResponse) {
	t.Helper()
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))

	resp := cartResponse{}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, recorder.Code, resp.StatusCode)
	return recorder.Code, resp
}

func TestAddItem(t *testing.T) {
	tests := []struct {
		name               string
		body               string
		expectedStatusCode int
		expectedItemCount  int
		expectedNotified   bool
	}{
		{
			name:               "given quantity should add that many",
			body:               `{"productId":"3","quantity":2}`,
			expectedStatusCode: http.StatusOK,
			expectedItemCount:  2,
			expectedNotified:   true,
		},
		{
			name:               "given no quantity should add one",
			body:               `{"productId":"3"}`,
			expectedStatusCode: http.StatusOK,
			expectedItemCount:  1,
			expectedNotified:   true,
		},
		{
			name:               "given out of stock product should still add",
			body:               `{"productId":"8","quantity":1}`,
			expectedStatusCode: http.StatusOK,
			expectedItemCount:  1,
			expectedNotified:   true,
		},
		{
			name:               "given zero quantity should be rejected",
			body:               `{"productId":"3","quantity":0}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "given unknown product should return not found",
			body:               `{"productId":"404","quantity":1}`,
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "given missing product id should be rejected",
			body:               `{"quantity":1}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "given malformed body should be rejected",
			body:               `{"productId":`,
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, cartStore, hub := setup(t)

			statusCode, _ := do(t, router, http.MethodPost, "/carts/items", tt.body)

			assert.Equal(t, tt.expectedStatusCode, statusCode)
			assert.Equal(t, tt.expectedItemCount, cartStore.ItemCount())
			notifications := hub.Drain()
			if tt.expectedNotified {
				require.Len(t, notifications, 1)
				assert.Equal(t, "Added to cart", notifications[0].Title)
				assert.Contains(t, notifications[0].Description, "added to your cart")
				return
			}
			assert.Empty(t, notifications)
		})
	}
}

func TestCartLifecycle(t *testing.T) {
	router, cartStore, hub := setup(t)

	_, resp := do(t, router, http.MethodPost, "/carts/items", `{"productId":"1","quantity":2}`)
	assert.Equal(t, 2, resp.Data.Cart.ItemCount)
	_, resp = do(t, router, http.MethodPost, "/carts/items", `{"productId":"3"}`)
	assert.Equal(t, 3, resp.Data.Cart.ItemCount)

	statusCode, resp := do(t, router, http.MethodPut, "/carts/items/1", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, 6, resp.Data.Cart.ItemCount)

	statusCode, resp = do(t, router, http.MethodDelete, "/carts/items/3", "")
	require.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, 5, resp.Data.Cart.ItemCount)
	assert.Equal(t, "1249.95", resp.Data.Cart.Subtotal.StringFixed(2))
	assert.True(t, resp.Data.Cart.Subtotal.Equal(resp.Data.Cart.EstimatedTotal))
	assert.Equal(t, response.CalculatedAtCheckout, resp.Data.Cart.Shipping)

	statusCode, resp = do(t, router, http.MethodGet, "/carts", "")
	require.Equal(t, http.StatusOK, statusCode)
	require.Len(t, resp.Data.Cart.Items, 1)
	assert.Equal(t, "1", resp.Data.Cart.Items[0].Product.ID)
	assert.Equal(t, 5, resp.Data.Cart.Items[0].Quantity)

	statusCode, resp = do(t, router, http.MethodPut, "/carts/items/1", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, statusCode)
	assert.Empty(t, resp.Data.Cart.Items)
	assert.Equal(t, 0, cartStore.ItemCount())

	_, _ = do(t, router, http.MethodPost, "/carts/items", `{"productId":"2"}`)
	statusCode, resp = do(t, router, http.MethodDelete, "/carts", "")
	require.Equal(t, http.StatusOK, statusCode)
	assert.Empty(t, resp.Data.Cart.Items)
	assert.True(t, resp.Data.Cart.Subtotal.IsZero())

	titles := []string{}
	for _, n := range hub.Drain() {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"Added to cart", "Added to cart", "Removed from cart", "Added to cart", "Cart cleared"}, titles)
}

func TestAbsentCartItemIsNoop(t *testing.T) {
	tests := []struct {
		name   string
		method string
		body   string
	}{
		{name: "given update of absent item should leave cart unchanged", method: http.MethodPut, body: `{"quantity":2}`},
		{name: "given remove of absent item should leave cart unchanged", method: http.MethodDelete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, cartStore, hub := setup(t)
			_, _ = do(t, router, http.MethodPost, "/carts/items", `{"productId":"2","quantity":3}`)
			hub.Drain()

			statusCode, resp := do(t, router, tt.method, "/carts/items/1", tt.body)

			assert.Equal(t, http.StatusOK, statusCode)
			assert.Equal(t, "success", resp.Status)
			assert.Equal(t, "cart unchanged", resp.Message)
			require.Len(t, resp.Data.Cart.Items, 1)
			assert.Equal(t, 3, resp.Data.Cart.ItemCount)
			assert.Equal(t, 3, cartStore.ItemCount())
			assert.Empty(t, hub.Drain())
		})
	}
}

func TestQuantityAboveLimitIsRejected(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "given add above limit should return bad request", method: http.MethodPost, path: "/carts/items", body: `{"productId":"1","quantity":2147483648}`},
		{name: "given update above limit should return bad request", method: http.MethodPut, path: "/carts/items/1", body: `{"quantity":2147483648}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, cartStore, _ := setup(t)
			_, _ = do(t, router, http.MethodPost, "/carts/items", `{"productId":"1"}`)

			statusCode, _ := do(t, router, tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, statusCode)
			assert.Equal(t, 1, cartStore.ItemCount())
		})
	}
}

func TestUpdateQuantityRequiresQuantity(t *testing.T) {
	router, _, _ := setup(t)
	_, _ = do(t, router, http.MethodPost, "/carts/items", `{"productId":"1"}`)

	statusCode, _ := do(t, router, http.MethodPut, "/carts/items/1", `{}`)

	assert.Equal(t, http.StatusBadRequest, statusCode)
}
