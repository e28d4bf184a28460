package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/internal/validate"
	"github.com/Alturino/storefront/product/internal/controller"
	"github.com/Alturino/storefront/product/internal/service"
	"github.com/Alturino/storefront/product/pkg/catalog"
)

func TestFetchProducts(t *testing.T) {
	products, err := catalog.SampleProducts()
	require.NoError(t, err)

	router := mux.NewRouter()
	controller.AttachProductController(router, service.NewProductService(catalog.New(products)), validate.New())
	server := httptest.NewServer(router)
	defer server.Close()

	fetched, err := catalog.FetchProducts(context.Background(), server.URL+"/")
	require.NoError(t, err)
	require.Len(t, fetched, len(products))
	for i := range products {
		assert.Equal(t, products[i].ID, fetched[i].ID)
		assert.True(t, products[i].Price.Equal(fetched[i].Price))
	}

	filtered := catalog.Query{Search: "premium", Category: "electronics"}.Apply(fetched)
	require.Len(t, filtered, 1)
	assert.Equal(t, "1", filtered[0].ID)
}

func TestFetchProductsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := catalog.FetchProducts(context.Background(), server.URL)

	assert.ErrorIs(t, err, catalog.ErrRemoteCatalog)
}
