package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/notification/pkg/notification"
)

func TestDrainNotifications(t *testing.T) {
	hub := notification.NewHub(notification.DefaultCapacity)
	router := mux.NewRouter()
	AttachNotificationController(router, hub)
	hub.Notify(context.Background(), notification.Success("Added to cart", "Designer Leather Bag added to your cart"))

	body := struct {
		StatusCode int `json:"statusCode"`
		Data       struct {
			Notifications []notification.Notification `json:"notifications"`
		} `json:"data"`
	}{}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	require.Len(t, body.Data.Notifications, 1)
	assert.Equal(t, "Added to cart", body.Data.Notifications[0].Title)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Empty(t, body.Data.Notifications)
}
