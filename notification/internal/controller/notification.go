package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/notification/internal/otel"
	"github.com/Alturino/storefront/notification/pkg/notification"
)

type NotificationController struct {
	hub *notification.Hub
}

func AttachNotificationController(mux *mux.Router, hub *notification.Hub) {
	controller := NotificationController{hub: hub}

	router := mux.PathPrefix("/notifications").Subrouter()
	router.HandleFunc("", controller.DrainNotifications).Methods(http.MethodGet)
}

func (n NotificationController) DrainNotifications(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "NotificationController DrainNotifications")
	defer span.End()

	notifications := n.hub.Drain()
	zerolog.Ctx(c).
		Trace().
		Str(log.KeyTag, "NotificationController DrainNotifications").
		Int("notificationsCount", len(notifications)).
		Msg("drained notifications")

	inHttp.WriteSuccess(c, w, http.StatusOK, "drained notifications", map[string]interface{}{
		"notifications": notifications,
	})
}
