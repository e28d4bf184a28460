package cmd

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/notification/internal/controller"
	"github.com/Alturino/storefront/notification/pkg/notification"
)

func AttachNotificationService(c context.Context, router *mux.Router, hub *notification.Hub) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppNotificationService).
		Str(log.KeyTag, "main AttachNotificationService").
		Str(log.KeyProcess, "initializing notification controller").
		Logger()

	logger.Info().Msg("initializing notification controller")
	controller.AttachNotificationController(router, hub)
	logger.Info().Msg("initialized notification controller")
}
