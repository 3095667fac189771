package controllers

import (
	"net/http"

	"github.com/angelmondragon/rocketshoes-cart/api/responses"
	"github.com/angelmondragon/rocketshoes-cart/internal/notifications"
	pkgerrors "github.com/angelmondragon/rocketshoes-cart/pkg/errors"
	"github.com/angelmondragon/rocketshoes-cart/pkg/logger"
)

type notificationDrainer interface {
	Drain() []notifications.Notification
}

// NotificationsDrain returns and clears pending cart notifications.
func NotificationsDrain(feed notificationDrainer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if feed == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notification feed unavailable"))
			return
		}
		responses.WriteSuccess(w, feed.Drain())
	}
}
