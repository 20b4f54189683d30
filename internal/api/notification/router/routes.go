// Package router đăng ký các route thuộc domain Notification: feed, preference.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"meta_learning/internal/api/middleware"
	notifhdl "meta_learning/internal/api/notification/handler"
	apirouter "meta_learning/internal/api/router"
)

// Register đăng ký tất cả route notification lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	feedHandler, err := notifhdl.NewNotificationFeedHandler()
	if err != nil {
		return fmt.Errorf("create notification feed handler: %w", err)
	}

	readMiddleware := middleware.AuthMiddleware("Notifications.Read")
	updateMiddleware := middleware.AuthMiddleware("Notifications.Update")

	apirouter.RegisterRouteWithMiddleware(v1, "/notifications", "GET", "/", []fiber.Handler{readMiddleware}, feedHandler.GetFeed)
	apirouter.RegisterRouteWithMiddleware(v1, "/notifications", "GET", "/counts", []fiber.Handler{readMiddleware}, feedHandler.GetUnseenCounts)
	apirouter.RegisterRouteWithMiddleware(v1, "/notifications", "PUT", "/mark-seen", []fiber.Handler{updateMiddleware}, feedHandler.MarkSeen)
	apirouter.RegisterRouteWithMiddleware(v1, "/notifications", "PUT", "/mark-read", []fiber.Handler{updateMiddleware}, feedHandler.MarkRead)

	preferenceHandler, err := notifhdl.NewNotificationPreferenceHandler()
	if err != nil {
		return fmt.Errorf("create notification preference handler: %w", err)
	}

	preferenceMiddleware := middleware.AuthMiddleware("NotificationPreferences.Update")

	apirouter.RegisterRouteWithMiddleware(v1, "/notification-preferences", "GET", "/:courseId", []fiber.Handler{readMiddleware}, preferenceHandler.GetForCourse)
	apirouter.RegisterRouteWithMiddleware(v1, "/notification-preferences", "PUT", "/:courseId/channel", []fiber.Handler{preferenceMiddleware}, preferenceHandler.UpdateChannel)
	apirouter.RegisterRouteWithMiddleware(v1, "/notification-preferences", "PUT", "/:courseId/app", []fiber.Handler{preferenceMiddleware}, preferenceHandler.ToggleApp)

	return nil
}
