// Package router đăng ký các route thuộc domain Clipboard.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	clipboardhdl "meta_learning/internal/api/clipboard/handler"
	"meta_learning/internal/api/middleware"
	apirouter "meta_learning/internal/api/router"
)

// Register đăng ký tất cả route clipboard lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	clipboardHandler, err := clipboardhdl.NewClipboardHandler()
	if err != nil {
		return fmt.Errorf("create clipboard handler: %w", err)
	}

	readMiddleware := middleware.AuthMiddleware("Clipboard.Read")
	copyMiddleware := middleware.AuthMiddleware("Clipboard.Copy")
	pasteMiddleware := middleware.AuthMiddleware("Clipboard.Paste")

	apirouter.RegisterRouteWithMiddleware(v1, "/clipboard", "GET", "/", []fiber.Handler{readMiddleware}, clipboardHandler.GetEntry)
	apirouter.RegisterRouteWithMiddleware(v1, "/clipboard", "POST", "/copy", []fiber.Handler{copyMiddleware}, clipboardHandler.Copy)
	apirouter.RegisterRouteWithMiddleware(v1, "/clipboard", "POST", "/paste", []fiber.Handler{pasteMiddleware}, clipboardHandler.Paste)

	return nil
}
