// Package router đăng ký các route thuộc domain Content: Courses, Blocks, Assets, Libraries, Enrollments.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	contenthdl "meta_learning/internal/api/content/handler"
	"meta_learning/internal/api/middleware"
	apirouter "meta_learning/internal/api/router"
)

// Register đăng ký tất cả route content lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	courseHandler, err := contenthdl.NewCourseHandler()
	if err != nil {
		return fmt.Errorf("create course handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/content/courses", courseHandler, apirouter.ReadWriteConfig, "Courses")

	blockHandler, err := contenthdl.NewCourseBlockHandler()
	if err != nil {
		return fmt.Errorf("create course block handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/content/blocks", blockHandler, apirouter.ReadWriteConfig, "CourseBlocks")
	blockReadMiddleware := middleware.AuthMiddleware("CourseBlocks.Read")
	apirouter.RegisterRouteWithMiddleware(v1, "/content/blocks", "GET", "/tree/:id", []fiber.Handler{blockReadMiddleware}, blockHandler.GetTree)
	apirouter.RegisterRouteWithMiddleware(v1, "/content/blocks", "GET", "/children/:id", []fiber.Handler{blockReadMiddleware}, blockHandler.GetChildren)

	assetHandler, err := contenthdl.NewStaticAssetHandler()
	if err != nil {
		return fmt.Errorf("create static asset handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/content/assets", assetHandler, apirouter.ReadWriteConfig, "StaticAssets")

	libraryHandler, err := contenthdl.NewContentLibraryHandler()
	if err != nil {
		return fmt.Errorf("create content library handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/content/libraries", libraryHandler, apirouter.ReadWriteConfig, "ContentLibraries")
	librarySyncMiddleware := middleware.AuthMiddleware("ContentLibraries.Sync")
	apirouter.RegisterRouteWithMiddleware(v1, "/content/libraries", "POST", "/:id/sync-course/:courseId", []fiber.Handler{librarySyncMiddleware}, libraryHandler.SyncCourse)

	libraryBlockHandler, err := contenthdl.NewLibraryBlockHandler()
	if err != nil {
		return fmt.Errorf("create library block handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/content/library-blocks", libraryBlockHandler, apirouter.ReadWriteConfig, "LibraryBlocks")

	enrollmentHandler, err := contenthdl.NewEnrollmentHandler()
	if err != nil {
		return fmt.Errorf("create enrollment handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/content/enrollments", enrollmentHandler, apirouter.ReadWriteConfig, "Enrollments")

	return nil
}
