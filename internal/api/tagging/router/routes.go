// Package router đăng ký các route thuộc domain Tagging: Taxonomies, Tags, ObjectTags.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"meta_learning/internal/api/middleware"
	apirouter "meta_learning/internal/api/router"
	tagginghdl "meta_learning/internal/api/tagging/handler"
)

// Register đăng ký tất cả route tagging lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	taxonomyHandler, err := tagginghdl.NewTaxonomyHandler()
	if err != nil {
		return fmt.Errorf("create taxonomy handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/tagging/taxonomies", taxonomyHandler, apirouter.ReadWriteConfig, "Taxonomies")
	taxonomyReadMiddleware := middleware.AuthMiddleware("Taxonomies.Read")
	taxonomySetOrgsMiddleware := middleware.AuthMiddleware("Taxonomies.SetOrgs")
	apirouter.RegisterRouteWithMiddleware(v1, "/tagging/taxonomies", "GET", "/for-org", []fiber.Handler{taxonomyReadMiddleware}, taxonomyHandler.GetForActiveOrg)
	apirouter.RegisterRouteWithMiddleware(v1, "/tagging/taxonomies", "PUT", "/:id/orgs", []fiber.Handler{taxonomySetOrgsMiddleware}, taxonomyHandler.SetOrgs)

	tagHandler, err := tagginghdl.NewTagHandler()
	if err != nil {
		return fmt.Errorf("create tag handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/tagging/tags", tagHandler, apirouter.ReadWriteConfig, "Tags")
	tagReadMiddleware := middleware.AuthMiddleware("Tags.Read")
	apirouter.RegisterRouteWithMiddleware(v1, "/tagging/tags", "GET", "/by-taxonomy/:id", []fiber.Handler{tagReadMiddleware}, tagHandler.GetByTaxonomy)

	objectTagHandler, err := tagginghdl.NewObjectTagHandler()
	if err != nil {
		return fmt.Errorf("create object tag handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/tagging/object-tags", objectTagHandler, apirouter.ReadOnlyConfig, "ObjectTags")
	objectTagApplyMiddleware := middleware.AuthMiddleware("ObjectTags.Apply")
	objectTagReadMiddleware := middleware.AuthMiddleware("ObjectTags.Read")
	apirouter.RegisterRouteWithMiddleware(v1, "/tagging/object-tags", "POST", "/apply", []fiber.Handler{objectTagApplyMiddleware}, objectTagHandler.Apply)
	apirouter.RegisterRouteWithMiddleware(v1, "/tagging/object-tags", "GET", "/object/:objectType/:objectId", []fiber.Handler{objectTagReadMiddleware}, objectTagHandler.GetForObject)

	return nil
}
