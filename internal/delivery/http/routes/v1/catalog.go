package v1

import (
	"listings-console/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterCatalog mounts the tag and bookmark management routes.
func RegisterCatalog(r fiber.Router, tags *handler.TagsHandler, bookmarks *handler.BookmarksHandler) {
	if r == nil {
		return
	}
	if tags != nil {
		tags.RegisterRoutes(r.Group("/tags"))
	}
	if bookmarks != nil {
		bookmarks.RegisterRoutes(r.Group("/bookmarks"))
	}
}
