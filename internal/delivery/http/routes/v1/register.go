package v1

import (
	"listings-console/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func Register(
	r fiber.Router,
	listings *handler.ListingsHandler,
	dashboard *handler.DashboardHandler,
	tags *handler.TagsHandler,
	bookmarks *handler.BookmarksHandler,
) {
	if r == nil {
		return
	}

	RegisterListings(r, listings, dashboard)
	RegisterCatalog(r, tags, bookmarks)
}
