package v1

import (
	"listings-console/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterListings(r fiber.Router, listings *handler.ListingsHandler, dashboard *handler.DashboardHandler) {
	if r == nil {
		return
	}
	if listings != nil {
		listings.RegisterRoutes(r.Group("/listings"))
	}
	if dashboard != nil {
		dashboard.RegisterRoutes(r)
	}
}
