package routes

import (
	"listings-console/internal/delivery/http/handler"
	"listings-console/internal/delivery/http/middleware"
	"listings-console/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Listings  *handler.ListingsHandler
	Tags      *handler.TagsHandler
	Bookmarks *handler.BookmarksHandler
	Dashboard *handler.DashboardHandler
	Events    *ws.Handler
}

type Registry struct {
	handlers Handlers
	auth     *middleware.AuthMiddleware
}

func NewRegistry(h Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{handlers: h, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAuth(app)
	r.registerEvents(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAuth(app *fiber.App) {
	if r.handlers.Auth != nil {
		r.handlers.Auth.RegisterRoutes(app.Group("/auth"), r.auth)
	}
}

func (r *Registry) registerEvents(app *fiber.App) {
	if r.handlers.Events != nil {
		app.Get("/ws", r.auth.Middleware(), r.handlers.Events.HandleEvents)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api", r.auth.Middleware())
	RegisterV1(api.Group("/v1"), r.handlers)
}
