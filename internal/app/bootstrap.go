package app

import (
	"context"
	"fmt"
	"strings"

	"listings-console/internal/config"
	"listings-console/internal/delivery/http/handler"
	"listings-console/internal/delivery/http/middleware"
	"listings-console/internal/delivery/http/routes"
	"listings-console/internal/pkg/logging"
	"listings-console/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application over an assembled container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := c.Start(ctx); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *logging.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	checks := map[string]handler.Pinger{}
	if c.DB != nil {
		checks["database"] = c.DB
	}
	if c.Redis != nil {
		checks["redis"] = c.Redis
	}

	authMw := middleware.NewAuthMiddleware(c.JWT, c.Config.Session.CookieName)
	cookie := handler.SessionCookie{Name: c.Config.Session.CookieName, Secure: c.Config.Session.Secure}

	routes.NewRegistry(routes.Handlers{
		Health:    handler.NewHealthHandler(checks),
		Auth:      handler.NewAuthHandler(c.Auth, cookie),
		Listings:  handler.NewListingsHandler(c.Listings),
		Tags:      handler.NewTagsHandler(c.Tags),
		Bookmarks: handler.NewBookmarksHandler(c.Bookmarks),
		Dashboard: handler.NewDashboardHandler(c.Dashboard),
		Events:    ws.NewHandler(c.Hub, c.Config.Session.AllowedOrigins, c.Logger),
	}, authMw).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
