package handler

import (
	"context"
	"time"

	"listings-console/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and the state of optional dependencies.
type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status, msg := fiber.StatusOK, response.MessageOK
	results := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			results[name] = err.Error()
			status, msg = fiber.StatusServiceUnavailable, "unhealthy"
			continue
		}
		results[name] = "ok"
	}

	return response.Success(c, status, msg, map[string]any{"checks": results})
}
