package handler

import (
	"listings-console/internal/pkg/response"
	"listings-console/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	uc *usecase.DashboardUsecase
}

func NewDashboardHandler(uc *usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/dashboard", h.Dashboard)
	r.Get("/filters/options", h.FilterOptions)
}

func (h *DashboardHandler) Dashboard(c fiber.Ctx) error {
	f, perPage, page, err := listingsSelection(c)
	if err != nil {
		return badRequest(err)
	}

	out, err := h.uc.Load(c.Context(), usecase.NewListingsView(f, perPage, page))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *DashboardHandler) FilterOptions(c fiber.Ctx) error {
	opts, err := h.uc.FilterOptions(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, opts)
}
