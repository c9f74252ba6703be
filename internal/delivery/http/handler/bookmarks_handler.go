package handler

import (
	"listings-console/internal/delivery/http/dto"
	"listings-console/internal/domain/bookmark"
	"listings-console/internal/pkg/response"
	"listings-console/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type BookmarksHandler struct {
	uc usecase.BookmarksUsecase
}

func NewBookmarksHandler(uc usecase.BookmarksUsecase) *BookmarksHandler {
	return &BookmarksHandler{uc: uc}
}

func (h *BookmarksHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/:id", h.Delete)
}

func (h *BookmarksHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.BookmarksResponse{
		ReadOnly: h.uc.ReadOnly(),
		Groups:   dto.GroupBookmarks(items),
	})
}

func (h *BookmarksHandler) Create(c fiber.Ctx) error {
	var form bookmark.Form
	if err := c.Bind().Body(&form); err != nil {
		return badRequest(err)
	}

	b, err := h.uc.Create(c.Context(), form)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "", b)
}

func (h *BookmarksHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(err)
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
