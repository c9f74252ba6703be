package handler

import (
	"errors"

	"listings-console/internal/delivery/http/middleware"
	"listings-console/internal/domain/tag"
	"listings-console/internal/pkg/response"
	"listings-console/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type TagsHandler struct {
	uc usecase.TagsUsecase
}

func NewTagsHandler(uc usecase.TagsUsecase) *TagsHandler {
	return &TagsHandler{uc: uc}
}

func (h *TagsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Table)
	r.Get("/names", h.Names)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *TagsHandler) Table(c fiber.Ctx) error {
	perPage, page, err := paging(c)
	if err != nil {
		return badRequest(err)
	}

	table, err := h.uc.Table(c.Context(), c.Query("search"), perPage, page)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, table)
}

func (h *TagsHandler) Names(c fiber.Ctx) error {
	names, err := h.uc.List(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, names)
}

func (h *TagsHandler) Create(c fiber.Ctx) error {
	var form tag.Form
	if err := c.Bind().Body(&form); err != nil {
		return badRequest(err)
	}
	form.ID = 0

	res, err := h.uc.Create(c.Context(), form)
	return h.respond(c, fiber.StatusCreated, res, err)
}

func (h *TagsHandler) Update(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(err)
	}
	var form tag.Form
	if err := c.Bind().Body(&form); err != nil {
		return badRequest(err)
	}
	form.ID = id

	res, err := h.uc.Update(c.Context(), form)
	return h.respond(c, fiber.StatusOK, res, err)
}

func (h *TagsHandler) Delete(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(err)
	}

	res, err := h.uc.Delete(c.Context(), id)
	return h.respond(c, fiber.StatusOK, res, err)
}

// respond reports a failed mutation with its toast message.
func (h *TagsHandler) respond(c fiber.Ctx, status int, res usecase.TagMutation, err error) error {
	if err != nil {
		if errors.Is(err, usecase.ErrUpstream) && res.Message != "" {
			return middleware.NewAppError(fiber.StatusBadGateway, res.Message, nil, err)
		}
		return mapUsecaseError(err)
	}
	return response.Success(c, status, res.Message, res)
}
