package handler

import (
	"listings-console/internal/domain/listing"
	"listings-console/internal/pkg/response"
	"listings-console/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ListingsHandler struct {
	uc usecase.ListingsUsecase
}

func NewListingsHandler(uc usecase.ListingsUsecase) *ListingsHandler {
	return &ListingsHandler{uc: uc}
}

func (h *ListingsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/refresh", h.Refresh)
	r.Post("/:id/viewed", h.MarkViewed)
	r.Post("/:id/applied", h.MarkApplied)
}

// List renders the listings screen for the filters and page in the query string.
func (h *ListingsHandler) List(c fiber.Ctx) error {
	f, perPage, page, err := listingsSelection(c)
	if err != nil {
		return badRequest(err)
	}

	view := usecase.NewListingsView(f, perPage, page)
	res := view.Load(c.Context(), h.uc)
	if res.Err != nil {
		return mapUsecaseError(res.Err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, view.Model())
}

func (h *ListingsHandler) MarkViewed(c fiber.Ctx) error {
	return h.mark(c, listing.StatusViewed)
}

func (h *ListingsHandler) MarkApplied(c fiber.Ctx) error {
	return h.mark(c, listing.StatusApplied)
}

// mark identifies the cached page to patch either by an explicit key or by the listings
// query string the row was displayed under.
func (h *ListingsHandler) mark(c fiber.Ctx, st listing.Status) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(err)
	}

	key := c.Query("key")
	if key == "" && c.Query("perPage") != "" {
		f, perPage, page, err := listingsSelection(c)
		if err != nil {
			return badRequest(err)
		}
		key = usecase.ListingsCacheKey(f, perPage, page)
	}

	var row listing.Listing
	if st == listing.StatusApplied {
		row, err = h.uc.MarkApplied(c.Context(), key, id)
	} else {
		row, err = h.uc.MarkViewed(c.Context(), key, id)
	}
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, row)
}

func (h *ListingsHandler) Refresh(c fiber.Ctx) error {
	if err := h.uc.Invalidate(c.Context()); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
