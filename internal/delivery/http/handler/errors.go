package handler

import (
	"errors"

	"listings-console/internal/delivery/http/middleware"
	"listings-console/internal/pkg/response"
	"listings-console/internal/pkg/validation"
	"listings-console/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var loginErr *usecase.LoginError
	if errors.As(err, &loginErr) {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, loginErr.Message, nil, err)
	}
	if _, ok := validation.AsErrors(err); ok {
		return err
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Listing status cannot go back", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Already exists", nil, err)
	case errors.Is(err, usecase.ErrReadOnly):
		return middleware.NewAppError(fiber.StatusForbidden, "Bookmarks are read only", nil, err)
	case errors.Is(err, usecase.ErrUpstream):
		return middleware.NewAppError(fiber.StatusBadGateway, response.MessageBadGateway, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func badRequest(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
}
