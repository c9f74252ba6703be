package handler

import (
	"time"

	"listings-console/internal/delivery/http/dto"
	"listings-console/internal/delivery/http/middleware"
	"listings-console/internal/domain/user"
	"listings-console/internal/pkg/response"
	"listings-console/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// SessionCookie describes the cookie the console session token travels in.
type SessionCookie struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	uc     usecase.AuthUsecase
	cookie SessionCookie
}

func NewAuthHandler(uc usecase.AuthUsecase, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

// RegisterRoutes mounts login publicly, logout with an optional session and the user
// lookup behind authMw.
func (h *AuthHandler) RegisterRoutes(r fiber.Router, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	r.Post("/login", h.Login)
	r.Post("/logout", authMw.Optional(), h.Logout)
	r.Get("/user", authMw.Middleware(), h.User)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	res, err := h.uc.Login(c.Context(), user.LoginForm{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    res.Token,
		Path:     "/",
		Expires:  res.ExpiresAt,
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.LoginResponse{
		User:      dto.NewUserResponse(res.User),
		ExpiresAt: res.ExpiresAt,
	})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if sess, ok := middleware.SessionFrom(c); ok {
		h.uc.Logout(c.Context(), sess)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AuthHandler) User(c fiber.Ctx) error {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	usr, err := h.uc.CurrentUser(c.Context(), sess)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}
