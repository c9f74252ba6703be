package dto

import (
	"time"

	"listings-console/internal/domain/user"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type UserResponse struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Verified        bool       `json:"verified"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Verified:        u.IsVerified(),
		EmailVerifiedAt: u.EmailVerifiedAt,
	}
}

type LoginResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}
