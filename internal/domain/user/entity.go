package user

import "time"

// User is the admin as reported by the backend's /api/user endpoint.
type User struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
}

func (u User) IsVerified() bool {
	return u.EmailVerifiedAt != nil && !u.EmailVerifiedAt.IsZero()
}

// LoginForm is the sign-in input. Remember extends the console session.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=7"`
	Remember bool   `json:"remember"`
}
