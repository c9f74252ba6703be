package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"listings-console/internal/domain/user"
	"listings-console/internal/pkg/jwt"
	"listings-console/internal/pkg/logging"
	"listings-console/internal/pkg/validation"
)

var loginFormMessages = validation.Messages{
	"email.required":    "Email is a required field",
	"email.email":       "Invalid email format",
	"password.required": "Password is a required field",
	"password.min":      "Password must be at least 7 characters",
}

// BackendSession is one cookie-carrying conversation with the backend's auth endpoints.
type BackendSession interface {
	CSRF(ctx context.Context) error
	Login(ctx context.Context, form user.LoginForm) error
	CurrentUser(ctx context.Context) (user.User, error)
	Logout(ctx context.Context) error
	Cookies() map[string]string
}

// SessionFactory opens a backend session, restoring cookies when given.
type SessionFactory func(cookies map[string]string) BackendSession

type LoginResult struct {
	User      user.User
	Token     string
	ExpiresAt time.Time
}

type AuthUsecase interface {
	Login(ctx context.Context, form user.LoginForm) (LoginResult, error)
	CurrentUser(ctx context.Context, s jwt.Session) (user.User, error)
	Logout(ctx context.Context, s jwt.Session)
}

type Auth struct {
	sessions SessionFactory
	jwt      jwt.Service
	logger   *logging.Logger
}

func NewAuthUsecase(sessions SessionFactory, jwtSvc jwt.Service, logger *logging.Logger) *Auth {
	return &Auth{sessions: sessions, jwt: jwtSvc, logger: logger.With("component", "auth")}
}

// ValidateLoginForm applies the sign-in rules. The first failing rule of a field wins.
func ValidateLoginForm(form user.LoginForm) error {
	return validation.Struct(form, loginFormMessages)
}

// Login runs csrf, login and user lookup against the backend and signs a console session
// carrying the backend cookies.
func (u *Auth) Login(ctx context.Context, form user.LoginForm) (LoginResult, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := ValidateLoginForm(form); err != nil {
		return LoginResult{}, err
	}

	bs := u.sessions(nil)
	if err := bs.CSRF(ctx); err != nil {
		return LoginResult{}, u.backendFailure("csrf", err)
	}
	if err := bs.Login(ctx, form); err != nil {
		return LoginResult{}, u.backendFailure("login", err)
	}
	usr, err := bs.CurrentUser(ctx)
	if err != nil {
		return LoginResult{}, u.backendFailure("user", err)
	}

	token, exp, err := u.jwt.GenerateSessionToken(jwt.Session{
		UserID:   usr.ID,
		Email:    usr.Email,
		Name:     usr.Name,
		Remember: form.Remember,
		Backend:  bs.Cookies(),
	})
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign session: %w", err)
	}

	u.logger.Info("admin signed in", "user_id", usr.ID, "remember", form.Remember)
	return LoginResult{User: usr, Token: token, ExpiresAt: exp}, nil
}

func (u *Auth) CurrentUser(ctx context.Context, s jwt.Session) (user.User, error) {
	usr, err := u.sessions(s.Backend).CurrentUser(ctx)
	if err != nil {
		return user.User{}, u.backendFailure("user", err)
	}
	return usr, nil
}

// Logout ends the backend session. Failures are logged; the console session is cleared
// by the caller regardless.
func (u *Auth) Logout(ctx context.Context, s jwt.Session) {
	bs := u.sessions(s.Backend)
	if err := bs.CSRF(ctx); err != nil {
		u.logger.Warn("logout csrf failed", "error", err)
		return
	}
	if err := bs.Logout(ctx); err != nil {
		u.logger.Warn("logout failed", "user_id", s.UserID, "error", err)
		return
	}
	u.logger.Info("admin signed out", "user_id", s.UserID)
}

// LoginError carries the backend's own message for a rejected sign-in.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string { return e.Message }

func (e *LoginError) Unwrap() error { return ErrUnauthorized }

func (u *Auth) backendFailure(step string, err error) error {
	u.logger.Warn("backend auth step failed", "step", step, "error", err)
	be, ok := asBackendError(err)
	if !ok {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	switch be.HTTPStatus() {
	case http.StatusUnprocessableEntity:
		msg := be.BackendMessage()
		if msg == "" {
			msg = "These credentials do not match our records."
		}
		return &LoginError{Message: msg}
	case http.StatusUnauthorized, http.StatusForbidden, 419:
		return ErrUnauthorized
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}
