package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"listings-console/internal/domain/user"
	"listings-console/internal/pkg/jwt"
	"listings-console/internal/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackendSession struct {
	restored  map[string]string
	steps     []string
	csrfErr   error
	loginErr  error
	userErr   error
	logoutErr error
	usr       user.User
}

func (s *fakeBackendSession) CSRF(context.Context) error {
	s.steps = append(s.steps, "csrf")
	return s.csrfErr
}

func (s *fakeBackendSession) Login(_ context.Context, form user.LoginForm) error {
	s.steps = append(s.steps, "login:"+form.Email)
	return s.loginErr
}

func (s *fakeBackendSession) CurrentUser(context.Context) (user.User, error) {
	s.steps = append(s.steps, "user")
	return s.usr, s.userErr
}

func (s *fakeBackendSession) Logout(context.Context) error {
	s.steps = append(s.steps, "logout")
	return s.logoutErr
}

func (s *fakeBackendSession) Cookies() map[string]string {
	return map[string]string{"laravel_session": "backend-cookie"}
}

func newTestAuth(bs *fakeBackendSession) (*Auth, *jwt.HMACService) {
	svc := jwt.NewHMACService("secret", 12*time.Hour, 30*24*time.Hour)
	factory := func(cookies map[string]string) BackendSession {
		bs.restored = cookies
		return bs
	}
	return NewAuthUsecase(factory, svc, nil), svc
}

func TestValidateLoginForm_Messages(t *testing.T) {
	tests := []struct {
		name string
		form user.LoginForm
		want validation.Errors
	}{
		{
			name: "empty",
			form: user.LoginForm{},
			want: validation.Errors{"email": "Email is a required field", "password": "Password is a required field"},
		},
		{
			name: "bad email and short password",
			form: user.LoginForm{Email: "admin", Password: "123456"},
			want: validation.Errors{"email": "Invalid email format", "password": "Password must be at least 7 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, ok := validation.AsErrors(ValidateLoginForm(tt.form))
			require.True(t, ok)
			assert.Equal(t, tt.want, errs)
		})
	}

	assert.NoError(t, ValidateLoginForm(user.LoginForm{Email: "admin@example.com", Password: "1234567"}))
}

func TestAuth_LoginFlow(t *testing.T) {
	bs := &fakeBackendSession{usr: user.User{ID: 3, Name: "Admin", Email: "admin@example.com"}}
	uc, svc := newTestAuth(bs)

	res, err := uc.Login(context.Background(), user.LoginForm{Email: " admin@example.com ", Password: "secret1", Remember: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"csrf", "login:admin@example.com", "user"}, bs.steps)
	assert.Equal(t, int64(3), res.User.ID)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), res.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.True(t, claims.Remember)
	assert.Equal(t, "backend-cookie", claims.Backend["laravel_session"])
}

func TestAuth_LoginSurfacesBackendMessage(t *testing.T) {
	bs := &fakeBackendSession{loginErr: &statusErr{code: 422, msg: "These credentials do not match our records."}}
	uc, _ := newTestAuth(bs)

	_, err := uc.Login(context.Background(), user.LoginForm{Email: "admin@example.com", Password: "wrongpass"})
	var le *LoginError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "These credentials do not match our records.", le.Message)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, []string{"csrf", "login:admin@example.com"}, bs.steps)
}

func TestAuth_LoginValidationSkipsBackend(t *testing.T) {
	bs := &fakeBackendSession{}
	uc, _ := newTestAuth(bs)

	_, err := uc.Login(context.Background(), user.LoginForm{Email: "nope"})
	_, ok := validation.AsErrors(err)
	assert.True(t, ok)
	assert.Empty(t, bs.steps)
}

func TestAuth_LoginUpstreamFailure(t *testing.T) {
	bs := &fakeBackendSession{csrfErr: errors.New("dial tcp: refused")}
	uc, _ := newTestAuth(bs)

	_, err := uc.Login(context.Background(), user.LoginForm{Email: "admin@example.com", Password: "secret12"})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestAuth_CurrentUserRestoresCookies(t *testing.T) {
	bs := &fakeBackendSession{usr: user.User{ID: 3}}
	uc, _ := newTestAuth(bs)

	usr, err := uc.CurrentUser(context.Background(), jwt.Session{Backend: map[string]string{"laravel_session": "x"}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), usr.ID)
	assert.Equal(t, "x", bs.restored["laravel_session"])

	bs.userErr = &statusErr{code: 401, msg: "Unauthenticated."}
	_, err = uc.CurrentUser(context.Background(), jwt.Session{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_LogoutNeverFails(t *testing.T) {
	bs := &fakeBackendSession{logoutErr: errors.New("boom")}
	uc, _ := newTestAuth(bs)

	uc.Logout(context.Background(), jwt.Session{UserID: 3})
	assert.Equal(t, []string{"csrf", "logout"}, bs.steps)
}
