package api

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"listings-console/internal/domain/user"
)

const xsrfCookie = "XSRF-TOKEN"

// Session talks to the backend's cookie based auth endpoints. Each session has its own
// cookie jar.
type Session struct {
	c      *Client
	client *http.Client
	origin *url.URL
}

// NewSession opens a session, restoring cookies from a previous login when given.
func (c *Client) NewSession(cookies map[string]string) *Session {
	jar, _ := cookiejar.New(nil)
	origin, err := url.Parse(c.authURL)
	if err != nil || origin.Host == "" {
		origin = &url.URL{}
	}

	if len(cookies) > 0 && origin.Host != "" {
		restored := make([]*http.Cookie, 0, len(cookies))
		for name, value := range cookies {
			restored = append(restored, &http.Cookie{Name: name, Value: value, Path: "/"})
		}
		jar.SetCookies(origin, restored)
	}

	return &Session{
		c:      c,
		client: &http.Client{Timeout: c.client.Timeout, Jar: jar},
		origin: origin,
	}
}

func (s *Session) CSRF(ctx context.Context) error {
	return s.do(ctx, http.MethodGet, "/sanctum/csrf-cookie", nil, nil)
}

func (s *Session) Login(ctx context.Context, form user.LoginForm) error {
	return s.do(ctx, http.MethodPost, "/api/auth/login", form, nil)
}

func (s *Session) CurrentUser(ctx context.Context) (user.User, error) {
	var out user.User
	err := s.do(ctx, http.MethodGet, "/api/user", nil, &out)
	return out, err
}

func (s *Session) Logout(ctx context.Context) error {
	return s.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Cookies returns the cookies the backend has set for this session.
func (s *Session) Cookies() map[string]string {
	out := map[string]string{}
	if s.origin.Host == "" {
		return out
	}
	for _, ck := range s.client.Jar.Cookies(s.origin) {
		out[ck.Name] = ck.Value
	}
	return out
}

func (s *Session) do(ctx context.Context, method, path string, body, out any) error {
	req, err := s.c.newRequest(ctx, method, s.c.authURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Del("Cookie")
	if token := s.xsrfToken(); token != "" {
		req.Header.Set("X-XSRF-TOKEN", token)
	}
	return s.c.send(s.client, req, out)
}

func (s *Session) xsrfToken() string {
	if s.origin.Host == "" {
		return ""
	}
	for _, ck := range s.client.Jar.Cookies(s.origin) {
		if ck.Name == xsrfCookie {
			if v, err := url.QueryUnescape(ck.Value); err == nil {
				return v
			}
			return ck.Value
		}
	}
	return ""
}
