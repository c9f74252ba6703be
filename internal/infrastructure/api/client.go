// Package api is the HTTP client for the listings backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"listings-console/internal/config"
	"listings-console/internal/domain/listing"
	"listings-console/internal/domain/tag"
	"listings-console/internal/pkg/logging"
	"listings-console/internal/usecase"
)

// ErrRejected is returned when the backend answers 2xx but reports a non-success status.
var ErrRejected = errors.New("backend rejected the request")

// StatusError is a non-2xx backend answer. Message is the backend's "message" field when
// the body is JSON.
type StatusError struct {
	Endpoint string
	Status   int
	Message  string
	Body     string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status=%d message=%s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status=%d body=%s", e.Endpoint, e.Status, e.Body)
}

func (e *StatusError) HTTPStatus() int { return e.Status }

func (e *StatusError) BackendMessage() string { return e.Message }

type cookiesKey struct{}

// WithCookies attaches backend cookies to ctx; data requests made with ctx send them.
func WithCookies(ctx context.Context, cookies map[string]string) context.Context {
	if len(cookies) == 0 {
		return ctx
	}
	return context.WithValue(ctx, cookiesKey{}, cookies)
}

// cookiesFrom prefers cookies set with WithCookies over those of the request's viewer.
func cookiesFrom(ctx context.Context) map[string]string {
	if c, ok := ctx.Value(cookiesKey{}).(map[string]string); ok {
		return c
	}
	if v, ok := usecase.ViewerFrom(ctx); ok {
		return v.Cookies
	}
	return nil
}

type Client struct {
	baseURL string
	authURL string
	token   string
	client  *http.Client
	logger  *logging.Logger
}

func NewClient(cfg config.APIConfig, logger *logging.Logger) *Client {
	authURL := strings.TrimRight(strings.TrimSpace(cfg.AuthURL), "/")
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if authURL == "" {
		authURL = base
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultAPITimeout
	}
	return &Client{
		baseURL: base,
		authURL: authURL,
		token:   strings.TrimSpace(cfg.AuthToken),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With("component", "api"),
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) GetListings(ctx context.Context, query string) (listing.PageEnvelope, error) {
	var out listing.PageEnvelope
	err := c.doJSON(ctx, c.client, http.MethodGet, c.baseURL+"/listings?"+encodeListingsQuery(query), nil, &out)
	return out, err
}

// encodeListingsQuery percent-encodes the literal listings query for the wire. A list
// opens at "=[" and closes at a "]" that ends the parameter; inside it only ',' is kept.
// Outside lists '=' and '&' are kept.
func encodeListingsQuery(q string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(q))
	inList := false
	for i := 0; i < len(q); i++ {
		ch := q[i]
		switch {
		case !inList && ch == '[' && i > 0 && q[i-1] == '=':
			inList = true
			b.WriteByte(ch)
			continue
		case inList && ch == ']' && (i+1 == len(q) || q[i+1] == '&'):
			inList = false
			b.WriteByte(ch)
			continue
		case isUnreserved(ch), inList && ch == ',', !inList && (ch == '=' || ch == '&'):
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[ch>>4])
		b.WriteByte(hex[ch&0x0F])
	}
	return b.String()
}

func isUnreserved(ch byte) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
		return true
	}
	return ch == '-' || ch == '.' || ch == '_' || ch == '~'
}

func (c *Client) MarkListing(ctx context.Context, id int64, status listing.Status) error {
	switch status {
	case listing.StatusViewed, listing.StatusApplied:
	default:
		return fmt.Errorf("cannot mark listing as %q", status.String())
	}
	endpoint := c.baseURL + "/listings/" + strconv.FormatInt(id, 10) + "/application/" + string(status)
	return c.doJSON(ctx, c.client, http.MethodPost, endpoint, nil, nil)
}

// ListTags returns tag names. Both a list of strings and a list of tag objects are accepted.
func (c *Client) ListTags(ctx context.Context) ([]string, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, c.client, http.MethodGet, c.baseURL+"/tags", nil, &raw); err != nil {
		return nil, err
	}
	return decodeTagNames(raw)
}

func (c *Client) ListTagsWithAliases(ctx context.Context) ([]tag.Tag, error) {
	var out []tag.Tag
	err := c.doJSON(ctx, c.client, http.MethodGet, c.baseURL+"/tagsWithAliases", nil, &out)
	return out, err
}

func (c *Client) CreateTag(ctx context.Context, t tag.Tag) error {
	t.ID = 0
	return c.mutation(ctx, http.MethodPost, c.baseURL+"/tags", t)
}

func (c *Client) UpdateTag(ctx context.Context, t tag.Tag) error {
	return c.mutation(ctx, http.MethodPut, c.baseURL+"/tags/"+strconv.FormatInt(t.ID, 10), t)
}

func (c *Client) DeleteTag(ctx context.Context, id int64) error {
	return c.mutation(ctx, http.MethodDelete, c.baseURL+"/tags/"+strconv.FormatInt(id, 10), nil)
}

type mutationResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (c *Client) mutation(ctx context.Context, method, endpoint string, body any) error {
	var out mutationResponse
	if err := c.doJSON(ctx, c.client, method, endpoint, body, &out); err != nil {
		return err
	}
	if out.Status != "success" {
		return fmt.Errorf("%w: %s %s status=%q", ErrRejected, method, endpoint, out.Status)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for name, value := range cookiesFrom(ctx) {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, hc *http.Client, method, endpoint string, body, out any) error {
	req, err := c.newRequest(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	return c.send(hc, req, out)
}

func (c *Client) send(hc *http.Client, req *http.Request, out any) error {
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		serr := &StatusError{
			Endpoint: req.Method + " " + req.URL.Path,
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(rb)),
		}
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(rb, &msg) == nil {
			serr.Message = msg.Message
		}
		c.logger.Debug("backend error", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode, "body", serr.Body)
		return serr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func decodeTagNames(raw json.RawMessage) ([]string, error) {
	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		return names, nil
	}
	var objs []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &objs); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	names = make([]string, 0, len(objs))
	for _, o := range objs {
		names = append(names, o.Name)
	}
	return names, nil
}
