package usecase

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"listings-console/internal/domain/listing"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *mapCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	c.ttls[key] = ttl
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *mapCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *mapCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

type markCall struct {
	id     int64
	status listing.Status
}

type fakeListingsAPI struct {
	mu      sync.Mutex
	page    listing.PageEnvelope
	err     error
	markErr error
	queries []string
	viewers []int64
	marks   []markCall
	block   chan struct{}
	byUser  map[int64]listing.PageEnvelope
}

func (f *fakeListingsAPI) GetListings(ctx context.Context, query string) (listing.PageEnvelope, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	v, _ := ViewerFrom(ctx)
	f.viewers = append(f.viewers, v.UserID)
	page, own := f.byUser[v.UserID]
	block := f.block
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return listing.PageEnvelope{}, ctx.Err()
		}
	}
	if own {
		return page, f.err
	}
	return f.page, f.err
}

func (f *fakeListingsAPI) MarkListing(_ context.Context, id int64, status listing.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marks = append(f.marks, markCall{id: id, status: status})
	return f.markErr
}

func (f *fakeListingsAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type statusErr struct {
	code int
	msg  string
}

func (e *statusErr) Error() string          { return e.msg }
func (e *statusErr) HTTPStatus() int        { return e.code }
func (e *statusErr) BackendMessage() string { return e.msg }

func samplePage() listing.PageEnvelope {
	return listing.PageEnvelope{
		Rows: []listing.Listing{
			{ID: 1, Title: "Go Engineer", Provider: "LinkedIn", Tags: []string{"go"}},
			{ID: 2, Title: "React Developer", Provider: "Indeed", Tags: []string{"reactjs", "typescript"}},
			{ID: 3, Title: "Platform Engineer", Provider: "Remotive", Status: listing.StatusApplied},
		},
		CurrentPage: 1,
		LastPage:    4,
		Total:       31,
	}
}
