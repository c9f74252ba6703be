package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Viewer is the admin a request acts for. Listing pages carry per-admin application
// status, so cached pages are scoped to the viewer.
type Viewer struct {
	UserID  int64
	Cookies map[string]string
}

type viewerKey struct{}

func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

func ViewerFrom(ctx context.Context) (Viewer, bool) {
	v, ok := ctx.Value(viewerKey{}).(Viewer)
	return v, ok
}

const sharedScope = "shared"

// scopedListingsKey places a page key under the viewer's namespace, or the shared one
// when ctx carries no viewer.
func scopedListingsKey(ctx context.Context, key string) string {
	scope := sharedScope
	if v, ok := ViewerFrom(ctx); ok {
		scope = "u" + strconv.FormatInt(v.UserID, 10)
	}
	return ListingsKeyPrefix + scope + ":" + strings.TrimPrefix(key, ListingsKeyPrefix)
}

// viewerRegistry remembers who fetched listings recently.
type viewerRegistry struct {
	mu   sync.Mutex
	seen map[int64]seenViewer
}

type seenViewer struct {
	viewer Viewer
	at     time.Time
}

func (r *viewerRegistry) touch(v Viewer, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen == nil {
		r.seen = make(map[int64]seenViewer)
	}
	r.seen[v.UserID] = seenViewer{viewer: v, at: at}
}

// active returns viewers seen at or after since, ordered by user id. Older entries are
// forgotten.
func (r *viewerRegistry) active(since time.Time) []Viewer {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Viewer, 0, len(r.seen))
	for id, s := range r.seen {
		if s.at.Before(since) {
			delete(r.seen, id)
			continue
		}
		out = append(out, s.viewer)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}
