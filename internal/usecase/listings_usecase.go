package usecase

import (
	"context"
	"fmt"
	"time"

	"listings-console/internal/domain/filter"
	"listings-console/internal/domain/listing"
	"listings-console/internal/domain/pagination"
	"listings-console/internal/pkg/logging"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultListingsTTL = 180 * time.Second

	sharedFetchTimeout = 30 * time.Second
)

type ListingsAPI interface {
	GetListings(ctx context.Context, query string) (listing.PageEnvelope, error)
	MarkListing(ctx context.Context, id int64, status listing.Status) error
}

// ListingsResult is the data/loading/error triple a table renders from.
type ListingsResult struct {
	Data      *listing.PageEnvelope `json:"data"`
	IsLoading bool                  `json:"isLoading"`
	Err       error                 `json:"-"`
	FromCache bool                  `json:"fromCache"`
	Key       string                `json:"key"`
}

// LoadingResult is the placeholder a view shows while the request for key is in flight.
func LoadingResult(key string) ListingsResult {
	return ListingsResult{IsLoading: true, Key: key}
}

type ListingStatusChanged struct {
	Key    string         `json:"key,omitempty"`
	ID     int64          `json:"id"`
	Status listing.Status `json:"status"`
}

type ListingsUsecase interface {
	Fetch(ctx context.Context, f filter.State, perPage, page int) ListingsResult
	MarkViewed(ctx context.Context, key string, id int64) (listing.Listing, error)
	MarkApplied(ctx context.Context, key string, id int64) (listing.Listing, error)
	Invalidate(ctx context.Context) error
}

// cachedPage keeps the fetch time so a status patch does not extend freshness.
type cachedPage struct {
	Page      listing.PageEnvelope `json:"page"`
	FetchedAt time.Time            `json:"fetched_at"`
}

type Listings struct {
	api       ListingsAPI
	cache     Cache
	publisher Publisher
	ttl       time.Duration
	logger    *logging.Logger

	group   singleflight.Group
	locks   keyedMutex
	viewers viewerRegistry
	now     func() time.Time
}

func NewListingsUsecase(api ListingsAPI, cache Cache, publisher Publisher, ttl time.Duration, logger *logging.Logger) *Listings {
	if ttl <= 0 {
		ttl = DefaultListingsTTL
	}
	return &Listings{
		api:       api,
		cache:     cache,
		publisher: publisher,
		ttl:       ttl,
		logger:    logger.With("component", "listings"),
		now:       time.Now,
	}
}

// Fetch returns the page for the selection. Pages are cached per viewer; the returned
// Key is the viewer-independent page key that marks refer back to.
func (u *Listings) Fetch(ctx context.Context, f filter.State, perPage, page int) ListingsResult {
	if !pagination.IsPageSize(perPage) || page < 1 {
		return ListingsResult{Err: ErrInvalidInput}
	}
	if v, ok := ViewerFrom(ctx); ok {
		u.viewers.touch(v, u.now())
	}

	key := ListingsCacheKey(f, perPage, page)
	stored := scopedListingsKey(ctx, key)
	if cp, ok := u.lookup(ctx, stored); ok {
		u.logger.Debug("cache hit", "key", stored)
		env := cp.Page
		return ListingsResult{Data: &env, FromCache: true, Key: key}
	}
	u.logger.Debug("cache miss", "key", stored)

	query := BuildListingsQuery(f, perPage, page)
	v, err, shared := u.group.Do(stored, func() (any, error) {
		// Waiters share this call, so one caller going away must not cancel it.
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()
		env, err := u.api.GetListings(fctx, query)
		if err != nil {
			return nil, err
		}
		env = normalizeEnvelope(env)
		u.store(fctx, stored, cachedPage{Page: env, FetchedAt: u.now()})
		return env, nil
	})
	if err != nil {
		u.logger.Warn("fetch listings failed", "query", query, "error", err)
		return ListingsResult{Err: fmt.Errorf("%w: %w", ErrUpstream, err), Key: key}
	}
	if shared {
		u.logger.Debug("fetch shared", "key", stored)
	}

	env := v.(listing.PageEnvelope)
	return ListingsResult{Data: &env, Key: key}
}

func (u *Listings) MarkViewed(ctx context.Context, key string, id int64) (listing.Listing, error) {
	return u.mark(ctx, key, id, listing.StatusViewed)
}

func (u *Listings) MarkApplied(ctx context.Context, key string, id int64) (listing.Listing, error) {
	return u.mark(ctx, key, id, listing.StatusApplied)
}

// mark posts the status to the backend and patches only that row of the cached page
// under key. An empty key skips the patch.
func (u *Listings) mark(ctx context.Context, key string, id int64, status listing.Status) (listing.Listing, error) {
	if id <= 0 {
		return listing.Listing{}, ErrInvalidInput
	}
	if key != "" && !IsListingsCacheKey(key) {
		return listing.Listing{}, ErrInvalidInput
	}

	var stored string
	if key != "" {
		stored = scopedListingsKey(ctx, key)
		unlock := u.locks.Lock(stored)
		defer unlock()
	}

	var (
		cp     cachedPage
		cached bool
		row    = listing.Listing{ID: id}
	)
	if key != "" {
		cp, cached = u.lookup(ctx, stored)
	}
	if cached {
		if current, ok := cp.Page.Find(id); ok {
			row = current
			if !listing.IsTransitionAllowed(current.Status, status) {
				return current, ErrInvalidTransition
			}
			if current.Status == status {
				return current, nil
			}
		}
	}

	if err := u.api.MarkListing(ctx, id, status); err != nil {
		u.logger.Warn("mark listing failed", "id", id, "status", status.String(), "error", err)
		if be, ok := asBackendError(err); ok && be.HTTPStatus() == 404 {
			return row, ErrNotFound
		}
		return row, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	row.Status = status

	if cached {
		if patched, found := cp.Page.WithStatus(id, status); found {
			cp.Page = patched
			u.store(ctx, stored, cp)
		}
	}

	u.logger.Info("listing status changed", "id", id, "status", status.String())
	publish(u.publisher, EventListingStatusChanged, ListingStatusChanged{Key: key, ID: id, Status: status})
	return row, nil
}

func (u *Listings) Invalidate(ctx context.Context) error {
	if u.cache == nil {
		return nil
	}
	if err := u.cache.DeleteByPattern(ctx, ListingsKeyPrefix+"*"); err != nil {
		return fmt.Errorf("invalidate listings cache: %w", err)
	}
	u.logger.Info("listings cache invalidated")
	return nil
}

// ActiveViewers lists the admins who fetched listings within window.
func (u *Listings) ActiveViewers(window time.Duration) []Viewer {
	return u.viewers.active(u.now().Add(-window))
}

func (u *Listings) lookup(ctx context.Context, key string) (cachedPage, bool) {
	if u.cache == nil {
		return cachedPage{}, false
	}
	var cp cachedPage
	hit, err := u.cache.GetJSON(ctx, key, &cp)
	if err != nil {
		u.logger.Warn("cache read failed", "key", key, "error", err)
		return cachedPage{}, false
	}
	if !hit || u.now().Sub(cp.FetchedAt) >= u.ttl {
		return cachedPage{}, false
	}
	return cp, true
}

func (u *Listings) store(ctx context.Context, key string, cp cachedPage) {
	if u.cache == nil {
		return
	}
	remaining := u.ttl - u.now().Sub(cp.FetchedAt)
	if remaining <= 0 {
		return
	}
	if err := u.cache.SetJSON(ctx, key, cp, remaining); err != nil {
		u.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func normalizeEnvelope(env listing.PageEnvelope) listing.PageEnvelope {
	if env.LastPage < 1 {
		env.LastPage = 1
	}
	if env.CurrentPage < 1 {
		env.CurrentPage = 1
	}
	if env.CurrentPage > env.LastPage {
		env.CurrentPage = env.LastPage
	}
	if env.Rows == nil {
		env.Rows = []listing.Listing{}
	}
	return env
}
