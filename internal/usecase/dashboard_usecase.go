package usecase

import (
	"context"

	"listings-console/internal/domain/bookmark"
	"listings-console/internal/domain/filter"

	"golang.org/x/sync/errgroup"
)

// FilterOptions are the choices offered by the filter panel.
type FilterOptions struct {
	Providers []string `json:"providers"`
	Locations []string `json:"locations"`
	Tags      []string `json:"tags"`
}

type Dashboard struct {
	Listings  ListingsViewModel   `json:"listings"`
	Options   FilterOptions       `json:"options"`
	Bookmarks []bookmark.Bookmark `json:"bookmarks"`
}

type DashboardUsecase struct {
	listings  ListingsUsecase
	tags      TagsUsecase
	bookmarks BookmarksUsecase
}

func NewDashboardUsecase(listings ListingsUsecase, tags TagsUsecase, bookmarks BookmarksUsecase) *DashboardUsecase {
	return &DashboardUsecase{listings: listings, tags: tags, bookmarks: bookmarks}
}

func (u *DashboardUsecase) FilterOptions(ctx context.Context) (FilterOptions, error) {
	tags, err := u.tags.List(ctx)
	if err != nil {
		return FilterOptions{}, err
	}
	return FilterOptions{Providers: filter.Providers(), Locations: filter.Locations(), Tags: tags}, nil
}

// Load fetches the listings page for view, the filter options and the bookmarks
// concurrently. A listings fetch failure is reported inside the view model; option and
// bookmark failures fail the whole call.
func (u *DashboardUsecase) Load(ctx context.Context, view *ListingsView) (Dashboard, error) {
	var out Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		view.Load(gctx, u.listings)
		return nil
	})
	g.Go(func() error {
		opts, err := u.FilterOptions(gctx)
		if err != nil {
			return err
		}
		out.Options = opts
		return nil
	})
	g.Go(func() error {
		bms, err := u.bookmarks.List(gctx)
		if err != nil {
			return err
		}
		out.Bookmarks = bms
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	out.Listings = view.Model()
	return out, nil
}
