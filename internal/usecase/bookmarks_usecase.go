package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"listings-console/internal/domain/bookmark"
	"listings-console/internal/pkg/logging"
	"listings-console/internal/pkg/validation"

	"github.com/google/uuid"
)

var bookmarkFormMessages = validation.Messages{
	"group.required": "Group is a required field",
	"name.required":  "Name is a required field",
}

type BookmarksUsecase interface {
	List(ctx context.Context) ([]bookmark.Bookmark, error)
	Create(ctx context.Context, form bookmark.Form) (bookmark.Bookmark, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ReadOnly() bool
}

// Bookmarks serves saved filters from repo, or the built-in set read-only when repo is nil.
type Bookmarks struct {
	repo   bookmark.Repository
	logger *logging.Logger
	now    func() time.Time
}

func NewBookmarksUsecase(repo bookmark.Repository, logger *logging.Logger) *Bookmarks {
	return &Bookmarks{repo: repo, logger: logger.With("component", "bookmarks"), now: time.Now}
}

func (u *Bookmarks) ReadOnly() bool {
	return u.repo == nil
}

func (u *Bookmarks) List(ctx context.Context) ([]bookmark.Bookmark, error) {
	if u.repo == nil {
		return bookmark.Defaults(), nil
	}
	out, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return out, nil
}

// Create stores a bookmark. The query is parsed and re-rendered so stored filters are
// always in canonical console form.
func (u *Bookmarks) Create(ctx context.Context, form bookmark.Form) (bookmark.Bookmark, error) {
	if u.repo == nil {
		return bookmark.Bookmark{}, ErrReadOnly
	}
	form.Group = strings.TrimSpace(form.Group)
	form.Name = strings.TrimSpace(form.Name)
	if err := validation.Struct(form, bookmarkFormMessages); err != nil {
		return bookmark.Bookmark{}, err
	}

	b := bookmark.Bookmark{
		ID:        uuid.New(),
		Group:     form.Group,
		Name:      form.Name,
		CreatedAt: u.now().UTC(),
	}
	f, err := (bookmark.Bookmark{Query: form.Query}).Filters()
	if err != nil {
		return bookmark.Bookmark{}, fmt.Errorf("%w: query: %v", ErrInvalidInput, err)
	}
	b.Query = f.Values().Encode()

	if err := u.repo.Create(ctx, b); err != nil {
		if errors.Is(err, bookmark.ErrDuplicate) {
			return bookmark.Bookmark{}, ErrConflict
		}
		return bookmark.Bookmark{}, fmt.Errorf("create bookmark: %w", err)
	}
	u.logger.Info("bookmark created", "id", b.ID, "group", b.Group, "name", b.Name)
	return b, nil
}

func (u *Bookmarks) Delete(ctx context.Context, id uuid.UUID) error {
	if u.repo == nil {
		return ErrReadOnly
	}
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookmark.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete bookmark: %w", err)
	}
	u.logger.Info("bookmark deleted", "id", id)
	return nil
}
