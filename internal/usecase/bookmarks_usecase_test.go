package usecase

import (
	"context"
	"testing"

	"listings-console/internal/domain/bookmark"
	"listings-console/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBookmarkRepo struct {
	items []bookmark.Bookmark
}

func (r *memBookmarkRepo) List(context.Context) ([]bookmark.Bookmark, error) {
	return append([]bookmark.Bookmark(nil), r.items...), nil
}

func (r *memBookmarkRepo) Create(_ context.Context, b bookmark.Bookmark) error {
	r.items = append(r.items, b)
	return nil
}

func (r *memBookmarkRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, b := range r.items {
		if b.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return bookmark.ErrNotFound
}

func TestBookmarks_ReadOnlyDefaults(t *testing.T) {
	uc := NewBookmarksUsecase(nil, nil)
	ctx := context.Background()

	assert.True(t, uc.ReadOnly())
	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 6)

	_, err = uc.Create(ctx, bookmark.Form{Group: "Remote", Name: "Go"})
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.ErrorIs(t, uc.Delete(ctx, list[0].ID), ErrReadOnly)
}

func TestBookmarks_CreateCanonicalizesQuery(t *testing.T) {
	repo := &memBookmarkRepo{}
	uc := NewBookmarksUsecase(repo, nil)

	b, err := uc.Create(context.Background(), bookmark.Form{
		Group: " Remote ",
		Name:  "Go",
		Query: "?tagsIn=[golang, grpc]&onlyRemote=1&providersIn=Nope",
	})
	require.NoError(t, err)
	assert.Equal(t, "Remote", b.Group)
	assert.Equal(t, "onlyRemote=1&tagsIn=golang%2Cgrpc", b.Query)
	assert.NotEqual(t, uuid.Nil, b.ID)
	require.Len(t, repo.items, 1)

	f, err := b.Filters()
	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "grpc"}, f.Tags)
}

func TestBookmarks_CreateValidation(t *testing.T) {
	uc := NewBookmarksUsecase(&memBookmarkRepo{}, nil)

	_, err := uc.Create(context.Background(), bookmark.Form{})
	errs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, validation.Errors{"group": "Group is a required field", "name": "Name is a required field"}, errs)
}

func TestBookmarks_Delete(t *testing.T) {
	repo := &memBookmarkRepo{}
	uc := NewBookmarksUsecase(repo, nil)
	ctx := context.Background()
	b, err := uc.Create(ctx, bookmark.Form{Group: "g", Name: "n"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, b.ID))
	assert.ErrorIs(t, uc.Delete(ctx, b.ID), ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, uuid.Nil), ErrInvalidInput)
}
