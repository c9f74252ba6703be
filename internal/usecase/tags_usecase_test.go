package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"listings-console/internal/domain/tag"
	"listings-console/internal/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTagsAPI struct {
	mu        sync.Mutex
	tags      []tag.Tag
	err       error
	listCalls int
	created   []tag.Tag
	updated   []tag.Tag
	deleted   []int64
}

func (f *fakeTagsAPI) ListTags(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]string, 0, len(f.tags))
	for _, t := range f.tags {
		out = append(out, t.Name)
	}
	return out, nil
}

func (f *fakeTagsAPI) ListTagsWithAliases(context.Context) ([]tag.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.tags, f.err
}

func (f *fakeTagsAPI) CreateTag(_ context.Context, t tag.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, t)
	return f.err
}

func (f *fakeTagsAPI) UpdateTag(_ context.Context, t tag.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, t)
	return f.err
}

func (f *fakeTagsAPI) DeleteTag(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.err
}

func sampleTags() []tag.Tag {
	return []tag.Tag{
		{ID: 1, Name: "reactjs", Type: "framework", Aliases: []tag.Alias{{Alias: "react"}, {Alias: "react.js"}}},
		{ID: 2, Name: "typescript", Type: "language", Aliases: []tag.Alias{{Alias: "ts"}}},
		{ID: 3, Name: "nodejs", Type: "runtime", Aliases: []tag.Alias{{Alias: "node"}}},
		{ID: 4, Name: "nextjs", Type: "framework"},
	}
}

func TestTags_ListIsCached(t *testing.T) {
	api := &fakeTagsAPI{tags: sampleTags()}
	uc := NewTagsUsecase(api, newMapCache(), nil, time.Minute, nil)

	names, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"reactjs", "typescript", "nodejs", "nextjs"}, names)

	_, err = uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, api.listCalls)
}

func TestTags_TableSearchAndPaging(t *testing.T) {
	api := &fakeTagsAPI{tags: sampleTags()}
	uc := NewTagsUsecase(api, newMapCache(), nil, time.Minute, nil)
	ctx := context.Background()

	table, err := uc.Table(ctx, "FRAME", 10, 1)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "react, react.js", table.Rows[0].Aliases)
	assert.Equal(t, "Page 1 of 1", table.Pagination.Label)

	table, err = uc.Table(ctx, "ts", 10, 1)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "typescript", table.Rows[0].Name)

	table, err = uc.Table(ctx, "", 10, 5)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 4)
	assert.Equal(t, 1, table.Pagination.CurrentPage)

	_, err = uc.Table(ctx, "", 7, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTags_CreateValidation(t *testing.T) {
	api := &fakeTagsAPI{}
	uc := NewTagsUsecase(api, newMapCache(), nil, time.Minute, nil)

	_, err := uc.Create(context.Background(), tag.Form{Aliases: []tag.Alias{{Alias: "ok"}, {Alias: "  "}}})
	errs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, validation.Errors{
		"name":             "Tag name is a required field",
		"type":             "Type is a required field",
		"aliases[1].alias": "Alias name cannot be empty",
	}, errs)
	assert.Empty(t, api.created)
}

func TestTags_MutationsInvalidateAndPublish(t *testing.T) {
	api := &fakeTagsAPI{tags: sampleTags()}
	cache := newMapCache()
	pub := &recordingPublisher{}
	uc := NewTagsUsecase(api, cache, pub, time.Minute, nil)
	ctx := context.Background()

	_, err := uc.ListWithAliases(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, cache.len())

	res, err := uc.Create(ctx, tag.Form{Name: " golang ", Type: "language", Aliases: []tag.Alias{{Alias: "go"}}})
	require.NoError(t, err)
	assert.Equal(t, TagMutation{OK: true, Message: "Tag added!"}, res)
	assert.Equal(t, "golang", api.created[0].Name)
	assert.Equal(t, 0, cache.len())

	res, err = uc.Update(ctx, tag.Form{ID: 2, Name: "typescript", Type: "language"})
	require.NoError(t, err)
	assert.Equal(t, "Tag edited!", res.Message)

	res, err = uc.Delete(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Tag deleted!", res.Message)
	assert.Equal(t, []int64{4}, api.deleted)

	assert.Equal(t, []string{EventTagsChanged, EventTagsChanged, EventTagsChanged}, pub.types())
}

func TestTags_MutationFailureMessages(t *testing.T) {
	api := &fakeTagsAPI{err: errors.New("status error")}
	uc := NewTagsUsecase(api, nil, nil, time.Minute, nil)
	ctx := context.Background()

	res, err := uc.Create(ctx, tag.Form{Name: "go", Type: "language"})
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, TagMutation{Message: "There was some error adding the tag."}, res)

	res, _ = uc.Update(ctx, tag.Form{ID: 1, Name: "go", Type: "language"})
	assert.Equal(t, "There was some error editing the tag.", res.Message)

	api.err = &statusErr{code: 404, msg: "gone"}
	res, err = uc.Delete(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "There was some error deleting the tag.", res.Message)

	_, err = uc.Update(ctx, tag.Form{Name: "go", Type: "language"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
