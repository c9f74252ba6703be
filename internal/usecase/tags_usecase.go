package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"listings-console/internal/domain/pagination"
	"listings-console/internal/domain/tag"
	"listings-console/internal/pkg/logging"
	"listings-console/internal/pkg/validation"
)

const (
	TagNamesCacheKey   = "tags:names"
	TagAliasesCacheKey = "tags:aliases"
	tagsCachePattern   = "tags:*"
)

var tagFormMessages = validation.Messages{
	"name.required":            "Tag name is a required field",
	"type.required":            "Type is a required field",
	"aliases[].alias.required": "Alias name cannot be empty",
}

type TagsAPI interface {
	ListTags(ctx context.Context) ([]string, error)
	ListTagsWithAliases(ctx context.Context) ([]tag.Tag, error)
	CreateTag(ctx context.Context, t tag.Tag) error
	UpdateTag(ctx context.Context, t tag.Tag) error
	DeleteTag(ctx context.Context, id int64) error
}

// TagMutation is the toast a tag form shows after submitting.
type TagMutation struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type TagRow struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Aliases string `json:"aliases"`
}

type TagsTable struct {
	Search     string          `json:"search"`
	Rows       []TagRow        `json:"rows"`
	Pagination PaginationModel `json:"pagination"`
}

type TagsUsecase interface {
	List(ctx context.Context) ([]string, error)
	ListWithAliases(ctx context.Context) ([]tag.Tag, error)
	Table(ctx context.Context, search string, perPage, page int) (TagsTable, error)
	Create(ctx context.Context, form tag.Form) (TagMutation, error)
	Update(ctx context.Context, form tag.Form) (TagMutation, error)
	Delete(ctx context.Context, id int64) (TagMutation, error)
}

type Tags struct {
	api       TagsAPI
	cache     Cache
	publisher Publisher
	ttl       time.Duration
	logger    *logging.Logger
}

func NewTagsUsecase(api TagsAPI, cache Cache, publisher Publisher, ttl time.Duration, logger *logging.Logger) *Tags {
	if ttl <= 0 {
		ttl = DefaultListingsTTL
	}
	return &Tags{api: api, cache: cache, publisher: publisher, ttl: ttl, logger: logger.With("component", "tags")}
}

func (u *Tags) List(ctx context.Context) ([]string, error) {
	var names []string
	if u.cached(ctx, TagNamesCacheKey, &names) {
		return names, nil
	}
	names, err := u.api.ListTags(ctx)
	if err != nil {
		u.logger.Warn("list tags failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if names == nil {
		names = []string{}
	}
	u.store(ctx, TagNamesCacheKey, names)
	return names, nil
}

func (u *Tags) ListWithAliases(ctx context.Context) ([]tag.Tag, error) {
	var tags []tag.Tag
	if u.cached(ctx, TagAliasesCacheKey, &tags) {
		return tags, nil
	}
	tags, err := u.api.ListTagsWithAliases(ctx)
	if err != nil {
		u.logger.Warn("list tags with aliases failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if tags == nil {
		tags = []tag.Tag{}
	}
	u.store(ctx, TagAliasesCacheKey, tags)
	return tags, nil
}

// Table filters tags by search over name, type and aliases, then pages client side.
// The page range is computed from the filtered rows.
func (u *Tags) Table(ctx context.Context, search string, perPage, page int) (TagsTable, error) {
	if !pagination.IsPageSize(perPage) {
		return TagsTable{}, ErrInvalidInput
	}
	tags, err := u.ListWithAliases(ctx)
	if err != nil {
		return TagsTable{}, err
	}

	search = strings.TrimSpace(search)
	matched := make([]TagRow, 0, len(tags))
	for _, t := range tags {
		if !t.Matches(search) {
			continue
		}
		matched = append(matched, TagRow{
			ID:      t.ID,
			Name:    t.Name,
			Type:    t.Type,
			Aliases: strings.Join(t.AliasNames(), ", "),
		})
	}

	c := pagination.New(perPage)
	c.CurrentPage = page
	rows, c := pagination.Paginate(matched, c)
	return TagsTable{
		Search: search,
		Rows:   rows,
		Pagination: PaginationModel{
			Control:     c,
			Label:       c.Label(),
			CanPrevious: c.CanPrevious(),
			CanNext:     c.CanNext(),
			PageSizes:   pagination.PageSizes(),
		},
	}, nil
}

func (u *Tags) Create(ctx context.Context, form tag.Form) (TagMutation, error) {
	form = normalizeTagForm(form)
	if err := validation.Struct(form, tagFormMessages); err != nil {
		return TagMutation{}, err
	}
	err := u.api.CreateTag(ctx, form.Tag())
	return u.finish(ctx, "adding", "Tag added!", err)
}

func (u *Tags) Update(ctx context.Context, form tag.Form) (TagMutation, error) {
	if form.ID <= 0 {
		return TagMutation{}, ErrInvalidInput
	}
	form = normalizeTagForm(form)
	if err := validation.Struct(form, tagFormMessages); err != nil {
		return TagMutation{}, err
	}
	err := u.api.UpdateTag(ctx, form.Tag())
	return u.finish(ctx, "editing", "Tag edited!", err)
}

func (u *Tags) Delete(ctx context.Context, id int64) (TagMutation, error) {
	if id <= 0 {
		return TagMutation{}, ErrInvalidInput
	}
	err := u.api.DeleteTag(ctx, id)
	return u.finish(ctx, "deleting", "Tag deleted!", err)
}

func (u *Tags) finish(ctx context.Context, verb, okMessage string, err error) (TagMutation, error) {
	if err != nil {
		u.logger.Warn("tag mutation failed", "action", verb, "error", err)
		failed := TagMutation{Message: "There was some error " + verb + " the tag."}
		if be, ok := asBackendError(err); ok && be.HTTPStatus() == 404 {
			return failed, ErrNotFound
		}
		return failed, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, tagsCachePattern); err != nil {
			u.logger.Warn("tags cache invalidation failed", "error", err)
		}
	}
	publish(u.publisher, EventTagsChanged, nil)
	return TagMutation{OK: true, Message: okMessage}, nil
}

func (u *Tags) cached(ctx context.Context, key string, out any) bool {
	if u.cache == nil {
		return false
	}
	hit, err := u.cache.GetJSON(ctx, key, out)
	if err != nil {
		u.logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	return hit
}

func (u *Tags) store(ctx context.Context, key string, v any) {
	if u.cache == nil {
		return
	}
	if err := u.cache.SetJSON(ctx, key, v, u.ttl); err != nil {
		u.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func normalizeTagForm(f tag.Form) tag.Form {
	f.Name = strings.TrimSpace(f.Name)
	f.Type = strings.TrimSpace(f.Type)
	aliases := make([]tag.Alias, len(f.Aliases))
	for i, a := range f.Aliases {
		a.Alias = strings.TrimSpace(a.Alias)
		aliases[i] = a
	}
	f.Aliases = aliases
	return f
}
