package bookmark

import (
	"context"
	"errors"
	"time"

	"listings-console/internal/domain/filter"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("bookmark not found")
	ErrDuplicate = errors.New("bookmark already exists")
)

// Bookmark is a named saved filter. Query is in console URL form,
// e.g. "onlyRemote=1&tagsIn=reactjs,typescript".
type Bookmark struct {
	ID        uuid.UUID `json:"id"`
	Group     string    `json:"group"`
	Name      string    `json:"name"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
}

// Filters parses Query into a filter selection.
func (b Bookmark) Filters() (filter.State, error) {
	return filter.ParseQuery(b.Query)
}

type Form struct {
	Group string `json:"group" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Query string `json:"query"`
}

type Repository interface {
	List(ctx context.Context) ([]Bookmark, error)
	Create(ctx context.Context, b Bookmark) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var defaults = []struct {
	group, name, query string
}{
	{"Remote", "React+Typescript", "onlyRemote=1&tagsIn=reactjs,typescript"},
	{"Remote", "Node+Typescript", "onlyRemote=1&tagsIn=nodejs,typescript"},
	{"Remote", "Next", "onlyRemote=1&tagsIn=nextjs"},
	{"LinkedIn", "React+Typescript", "providersIn=LinkedIn&tagsIn=reactjs,typescript&locationsIn=United%20States"},
	{"LinkedIn", "Node+Typescript", "providersIn=LinkedIn&tagsIn=nodejs,typescript&locationsIn=United%20States"},
	{"LinkedIn", "Next", "providersIn=LinkedIn&tagsIn=nextjs&locationsIn=United%20States"},
}

// Defaults are the built-in bookmarks. IDs are derived from group and name so they are
// stable across restarts.
func Defaults() []Bookmark {
	out := make([]Bookmark, 0, len(defaults))
	for _, d := range defaults {
		out = append(out, Bookmark{
			ID:    uuid.NewSHA1(uuid.NameSpaceURL, []byte("bookmark:"+d.group+"/"+d.name)),
			Group: d.group,
			Name:  d.name,
			Query: d.query,
		})
	}
	return out
}
