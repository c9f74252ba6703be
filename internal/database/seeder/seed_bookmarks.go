package seeder

import (
	"context"

	"listings-console/internal/database"
	"listings-console/internal/domain/bookmark"
)

// BookmarksSeeder inserts the built-in saved filters. Existing rows with the same
// group and name are left alone.
type BookmarksSeeder struct{}

func (BookmarksSeeder) Name() string { return "bookmarks" }

func (BookmarksSeeder) Run(ctx context.Context, tx database.Tx) (int64, error) {
	var inserted int64
	for _, b := range bookmark.Defaults() {
		n, err := tx.Exec(
			ctx,
			`INSERT INTO bookmarks (id, group_name, name, query) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
			b.ID,
			b.Group,
			b.Name,
			b.Query,
		)
		if err != nil {
			return inserted, err
		}
		inserted += n
	}
	return inserted, nil
}
