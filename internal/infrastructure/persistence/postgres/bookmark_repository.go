package postgres

import (
	"context"
	"errors"
	"time"

	"listings-console/internal/database"
	"listings-console/internal/domain/bookmark"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type BookmarkRepository struct {
	db database.DB
}

func NewBookmarkRepository(db database.DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

func (r *BookmarkRepository) List(ctx context.Context) ([]bookmark.Bookmark, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, group_name, name, query, created_at
		 FROM bookmarks
		 ORDER BY group_name, created_at, name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []bookmark.Bookmark{}
	for rows.Next() {
		var b bookmark.Bookmark
		if err := rows.Scan(&b.ID, &b.Group, &b.Name, &b.Query, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookmarkRepository) Create(ctx context.Context, b bookmark.Bookmark) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO bookmarks (id, group_name, name, query, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		b.ID,
		b.Group,
		b.Name,
		b.Query,
		b.CreatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return bookmark.ErrDuplicate
	}
	return err
}

func (r *BookmarkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM bookmarks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return bookmark.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ bookmark.Repository = (*BookmarkRepository)(nil)
