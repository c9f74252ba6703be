// Package seeder fills reference rows once migrations have created the schema.
package seeder

import (
	"context"
	"errors"
	"fmt"

	"listings-console/internal/database"
	"listings-console/internal/pkg/logging"
)

// Seeder inserts its rows inside the runner's transaction and reports how many were new.
type Seeder interface {
	Name() string
	Run(ctx context.Context, tx database.Tx) (int64, error)
}

func Defaults() []Seeder {
	return []Seeder{
		BookmarksSeeder{},
	}
}

// Runner applies every seeder in one transaction; a failing seeder leaves no rows behind.
type Runner struct {
	Seeders []Seeder
	Logger  *logging.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) (err error) {
	if db == nil {
		return errors.New("seed: nil db")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(context.Background())
		}
	}()

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		n, err := s.Run(ctx, tx)
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		r.Logger.Info("seeded", "seeder", s.Name(), "inserted", n)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}
