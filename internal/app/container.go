package app

import (
	"context"
	"fmt"
	"time"

	"listings-console/internal/config"
	"listings-console/internal/database"
	"listings-console/internal/database/migration"
	dbpostgres "listings-console/internal/database/postgres"
	"listings-console/internal/database/seeder"
	"listings-console/internal/domain/bookmark"
	"listings-console/internal/infrastructure/api"
	"listings-console/internal/infrastructure/cache"
	"listings-console/internal/infrastructure/persistence/postgres"
	"listings-console/internal/pkg/jwt"
	"listings-console/internal/pkg/logging"
	"listings-console/internal/usecase"
	"listings-console/internal/warmup"
	"listings-console/internal/ws"
	"listings-console/migrations"
)

const cacheKeyPrefix = "console:"

// Container owns every long-lived dependency of the console server.
type Container struct {
	Config config.Config
	Logger *logging.Logger

	DB    database.DB
	Cache usecase.Cache
	Redis *cache.Redis
	API   *api.Client
	Hub   *ws.Hub
	JWT   jwt.Service

	Listings  *usecase.Listings
	Tags      *usecase.Tags
	Auth      *usecase.Auth
	Bookmarks *usecase.Bookmarks
	Dashboard *usecase.DashboardUsecase

	Warmer *warmup.Warmer
}

func NewContainer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if cfg.Database.Enabled() {
		if err := c.openDatabase(ctx); err != nil {
			return nil, err
		}
	}

	switch cfg.Cache.Driver {
	case config.CacheDriverRedis:
		c.Redis = cache.NewRedis(cfg.Cache, cacheKeyPrefix, logger)
		c.Cache = c.Redis
	default:
		c.Cache = cache.NewMemory()
	}

	c.API = api.NewClient(cfg.API, logger)
	c.Hub = ws.NewHub(logger)
	c.JWT = jwt.NewHMACService(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.RememberTTL)

	var repo bookmark.Repository
	if c.DB != nil {
		repo = postgres.NewBookmarkRepository(c.DB)
	}

	sessions := func(cookies map[string]string) usecase.BackendSession {
		return c.API.NewSession(cookies)
	}

	c.Listings = usecase.NewListingsUsecase(c.API, c.Cache, c.Hub, cfg.Cache.TTL, logger)
	c.Tags = usecase.NewTagsUsecase(c.API, c.Cache, c.Hub, cfg.Cache.TTL, logger)
	c.Auth = usecase.NewAuthUsecase(sessions, c.JWT, logger)
	c.Bookmarks = usecase.NewBookmarksUsecase(repo, logger)
	c.Dashboard = usecase.NewDashboardUsecase(c.Listings, c.Tags, c.Bookmarks)

	if cfg.Warmup.Schedule != "" {
		c.Warmer = warmup.New(cfg.Warmup, c.Bookmarks, c.Listings, logger)
	}

	return c, nil
}

func (c *Container) openDatabase(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, c.Config.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := (migration.Runner{FS: migrations.FS, Logger: c.Logger}).Run(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("migrate: %w", err)
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger}).Run(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("seed: %w", err)
	}

	c.DB = db
	c.Logger.Info("bookmarks stored in postgres", "host", c.Config.Database.DBHost)
	return nil
}

// Start runs the background parts: the websocket hub and the optional warm-up. They
// stop when ctx is done.
func (c *Container) Start(ctx context.Context) error {
	go c.Hub.Run(ctx)

	if c.Warmer != nil {
		if err := c.Warmer.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	if c.Warmer != nil {
		c.Warmer.Stop()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("redis close failed", "error", err)
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
