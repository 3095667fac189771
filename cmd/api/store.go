package main

import (
	"context"
	"fmt"
	"io"

	"github.com/angelmondragon/rocketshoes-cart/internal/storage"
	"github.com/angelmondragon/rocketshoes-cart/pkg/config"
	"github.com/angelmondragon/rocketshoes-cart/pkg/db"
	"github.com/angelmondragon/rocketshoes-cart/pkg/logger"
	"github.com/angelmondragon/rocketshoes-cart/pkg/migrate"
	"github.com/angelmondragon/rocketshoes-cart/pkg/redis"
	"go.uber.org/multierr"
)

type store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}

// resources tracks the persistence backend plus everything that must be closed on exit.
type resources struct {
	store   store
	closers []io.Closer
}

func (r *resources) add(c io.Closer) {
	r.closers = append(r.closers, c)
}

// Close releases resources in reverse order of acquisition.
func (r *resources) Close() error {
	var err error
	for i := len(r.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, r.closers[i].Close())
	}
	return err
}

func openStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*resources, error) {
	res := &resources{}
	driver := cfg.Storage.NormalizedDriver()

	switch driver {
	case config.StorageMemory:
		logg.Warn(ctx, "using in-memory cart storage; the cart is lost on restart")
		res.store = storage.NewMemory()

	case config.StorageRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		res.add(client)
		s, err := storage.NewRedis(client)
		if err != nil {
			return nil, multierr.Append(err, res.Close())
		}
		res.store = s

	case config.StoragePostgres, config.StorageSQLite:
		client, err := db.New(ctx, driver, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap database: %w", err)
		}
		res.add(client)
		if cfg.DB.AutoMigrate {
			sqlDB, err := client.DB().DB()
			if err != nil {
				return nil, multierr.Append(err, res.Close())
			}
			if err := migrate.Up(ctx, sqlDB, client.Dialect()); err != nil {
				return nil, multierr.Append(fmt.Errorf("apply migrations: %w", err), res.Close())
			}
			logg.Info(ctx, "migrations applied")
		}
		s, err := storage.NewSQL(client)
		if err != nil {
			return nil, multierr.Append(err, res.Close())
		}
		res.store = s

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	return res, nil
}
