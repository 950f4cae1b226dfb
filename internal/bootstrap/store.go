// Package bootstrap opens the configured document store for the campusdir binaries.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusdir/internal/config"
	"github.com/kailas-cloud/campusdir/internal/db"
	"github.com/kailas-cloud/campusdir/internal/db/memory"
	dbMongo "github.com/kailas-cloud/campusdir/internal/db/mongo"
	dbRedis "github.com/kailas-cloud/campusdir/internal/db/redis"
)

// OpenStore creates the store selected by cfg.Database.Driver and waits until it answers.
// valkey and redis share the rueidis store.
func OpenStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (db.Store, error) {
	var (
		store db.Store
		err   error
	)
	switch cfg.Database.Driver {
	case config.DriverValkey, config.DriverRedis:
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Database.Addrs,
			Username:  cfg.Database.Username,
			Password:  cfg.Database.Password,
			DB:        cfg.Database.DB,
			KeyPrefix: cfg.Storage.KeyPrefix,
		})
	case config.DriverMongo:
		store, err = dbMongo.NewStore(ctx, dbMongo.Config{
			URI:      cfg.Database.URI,
			Database: cfg.Database.Name,
		})
	case config.DriverMemory:
		logger.Warn("Using in-memory store, data is lost on exit")
		store = memory.NewStore()
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Database.Driver, err)
	}

	timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s store not ready: %w", cfg.Database.Driver, err)
	}
	return store, nil
}
