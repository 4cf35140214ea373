// Package app wires configuration into the provider, cache and fetcher shared by
// the server and the CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sebasr/f1-telemetry-viewer/internal/config"
	"github.com/sebasr/f1-telemetry-viewer/internal/database"
	"github.com/sebasr/f1-telemetry-viewer/internal/provider"
	"github.com/sebasr/f1-telemetry-viewer/internal/repository"
	"github.com/sebasr/f1-telemetry-viewer/internal/telemetry"
)

// App holds the long-lived components built from configuration
type App struct {
	DB       *database.DB // nil when CACHE_DRIVER=none
	Provider provider.SessionProvider
	Fetcher  *telemetry.Fetcher
	Snapshot *telemetry.CSVSnapshot // nil when snapshots are disabled
}

// New opens the cache, runs its migration, drops entries older than the cache TTL
// and builds the fetcher
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{}

	var cache repository.CacheRepository
	if cfg.Cache.Driver != config.CacheDriverNone {
		db, err := database.New(&cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("failed to open provider cache: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate provider cache: %w", err)
		}
		a.DB = db
		sqlCache := repository.NewSQLCacheRepository(db)
		if cfg.Cache.TTL > 0 {
			purged, err := sqlCache.Purge(ctx, time.Now().Add(-cfg.Cache.TTL))
			if err != nil {
				logger.Warn("failed to purge expired cache entries", zap.Error(err))
			} else if purged > 0 {
				logger.Info("purged expired cache entries", zap.Int64("count", purged))
			}
		}
		cache = sqlCache
		logger.Info("provider cache ready", zap.String("driver", db.Driver))
	} else {
		logger.Info("provider cache disabled")
	}

	a.Provider = provider.NewOpenF1Client(cfg.Provider, cache, cfg.Cache, logger)
	a.Fetcher = telemetry.NewFetcher(a.Provider, logger)

	if cfg.Snapshot.Enabled {
		a.Snapshot = telemetry.NewCSVSnapshot(cfg.Snapshot.Path)
		a.Fetcher.WithSnapshot(a.Snapshot)
	}

	return a, nil
}

// Close releases the cache connection
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
