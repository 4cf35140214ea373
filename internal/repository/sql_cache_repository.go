package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sebasr/f1-telemetry-viewer/internal/database"
	"github.com/sebasr/f1-telemetry-viewer/internal/models"
)

// SQLCacheRepository implements CacheRepository on sqlite or PostgreSQL
type SQLCacheRepository struct {
	db  *database.DB
	now func() time.Time
}

// NewSQLCacheRepository creates a new cache repository
func NewSQLCacheRepository(db *database.DB) *SQLCacheRepository {
	return &SQLCacheRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Get retrieves a cached response
func (r *SQLCacheRepository) Get(ctx context.Context, key string) (*models.CacheEntry, error) {
	query := r.db.Rebind(`
		SELECT cache_key, body, fetched_at
		FROM provider_cache
		WHERE cache_key = ?
	`)

	entry := &models.CacheEntry{}
	err := r.db.QueryRowContext(ctx, query, key).Scan(&entry.Key, &entry.Body, &entry.FetchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to query cache entry: %w", err)
	}

	return entry, nil
}

// Put stores a response, replacing any previous entry for the key
func (r *SQLCacheRepository) Put(ctx context.Context, key string, body []byte) error {
	query := r.db.Rebind(`
		INSERT INTO provider_cache (cache_key, body, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT (cache_key) DO UPDATE
		SET body = excluded.body, fetched_at = excluded.fetched_at
	`)

	if _, err := r.db.ExecContext(ctx, query, key, body, r.now()); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}

	return nil
}

// Purge deletes entries fetched before the given time
func (r *SQLCacheRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	query := r.db.Rebind(`DELETE FROM provider_cache WHERE fetched_at < ?`)

	result, err := r.db.ExecContext(ctx, query, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged entries: %w", err)
	}

	return n, nil
}
