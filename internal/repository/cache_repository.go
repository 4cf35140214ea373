// Package repository provides data access interfaces and implementations.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sebasr/f1-telemetry-viewer/internal/models"
)

// ErrCacheMiss is returned when no entry exists for a key
var ErrCacheMiss = errors.New("cache miss")

// CacheRepository stores raw provider responses keyed by request URL
type CacheRepository interface {
	// Get returns the entry for key or ErrCacheMiss
	Get(ctx context.Context, key string) (*models.CacheEntry, error)

	// Put inserts or replaces the entry for key
	Put(ctx context.Context, key string, body []byte) error

	// Purge removes entries fetched before the given time and returns how many were removed
	Purge(ctx context.Context, before time.Time) (int64, error)
}
