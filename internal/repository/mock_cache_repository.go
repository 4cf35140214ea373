package repository

import (
	"context"
	"sync"
	"time"

	"github.com/sebasr/f1-telemetry-viewer/internal/models"
)

// MockCacheRepository is an in-memory implementation of CacheRepository for testing
type MockCacheRepository struct {
	GetFunc   func(ctx context.Context, key string) (*models.CacheEntry, error)
	PutFunc   func(ctx context.Context, key string, body []byte) error
	PurgeFunc func(ctx context.Context, before time.Time) (int64, error)

	mu      sync.Mutex
	entries map[string]*models.CacheEntry
}

// NewMockCacheRepository creates a mock backed by a map
func NewMockCacheRepository() *MockCacheRepository {
	m := &MockCacheRepository{entries: map[string]*models.CacheEntry{}}

	m.GetFunc = func(_ context.Context, key string) (*models.CacheEntry, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		entry, ok := m.entries[key]
		if !ok {
			return nil, ErrCacheMiss
		}
		copied := *entry
		return &copied, nil
	}
	m.PutFunc = func(_ context.Context, key string, body []byte) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.entries[key] = &models.CacheEntry{Key: key, Body: append([]byte(nil), body...), FetchedAt: time.Now().UTC()}
		return nil
	}
	m.PurgeFunc = func(_ context.Context, before time.Time) (int64, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		var n int64
		for key, entry := range m.entries {
			if entry.FetchedAt.Before(before) {
				delete(m.entries, key)
				n++
			}
		}
		return n, nil
	}

	return m
}

// Len returns the number of stored entries
func (m *MockCacheRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Get implements CacheRepository.Get
func (m *MockCacheRepository) Get(ctx context.Context, key string) (*models.CacheEntry, error) {
	return m.GetFunc(ctx, key)
}

// Put implements CacheRepository.Put
func (m *MockCacheRepository) Put(ctx context.Context, key string, body []byte) error {
	return m.PutFunc(ctx, key, body)
}

// Purge implements CacheRepository.Purge
func (m *MockCacheRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	return m.PurgeFunc(ctx, before)
}
