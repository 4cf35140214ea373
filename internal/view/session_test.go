package view

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(0)

	sess := store.Create()
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, NotRequested, sess.State)
	assert.Nil(t, sess.Outcome)

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, sess.ID, got.ID)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestStore_Record(t *testing.T) {
	store := NewStore(0)
	sess := store.Create()

	first := &Outcome{Err: errors.New("boom")}
	got := store.Record(sess.ID, first)
	assert.Equal(t, Requested, got.State)
	assert.Same(t, first, got.Outcome)

	second := &Outcome{}
	store.Record(sess.ID, second)
	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, Requested, got.State, "requested is never left")
	assert.Same(t, second, got.Outcome, "new load replaces the previous outcome")
}

func TestStore_RecordUnknownID(t *testing.T) {
	store := NewStore(0)
	got := store.Record("abc", &Outcome{})
	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, 1, store.Len())
}

func TestStore_PrunesIdleSessions(t *testing.T) {
	store := NewStore(time.Hour)
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	old := store.Create()
	now = now.Add(2 * time.Hour)
	fresh := store.Create()

	_, ok := store.Get(old.ID)
	assert.False(t, ok)
	_, ok = store.Get(fresh.ID)
	assert.True(t, ok)
}

func TestStore_Concurrent(t *testing.T) {
	store := NewStore(0)
	sess := store.Create()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Record(sess.ID, &Outcome{})
			store.Get(sess.ID)
		}()
	}
	wg.Wait()

	got, _ := store.Get(sess.ID)
	assert.Equal(t, Requested, got.State)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "not_requested", NotRequested.String())
	assert.Equal(t, "requested", Requested.String())
}
