package client

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftStore(t *testing.T, now *time.Time) *SQLiteDraftStore {
	t.Helper()
	store, err := NewSQLiteDraftStore(filepath.Join(t.TempDir(), "drafts.db"), DraftTTL)
	require.NoError(t, err)
	store.now = func() time.Time { return *now }
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteDraftStore_SaveAndGet(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newDraftStore(t, &now)

	require.NoError(t, store.SaveDraft(Draft{RequestID: "req-1", Subject: "Invoice", CC: "ops@example.com", Content: "hello"}))
	require.NoError(t, store.SaveDraft(Draft{RequestID: "req-1", Subject: "Invoice v2", Content: "hello again"}))

	d, err := store.GetDraft("req-1")
	require.NoError(t, err)
	assert.Equal(t, "Invoice v2", d.Subject)
	assert.Empty(t, d.CC)
	assert.Equal(t, "hello again", d.Content)
	assert.True(t, now.Equal(d.SavedAt))
}

func TestSQLiteDraftStore_Expiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newDraftStore(t, &now)

	require.NoError(t, store.SaveDraft(Draft{RequestID: "req-1", Subject: "old"}))

	now = now.Add(71 * time.Hour)
	_, err := store.GetDraft("req-1")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = store.GetDraft("req-1")
	require.ErrorIs(t, err, ErrDraftNotFound)
}

func TestSQLiteDraftStore_Purge(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newDraftStore(t, &now)

	require.NoError(t, store.SaveDraft(Draft{RequestID: "old"}))
	now = now.Add(48 * time.Hour)
	require.NoError(t, store.SaveDraft(Draft{RequestID: "fresh"}))
	now = now.Add(48 * time.Hour)

	n, err := store.Purge()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = store.GetDraft("fresh")
	require.NoError(t, err)
}

func TestSQLiteDraftStore_Delete(t *testing.T) {
	now := time.Now()
	store := newDraftStore(t, &now)

	require.NoError(t, store.SaveDraft(Draft{RequestID: "req-1"}))
	require.NoError(t, store.DeleteDraft("req-1"))

	_, err := store.GetDraft("req-1")
	require.ErrorIs(t, err, ErrDraftNotFound)
	require.Error(t, store.SaveDraft(Draft{}))
}

func TestMemoryDraftStore_Expiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryDraftStore(DraftTTL, func() time.Time { return now })

	require.NoError(t, store.SaveDraft(Draft{RequestID: "req-1"}))
	now = now.Add(73 * time.Hour)

	_, err := store.GetDraft("req-1")
	require.ErrorIs(t, err, ErrDraftNotFound)
}
