package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return NewStore(db)
}

func TestRecordAndList(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	store := openTestStore(t)

	base := Now()
	require.NoError(t, store.Record(ctx, Entry{OverlayID: -1, Kind: KindPushed, Body: "saved", CreatedAt: base}))
	require.NoError(t, store.Record(ctx, Entry{OverlayID: 0, Kind: KindPushed, Body: "uploading", CreatedAt: base.Add(time.Second)}))
	require.NoError(t, store.Record(ctx, Entry{OverlayID: 0, Kind: KindExpired, Body: "uploading", CreatedAt: base.Add(2 * time.Second)}))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// newest first
	require.Equal(t, KindExpired, entries[0].Kind)
	require.Equal(t, "saved", entries[2].Body)
	require.Equal(t, int64(-1), entries[2].OverlayID)
	require.NotEmpty(t, entries[0].ID, "row ids are assigned on insert")
}

func TestMigrateIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestPruneKeepsNewest(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	store := openTestStore(t)

	base := Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, Entry{
			Kind:      KindPushed,
			Body:      string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	require.NoError(t, store.Prune(ctx, 2))
	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "e", entries[0].Body)
	require.Equal(t, "d", entries[1].Body)
}

func TestPruneNegativeKeepClearsAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.Record(ctx, Entry{Kind: KindPushed, Body: "x"}))
	require.NoError(t, store.Prune(ctx, -1))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)
}
