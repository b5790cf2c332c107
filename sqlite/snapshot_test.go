package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/relcards"
	"github.com/fwojciec/relcards/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustOpenDB opens an in-memory database for testing.
func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testSnapshot(sourceURL string) *relcards.Snapshot {
	return &relcards.Snapshot{
		SourceURL: sourceURL,
		ScrapedAt: time.Now().UTC().Truncate(time.Second),
		Items: []relcards.Card{
			{Title: "First", URL: sourceURL + "/a", Category: "News"},
			{Title: "Second", URL: sourceURL + "/b", Description: "A longer descriptive sentence about the second story."},
		},
	}
}

func TestSnapshotService_CreateSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and content hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(mustOpenDB(t))

		snap := testSnapshot("https://example.org")
		require.NoError(t, svc.CreateSnapshot(context.Background(), snap))

		assert.NotEmpty(t, snap.ID)
		assert.NotEmpty(t, snap.ContentHash)
	})

	t.Run("identical item lists hash identically", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(mustOpenDB(t))

		a := testSnapshot("https://example.org")
		b := testSnapshot("https://example.org")
		require.NoError(t, svc.CreateSnapshot(context.Background(), a))
		require.NoError(t, svc.CreateSnapshot(context.Background(), b))

		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, a.ContentHash, b.ContentHash)
	})

	t.Run("rejects invalid snapshots", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(mustOpenDB(t))

		err := svc.CreateSnapshot(context.Background(), &relcards.Snapshot{})
		require.Error(t, err)
		assert.Equal(t, relcards.EINVALID, relcards.ErrorCode(err))
	})

	t.Run("failed write leaves no partial state", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		// Remove the item table so the header insert succeeds and the first
		// item insert fails mid-create.
		_, err := db.ExecContext(ctx, "DROP TABLE snapshot_items")
		require.NoError(t, err)

		snap := testSnapshot("https://example.org")
		err = svc.CreateSnapshot(ctx, snap)
		require.Error(t, err)

		// The snapshot is only mutated once the write is durable.
		assert.Empty(t, snap.ID)
		assert.Empty(t, snap.ContentHash)

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots").Scan(&count))
		assert.Zero(t, count, "rolled-back create must not leave a header row")
	})
}

func TestSnapshotService_FindSnapshotByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips items in extraction order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(mustOpenDB(t))

		snap := testSnapshot("https://example.org")
		require.NoError(t, svc.CreateSnapshot(context.Background(), snap))

		got, err := svc.FindSnapshotByID(context.Background(), snap.ID)
		require.NoError(t, err)

		assert.Equal(t, snap.SourceURL, got.SourceURL)
		assert.True(t, snap.ScrapedAt.Equal(got.ScrapedAt))
		assert.Equal(t, snap.Items, got.Items)
	})

	t.Run("returns ENOTFOUND for missing snapshot", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(mustOpenDB(t))

		_, err := svc.FindSnapshotByID(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, relcards.ENOTFOUND, relcards.ErrorCode(err))
	})
}

func TestSnapshotService_FindSnapshots(t *testing.T) {
	t.Parallel()

	t.Run("filters by source URL newest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(mustOpenDB(t))
		ctx := context.Background()

		older := testSnapshot("https://example.org")
		older.ScrapedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		newer := testSnapshot("https://example.org")
		newer.ScrapedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		other := testSnapshot("https://other.org")

		require.NoError(t, svc.CreateSnapshot(ctx, older))
		require.NoError(t, svc.CreateSnapshot(ctx, newer))
		require.NoError(t, svc.CreateSnapshot(ctx, other))

		source := "https://example.org"
		got, err := svc.FindSnapshots(ctx, relcards.SnapshotFilter{SourceURL: &source})
		require.NoError(t, err)

		require.Len(t, got, 2)
		assert.Equal(t, newer.ID, got[0].ID)
		assert.Equal(t, older.ID, got[1].ID)
		assert.Len(t, got[0].Items, 2)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(mustOpenDB(t))
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			snap := testSnapshot("https://example.org")
			snap.ScrapedAt = time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC)
			require.NoError(t, svc.CreateSnapshot(ctx, snap))
		}

		got, err := svc.FindSnapshots(ctx, relcards.SnapshotFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "2026-01-04", got[0].ScrapedAt.Format("2006-01-02"))
		assert.Equal(t, "2026-01-03", got[1].ScrapedAt.Format("2006-01-02"))
	})
}

func TestSnapshotService_DeleteSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("removes snapshot and cascades items", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		snap := testSnapshot("https://example.org")
		require.NoError(t, svc.CreateSnapshot(ctx, snap))
		require.NoError(t, svc.DeleteSnapshot(ctx, snap.ID))

		_, err := svc.FindSnapshotByID(ctx, snap.ID)
		assert.Equal(t, relcards.ENOTFOUND, relcards.ErrorCode(err))

		var itemCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshot_items WHERE snapshot_id = ?", snap.ID).Scan(&itemCount)
		require.NoError(t, err)
		assert.Zero(t, itemCount)
	})

	t.Run("returns ENOTFOUND for missing snapshot", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(mustOpenDB(t))

		err := svc.DeleteSnapshot(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, relcards.ENOTFOUND, relcards.ErrorCode(err))
	})
}
