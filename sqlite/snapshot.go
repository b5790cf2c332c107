package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/relcards"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ relcards.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements relcards.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// hashItems computes the xxHash of the serialized item list and returns a
// hex string. The hash lets downstream readers detect unchanged runs.
func hashItems(items []relcards.Card) string {
	data, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64(data))
	return hex.EncodeToString(b[:])
}

// CreateSnapshot stores a snapshot and its items in a single transaction.
// The snapshot's ID, scrape time and content hash are assigned only after
// the write commits, so a failed create leaves the snapshot untouched and
// the store without a partial record.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *relcards.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	id := uuid.New().String()
	scrapedAt := snapshot.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now().UTC()
	}
	hash := hashItems(snapshot.Items)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, source_url, content_hash, scraped_at)
		VALUES (?, ?, ?, ?)
	`, id, snapshot.SourceURL, hash, scrapedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	for i, item := range snapshot.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO snapshot_items (snapshot_id, position, title, url, category, description, image_url)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, i, item.Title, item.URL, item.Category, item.Description, item.ImageURL); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	snapshot.ID = id
	snapshot.ScrapedAt = scrapedAt
	snapshot.ContentHash = hash
	return nil
}

// FindSnapshotByID retrieves a snapshot by ID, items in extraction order.
func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*relcards.Snapshot, error) {
	var snap relcards.Snapshot
	var scrapedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, content_hash, scraped_at
		FROM snapshots
		WHERE id = ?
	`, id).Scan(&snap.ID, &snap.SourceURL, &snap.ContentHash, &scrapedAt)

	if err == sql.ErrNoRows {
		return nil, relcards.Errorf(relcards.ENOTFOUND, "snapshot not found")
	}
	if err != nil {
		return nil, err
	}

	snap.ScrapedAt, err = parseScrapedAt(scrapedAt)
	if err != nil {
		return nil, err
	}

	snap.Items, err = s.findItems(ctx, snap.ID)
	if err != nil {
		return nil, err
	}

	return &snap, nil
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
// Items are loaded for every returned snapshot.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter relcards.SnapshotFilter) ([]*relcards.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, content_hash, scraped_at FROM snapshots WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY scraped_at DESC")
	paginate(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*relcards.Snapshot
	for rows.Next() {
		var snap relcards.Snapshot
		var scrapedAt string
		if err := rows.Scan(&snap.ID, &snap.SourceURL, &snap.ContentHash, &scrapedAt); err != nil {
			return nil, err
		}
		snap.ScrapedAt, err = parseScrapedAt(scrapedAt)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, snap := range snapshots {
		snap.Items, err = s.findItems(ctx, snap.ID)
		if err != nil {
			return nil, err
		}
	}

	return snapshots, nil
}

// DeleteSnapshot permanently removes a snapshot; items cascade.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return relcards.Errorf(relcards.ENOTFOUND, "snapshot not found")
	}

	return nil
}

// findItems loads a snapshot's items in position order.
func (s *SnapshotService) findItems(ctx context.Context, snapshotID string) ([]relcards.Card, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, url, category, description, image_url
		FROM snapshot_items
		WHERE snapshot_id = ?
		ORDER BY position ASC
	`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []relcards.Card{}
	for rows.Next() {
		var item relcards.Card
		if err := rows.Scan(&item.Title, &item.URL, &item.Category, &item.Description, &item.ImageURL); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// parseScrapedAt parses a stored scraped_at column value. Timestamps are
// written by this package in RFC3339 form; anything else is a corrupt row.
func parseScrapedAt(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, relcards.Errorf(relcards.EINTERNAL, "corrupt scraped_at value %q in history store", value)
	}
	return t, nil
}

// paginate appends LIMIT and OFFSET clauses for positive filter values.
func paginate(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
