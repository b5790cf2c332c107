package relcards

import (
	"context"
	"time"
)

// MaxItems is the upper bound on cards emitted by a single extraction run.
const MaxItems = 8

// Card represents one extracted related-content entry. Title and URL are
// always present on an emitted card; the remaining fields are best-effort
// and empty when the source markup did not yield them.
type Card struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Validate returns an error if the card contains invalid fields.
func (c *Card) Validate() error {
	if c.Title == "" {
		return Errorf(EINVALID, "card title required")
	}
	if c.URL == "" {
		return Errorf(EINVALID, "card URL required")
	}
	return nil
}

// Snapshot is the persisted artifact of a single extraction run.
// ID and ContentHash are storage concerns and do not appear in the
// serialized payload.
type Snapshot struct {
	ID          string    `json:"-"`
	SourceURL   string    `json:"sourceUrl"`
	ScrapedAt   time.Time `json:"scrapedAt"`
	Items       []Card    `json:"items"`
	ContentHash string    `json:"-"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.SourceURL == "" {
		return Errorf(EINVALID, "snapshot source URL required")
	}
	if len(s.Items) > MaxItems {
		return Errorf(EINVALID, "snapshot exceeds %d items", MaxItems)
	}
	for i := range s.Items {
		if err := s.Items[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CardExtractor extracts related-content cards from rendered HTML.
type CardExtractor interface {
	// Extract locates the content section whose heading contains the given
	// phrase (case-insensitive) and returns up to MaxItems cards with unique
	// URLs, in first-encountered document order. URLs are resolved against
	// origin. Returns ENOTFOUND if no matching heading exists; callers must
	// treat that as zero extracted cards, not a fatal condition.
	Extract(html, heading, origin string) ([]Card, error)
}

// SnapshotWriter persists a snapshot as an external artifact.
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, snapshot *Snapshot) error
}

// SnapshotService represents a service for managing stored snapshots.
type SnapshotService interface {
	// CreateSnapshot stores a new snapshot and its items.
	CreateSnapshot(ctx context.Context, snapshot *Snapshot) error

	// FindSnapshotByID retrieves a snapshot by ID, items in extraction order.
	// Returns ENOTFOUND if the snapshot does not exist.
	FindSnapshotByID(ctx context.Context, id string) (*Snapshot, error)

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// DeleteSnapshot permanently removes a snapshot and its items.
	// Returns ENOTFOUND if the snapshot does not exist.
	DeleteSnapshot(ctx context.Context, id string) error
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
