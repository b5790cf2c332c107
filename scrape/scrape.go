// Package scrape orchestrates the extraction pipeline: render the seed
// page, extract related-content cards, enrich missing images through
// secondary fetches, and assemble the snapshot.
package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/relcards"
	"github.com/fwojciec/relcards/enrich"
)

// DefaultConcurrency is the enrichment worker count.
const DefaultConcurrency = 3

// Scraper runs a single extraction pass over one page.
type Scraper struct {
	Renderer    relcards.Renderer
	Extractor   relcards.CardExtractor
	MetaImages  relcards.MetaImageService
	Concurrency int
}

// Scrape renders the page at sourceURL, extracts up to relcards.MaxItems
// cards from the section whose heading contains the given phrase, and
// enriches cards that have no image through the metadata image service.
//
// A missing section yields a snapshot with zero items; only a render
// failure or a cancelled context is fatal. Per-card enrichment failures are
// absorbed into empty image fields. Item order matches extraction order.
func (s *Scraper) Scrape(ctx context.Context, sourceURL, heading string) (*relcards.Snapshot, error) {
	html, err := s.Renderer.Render(ctx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", sourceURL, err)
	}

	cards, err := s.Extractor.Extract(html, heading, relcards.Origin(sourceURL))
	if err != nil {
		if relcards.ErrorCode(err) != relcards.ENOTFOUND {
			return nil, fmt.Errorf("extract: %w", err)
		}
		// Target section absent: zero items, not a failure.
		cards = nil
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	items := enrich.Map(ctx, cards, concurrency, func(ctx context.Context, card relcards.Card) relcards.Card {
		if card.ImageURL != "" || s.MetaImages == nil {
			return card
		}
		res := s.MetaImages.MetaImage(ctx, card.URL)
		// A failed lookup leaves the image empty, same as an absent tag.
		card.ImageURL = res.URL
		return card
	})

	// A cancelled run leaves unclaimed slots as zero-value cards; those must
	// never surface as emitted items.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("enrich %s: %w", sourceURL, err)
	}

	return &relcards.Snapshot{
		SourceURL: sourceURL,
		ScrapedAt: time.Now().UTC(),
		Items:     items,
	}, nil
}
