package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/relcards"
	"github.com/fwojciec/relcards/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Renderer   relcards.Renderer
	Extractor  relcards.CardExtractor
	MetaImages relcards.MetaImageService
	Writer     relcards.SnapshotWriter

	// Snapshots is optional; when set, each run is also recorded in the
	// snapshot history store.
	Snapshots relcards.SnapshotService
}

// ScrapeCmd handles the main scrape operation.
type ScrapeCmd struct {
	URL         string
	Heading     string
	Concurrency int
}

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	scraper := &scrape.Scraper{
		Renderer:    deps.Renderer,
		Extractor:   deps.Extractor,
		MetaImages:  deps.MetaImages,
		Concurrency: c.Concurrency,
	}

	snapshot, err := scraper.Scrape(deps.Ctx, c.URL, c.Heading)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relcards.ErrorMessage(err))
		return err
	}

	if err := deps.Writer.WriteSnapshot(deps.Ctx, snapshot); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing snapshot: %v\n", err)
		return err
	}

	if deps.Snapshots != nil {
		if err := deps.Snapshots.CreateSnapshot(deps.Ctx, snapshot); err != nil {
			fmt.Fprintf(deps.Stderr, "error recording snapshot: %v\n", err)
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Extracted %d cards from %s\n", len(snapshot.Items), c.URL)
	return nil
}
