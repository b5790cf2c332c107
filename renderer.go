package relcards

import "context"

// Renderer retrieves a hydrated DOM snapshot of a page.
// Implementations may use browser automation to wait out client-side
// rendering before the snapshot is taken.
type Renderer interface {
	// Render navigates to the URL, waits for the page to settle,
	// and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Render(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Renderer is no longer needed.
	Close() error
}
