package relcards

import "context"

// Fetcher retrieves raw documents over the network. Unlike Renderer it does
// not execute JavaScript; it is used for secondary per-card fetches where
// the page metadata is available in the static markup.
type Fetcher interface {
	// Fetch retrieves the document body at the URL.
	// The context controls timeout and cancellation; cancelling it aborts
	// the in-flight request.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases transport resources.
	Close() error
}

// ImageResult is the outcome of a metadata image lookup. It distinguishes
// "empty because absent" (URL and Err both zero) from "empty because failed"
// (Err non-nil). The serialized payload collapses both to an empty string;
// the distinction exists for observability.
type ImageResult struct {
	URL string
	Err error
}

// MetaImageService resolves preview images from page-level metadata tags.
type MetaImageService interface {
	// MetaImage fetches the page and returns the first og:image or
	// twitter:image URL found, resolved to an absolute URL. Fetch failures,
	// timeouts and non-success statuses are absorbed into the result;
	// MetaImage never returns through a panic or error return.
	MetaImage(ctx context.Context, pageURL string) ImageResult
}
