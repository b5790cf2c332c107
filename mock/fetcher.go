package mock

import (
	"context"

	"github.com/fwojciec/relcards"
)

var _ relcards.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of relcards.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ relcards.MetaImageService = (*MetaImageService)(nil)

// MetaImageService is a mock implementation of relcards.MetaImageService.
type MetaImageService struct {
	MetaImageFn func(ctx context.Context, pageURL string) relcards.ImageResult
}

func (s *MetaImageService) MetaImage(ctx context.Context, pageURL string) relcards.ImageResult {
	return s.MetaImageFn(ctx, pageURL)
}
