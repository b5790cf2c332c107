// Package mock provides function-field mock implementations of the
// relcards interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/relcards"
)

var _ relcards.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of relcards.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (string, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}
