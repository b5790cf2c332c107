// Package rod provides a browser-based implementation of relcards.Renderer
// using Chrome automation. Pages are rendered with JavaScript enabled and
// given a settle delay so client-side hydration completes before the DOM
// snapshot is taken.
package rod

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/fwojciec/relcards"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultSettleDelay is the wait after page load allowing client-side
// rendering to complete before the DOM is considered stable.
const DefaultSettleDelay = 2 * time.Second

// DefaultHeadingWait bounds the wait for the target heading to appear.
const DefaultHeadingWait = 5 * time.Second

// headingSelector matches top-level and sub-level headings.
const headingSelector = "h1, h2, h3, h4, h5, h6"

// Ensure Renderer implements relcards.Renderer at compile time.
var _ relcards.Renderer = (*Renderer)(nil)

// Renderer retrieves hydrated DOM snapshots using a headless Chrome browser.
// Renderer is safe for concurrent use by multiple goroutines.
type Renderer struct {
	browser     *rod.Browser
	settle      time.Duration
	heading     string
	headingWait time.Duration
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSettleDelay sets the post-load settle delay.
// Defaults to DefaultSettleDelay if not specified.
func WithSettleDelay(d time.Duration) Option {
	return func(r *Renderer) {
		r.settle = d
	}
}

// WithHeadingPhrase enables a best-effort wait for a heading containing the
// phrase before the snapshot is taken. A heading that never appears does not
// fail the render; extraction downgrades a missing heading to zero cards.
func WithHeadingPhrase(phrase string) Option {
	return func(r *Renderer) {
		r.heading = phrase
	}
}

// WithHeadingWait bounds the heading presence wait.
// Defaults to DefaultHeadingWait if not specified.
func WithHeadingWait(d time.Duration) Option {
	return func(r *Renderer) {
		r.headingWait = d
	}
}

// NewRenderer creates a new Renderer that launches a headless Chrome
// browser. Close must be called when the Renderer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		settle:      DefaultSettleDelay,
		headingWait: DefaultHeadingWait,
	}
	for _, opt := range opts {
		opt(r)
	}

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	r.browser = browser
	return r, nil
}

// Render navigates to the URL, waits for hydration to settle, and returns
// the rendered HTML.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Best-effort presence check for the target heading. A timeout here is
	// not fatal: the page may simply not have the section.
	if r.heading != "" {
		waitPage := page.Timeout(r.headingWait)
		_, _ = waitPage.ElementR(headingSelector, "/"+regexp.QuoteMeta(r.heading)+"/i")
	}

	if err := r.waitSettle(ctx); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// waitSettle sleeps for the settle delay, honoring context cancellation.
func (r *Renderer) waitSettle(ctx context.Context) error {
	if r.settle <= 0 {
		return nil
	}
	timer := time.NewTimer(r.settle)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Close releases browser resources.
func (r *Renderer) Close() error {
	return r.browser.Close()
}
