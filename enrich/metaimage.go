package enrich

import (
	"context"
	"net/url"
	"regexp"
	"time"

	"github.com/fwojciec/relcards"
)

// DefaultTimeout bounds a single metadata-image lookup.
const DefaultTimeout = 20 * time.Second

// Metadata tag patterns. Attribute order varies in the wild, so each tag is
// matched in both "attribute-then-content" and "content-then-attribute"
// form. og:image is preferred over twitter:image.
var metaImagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<meta[^>]*(?:property|name)\s*=\s*["']og:image["'][^>]*content\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?is)<meta[^>]*content\s*=\s*["']([^"']+)["'][^>]*(?:property|name)\s*=\s*["']og:image["']`),
	regexp.MustCompile(`(?is)<meta[^>]*(?:property|name)\s*=\s*["']twitter:image["'][^>]*content\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?is)<meta[^>]*content\s*=\s*["']([^"']+)["'][^>]*(?:property|name)\s*=\s*["']twitter:image["']`),
}

// Ensure MetaImages implements relcards.MetaImageService at compile time.
var _ relcards.MetaImageService = (*MetaImages)(nil)

// MetaImages resolves fallback preview images from page-level metadata
// tags. Fetch failures are isolated to the result and never propagate.
type MetaImages struct {
	fetcher relcards.Fetcher
	limiter *HostLimiter
	timeout time.Duration
}

// MetaImagesOption configures a MetaImages service.
type MetaImagesOption func(*MetaImages)

// WithTimeout sets the per-lookup timeout.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) MetaImagesOption {
	return func(m *MetaImages) {
		m.timeout = d
	}
}

// WithHostLimiter rate-limits lookups per target host.
func WithHostLimiter(l *HostLimiter) MetaImagesOption {
	return func(m *MetaImages) {
		m.limiter = l
	}
}

// NewMetaImages creates a new MetaImages service over the given fetcher.
func NewMetaImages(fetcher relcards.Fetcher, opts ...MetaImagesOption) *MetaImages {
	m := &MetaImages{
		fetcher: fetcher,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MetaImage fetches the page and returns the first og:image or
// twitter:image URL, resolved against the page's origin. The timeout is
// enforced by cancelling the in-flight fetch. A failed or timed-out fetch
// yields a result carrying the error; an absent tag yields a zero result.
func (m *MetaImages) MetaImage(ctx context.Context, pageURL string) relcards.ImageResult {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if m.limiter != nil {
		if err := m.limiter.Wait(ctx, hostOf(pageURL)); err != nil {
			return relcards.ImageResult{Err: err}
		}
	}

	body, err := m.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return relcards.ImageResult{Err: err}
	}

	if u := metaImageURL(body); u != "" {
		return relcards.ImageResult{URL: relcards.ResolveURL(relcards.Origin(pageURL), u)}
	}
	return relcards.ImageResult{}
}

// metaImageURL scans raw markup for the first matching metadata image tag.
func metaImageURL(body string) string {
	for _, re := range metaImagePatterns {
		if m := re.FindStringSubmatch(body); m != nil {
			return m[1]
		}
	}
	return ""
}

// hostOf returns the host portion of rawURL, or the raw value when it does
// not parse; an unparseable URL still gets a stable limiter key.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
