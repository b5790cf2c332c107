package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/relcards"
)

// imageAttrs is the attribute chain probed on the first image element.
// In a serialized DOM snapshot the browser-resolved source is what src
// carries; data-src and data-lazy-src cover common lazy-loading conventions.
var imageAttrs = []string{"src", "data-src", "data-lazy-src"}

// backgroundImageRe extracts the URL from a CSS background-image value,
// with optional quotes.
var backgroundImageRe = regexp.MustCompile(`url\(['"]?([^'")]+)['"]?\)`)

// resolveImage returns the single best-effort image URL for a card, trying
// in strict priority order: direct image attributes, the first responsive
// source's srcset, then an inline background-image style. Absence of a
// candidate at any step advances the chain; if all fail the result is an
// empty string. Candidates are resolved against origin.
func resolveImage(root *goquery.Selection, origin string) string {
	img := root.Find("img").First()
	for _, attr := range imageAttrs {
		if v := strings.TrimSpace(img.AttrOr(attr, "")); v != "" {
			return relcards.ResolveURL(origin, v)
		}
	}

	if v := firstSrcsetURL(root.Find("source[srcset]").First().AttrOr("srcset", "")); v != "" {
		return relcards.ResolveURL(origin, v)
	}

	styled := root.Find(`[style*="background-image"]`).First()
	if m := backgroundImageRe.FindStringSubmatch(styled.AttrOr("style", "")); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			return relcards.ResolveURL(origin, v)
		}
	}

	return ""
}

// firstSrcsetURL returns the URL token preceding the first descriptor of
// the first comma-separated srcset entry.
func firstSrcsetURL(srcset string) string {
	entry, _, _ := strings.Cut(srcset, ",")
	fields := strings.Fields(entry)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
