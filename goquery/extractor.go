// Package goquery implements heuristic card extraction over rendered HTML.
// The input markup is not under our control, so every step here works on
// positional and length heuristics and degrades to empty values instead of
// failing.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/relcards"
	"golang.org/x/net/html"
)

// headingSelector matches top-level and sub-level headings.
const headingSelector = "h1, h2, h3, h4, h5, h6"

// Ensure Extractor implements relcards.CardExtractor at compile time.
var _ relcards.CardExtractor = (*Extractor)(nil)

// Extractor extracts related-content cards from rendered HTML.
type Extractor struct {
	maxItems int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxItems sets the item cap for a single extraction run.
// Defaults to relcards.MaxItems if not specified.
func WithMaxItems(n int) Option {
	return func(e *Extractor) {
		e.maxItems = n
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{maxItems: relcards.MaxItems}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract locates the section whose heading contains the given phrase and
// returns up to the item cap of cards with unique hrefs, in document order.
// Candidates missing a title or href are skipped rather than emitted
// partially. Returns ENOTFOUND if no matching heading exists.
func (e *Extractor) Extract(htmlContent, heading, origin string) ([]relcards.Card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, relcards.Errorf(relcards.EINVALID, "failed to parse HTML: %v", err)
	}

	container, err := locateSection(doc, heading, e.maxItems)
	if err != nil {
		return nil, err
	}

	// Track seen hrefs so the first-encountered card wins for a duplicate link.
	seen := make(map[string]struct{})
	var cards []relcards.Card

	candidateAnchors(container).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		title := relcards.NormalizeText(anchorHeadingText(a))
		if href == "" || title == "" {
			return true
		}
		if _, ok := seen[href]; ok {
			return true
		}
		seen[href] = struct{}{}

		root := cardRoot(a)
		category, description := relcards.ClassifyTexts(cardTexts(root, title))

		cards = append(cards, relcards.Card{
			Title:       title,
			URL:         relcards.ResolveURL(origin, href),
			Category:    category,
			Description: description,
			ImageURL:    resolveImage(root, origin),
		})
		return len(cards) < e.maxItems
	})

	return cards, nil
}

// candidateAnchors returns the anchors under the container that contain a
// heading or sit inside one, in document order.
func candidateAnchors(container *goquery.Selection) *goquery.Selection {
	return container.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return isCandidate(a)
	})
}

// isCandidate reports whether the anchor contains a heading element or has
// one among its ancestors.
func isCandidate(a *goquery.Selection) bool {
	if a.Find(headingSelector).Length() > 0 {
		return true
	}
	return headingAncestor(a) != nil
}

// headingAncestor returns the nearest heading element enclosing the anchor,
// or nil if there is none.
func headingAncestor(a *goquery.Selection) *html.Node {
	if len(a.Nodes) == 0 {
		return nil
	}
	for n := a.Nodes[0].Parent; n != nil; n = n.Parent {
		if isHeadingNode(n) {
			return n
		}
	}
	return nil
}

// isHeadingNode reports whether the node is an h1-h6 element.
func isHeadingNode(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// anchorHeadingText returns the raw text of the heading associated with the
// anchor: a heading inside the anchor, else the heading enclosing it.
func anchorHeadingText(a *goquery.Selection) string {
	if h := a.Find(headingSelector); h.Length() > 0 {
		return h.First().Text()
	}
	if h := a.Closest(headingSelector); h.Length() > 0 {
		return h.Text()
	}
	return ""
}

// cardRoot returns the nearest enclosing structural ancestor of the anchor,
// used as the scope for image and text extraction. Falls back to the
// immediate parent when no structural ancestor exists.
func cardRoot(a *goquery.Selection) *goquery.Selection {
	if root := a.Closest("article, li, section, div"); root.Length() > 0 {
		return root
	}
	return a.Parent()
}

// cardTexts collects the normalized text of paragraph, span and container
// elements inside the card root, excluding the title string itself.
// Elements that wrap other text-bearing elements are skipped so each text
// fragment is counted once, at its innermost element.
func cardTexts(root *goquery.Selection, title string) []string {
	var texts []string
	root.Find("p, span, div").Each(func(_ int, sel *goquery.Selection) {
		if sel.Find("p, span, div").Length() > 0 {
			return
		}
		t := relcards.NormalizeText(sel.Text())
		if t == "" || t == title {
			return
		}
		texts = append(texts, t)
	})
	return texts
}
