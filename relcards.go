// Package relcards extracts a bounded, de-duplicated list of related-content
// cards from a single rendered web page, enriches each card with a preview
// image, and persists the result as a normalized snapshot. The page's markup
// structure is not controlled by the extractor, so every extraction step is
// heuristic and degrades to empty values rather than failing.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package relcards
