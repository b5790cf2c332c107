package relcards

import "strings"

// Length bands for ClassifyTexts. A short label reads as a category; a long
// run of text reads as a descriptive sentence.
const (
	MinCategoryLen    = 3
	MaxCategoryLen    = 45
	MinDescriptionLen = 60
)

// NormalizeText collapses all whitespace runs to a single space and trims
// leading and trailing whitespace. Empty input yields an empty string.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ClassifyTexts separates a card's leftover text fragments into a category
// (short label) and a description (full sentence) using length heuristics.
// Selection is first-match in the order given, not best-match: the category
// band is decided before the description band, so a string satisfying both
// is claimed as the category. Either result may be empty.
func ClassifyTexts(texts []string) (category, description string) {
	for _, t := range texts {
		if category == "" && len(t) >= MinCategoryLen && len(t) <= MaxCategoryLen {
			category = t
		}
		if description == "" && len(t) >= MinDescriptionLen {
			description = t
		}
		if category != "" && description != "" {
			break
		}
	}
	return category, description
}
