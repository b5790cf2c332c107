package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/relcards"
)

// Section locator thresholds. The section's actual container boundary is
// unknown, so the locator climbs ancestors until enough plausible cards are
// visible.
const (
	// MaxClimbDepth bounds the ancestor climb above the section heading.
	MaxClimbDepth = 10

	// MinContainerAnchors is the total-anchor count at which an ancestor is
	// accepted as the card container.
	MinContainerAnchors = 12
)

// locateSection finds the first heading whose normalized text contains the
// phrase (case-insensitive) and climbs its ancestors until a container
// plausibly holding multiple cards is found. Only a fully absent heading is
// an ENOTFOUND outcome; an exhausted climb returns the highest ancestor
// reached as a best effort.
func locateSection(doc *goquery.Document, heading string, itemCap int) (*goquery.Selection, error) {
	phrase := strings.ToLower(relcards.NormalizeText(heading))

	var target *goquery.Selection
	doc.Find(headingSelector).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(relcards.NormalizeText(h.Text())), phrase) {
			target = h
			return false
		}
		return true
	})
	if target == nil {
		return nil, relcards.Errorf(relcards.ENOTFOUND, "heading containing %q not found", heading)
	}

	current := target.Parent()
	if current.Length() == 0 {
		return target, nil
	}

	for depth := 1; ; depth++ {
		anchors := current.Find("a")
		if candidateAnchors(current).Length() >= itemCap || anchors.Length() >= MinContainerAnchors {
			return current, nil
		}
		if depth == MaxClimbDepth {
			break
		}
		parent := current.Parent()
		if parent.Length() == 0 {
			break
		}
		current = parent
	}

	// Neither condition held within the depth bound; the highest ancestor
	// examined stands in as the container.
	return current, nil
}
