package mock

import "github.com/fwojciec/relcards"

var _ relcards.CardExtractor = (*CardExtractor)(nil)

// CardExtractor is a mock implementation of relcards.CardExtractor.
type CardExtractor struct {
	ExtractFn func(html, heading, origin string) ([]relcards.Card, error)
}

func (e *CardExtractor) Extract(html, heading, origin string) ([]relcards.Card, error) {
	return e.ExtractFn(html, heading, origin)
}
