package mock

import "github.com/fwojciec/corpusmaker"

var _ corpusmaker.MarkupParser = (*MarkupParser)(nil)

// MarkupParser is a mock implementation of corpusmaker.MarkupParser.
type MarkupParser struct {
	ParseFn func(markup string) ([]corpusmaker.Node, error)
}

func (p *MarkupParser) Parse(markup string) ([]corpusmaker.Node, error) {
	return p.ParseFn(markup)
}
