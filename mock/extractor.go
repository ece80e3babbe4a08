package mock

import "github.com/fwojciec/corpusmaker"

var _ corpusmaker.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of corpusmaker.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*corpusmaker.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*corpusmaker.ExtractResult, error) {
	return e.ExtractFn(html)
}
