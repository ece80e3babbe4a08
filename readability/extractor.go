// Package readability isolates the article body of a saved encyclopedia page.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/corpusmaker"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements corpusmaker.Extractor at compile time.
var _ corpusmaker.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the article body from a page.
type Extractor struct {
	pageURL     *url.URL
	titleSuffix string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPageURL sets the address the page was saved from. Relative links in
// the content are resolved against it.
func WithPageURL(u *url.URL) Option {
	return func(e *Extractor) {
		e.pageURL = u
	}
}

// WithTitleSuffix strips a site name suffix such as " - Wikipedia" from
// extracted titles.
func WithTitleSuffix(suffix string) Option {
	return func(e *Extractor) {
		e.titleSuffix = suffix
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the article title and body.
func (e *Extractor) Extract(rawHTML string) (*corpusmaker.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, corpusmaker.Errorf(corpusmaker.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(article.Title)
	if e.titleSuffix != "" {
		title = strings.TrimSpace(strings.TrimSuffix(title, e.titleSuffix))
	}

	return &corpusmaker.ExtractResult{
		Title:       title,
		ContentHTML: article.Content,
	}, nil
}
