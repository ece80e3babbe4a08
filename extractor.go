package corpusmaker

// ExtractResult holds the main content of a saved HTML article page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the article body as clean HTML.
	// Navigation, sidebars and footers have been removed.
	ContentHTML string
}

// Extractor extracts the article body from a full HTML page.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
