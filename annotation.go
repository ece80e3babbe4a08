package corpusmaker

import (
	"context"
	"time"
	"unicode/utf8"
)

// AnnotationSpan marks the half-open character range [Start, End) of the
// rendered text that came from a link to Label. Offsets count Unicode code
// points of the rendered text, not bytes of the source markup.
type AnnotationSpan struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// Len returns the number of characters covered by the span.
func (s AnnotationSpan) Len() int {
	return s.End - s.Start
}

// Slice returns the characters of text covered by the span.
// Returns "" if the span falls outside text.
func (s AnnotationSpan) Slice(text string) string {
	if s.Start < 0 || s.End < s.Start {
		return ""
	}
	begin, end := -1, -1
	i := 0
	for off := range text {
		if i == s.Start {
			begin = off
		}
		if i == s.End {
			end = off
			break
		}
		i++
	}
	if begin == -1 && s.Start == i {
		begin = len(text)
	}
	if end == -1 && s.End == i {
		end = len(text)
	}
	if begin == -1 || end == -1 {
		return ""
	}
	return text[begin:end]
}

// Rendering is the result of rendering one markup tree.
type Rendering struct {
	Text        string           `json:"text"`
	Annotations []AnnotationSpan `json:"annotations"`
}

// Len returns the length of the rendered text in characters.
func (r *Rendering) Len() int {
	return utf8.RuneCountInString(r.Text)
}

// Renderer flattens a markup tree into plain text and link annotations.
type Renderer interface {
	// Render walks nodes under cfg.
	// Returns EINVALID if cfg is invalid.
	Render(nodes []Node, cfg *RenderConfig) (*Rendering, error)
}

// Article is a rendered dump record ready to be stored in a corpus.
type Article struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Text        string           `json:"text"`
	Annotations []AnnotationSpan `json:"annotations"`
	ContentHash string           `json:"contentHash"`
	SplitStart  int64            `json:"splitStart"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	for _, span := range a.Annotations {
		if span.Start < 0 || span.End < span.Start {
			return Errorf(EINVALID, "article %q has invalid span [%d,%d)", a.Title, span.Start, span.End)
		}
	}
	return nil
}

// ArticleWriter writes articles to a corpus.
type ArticleWriter interface {
	CreateArticle(ctx context.Context, article *Article) error
}

// ArticleService represents a service for managing stored articles.
type ArticleService interface {
	// CreateArticle stores a new article and its annotations.
	CreateArticle(ctx context.Context, article *Article) error

	// FindArticleByID retrieves an article with its annotations.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// DeleteArticle permanently removes an article and its annotations.
	// Returns ENOTFOUND if the article does not exist.
	DeleteArticle(ctx context.Context, id string) error

	// CountLabels returns annotation label frequencies, most frequent first.
	CountLabels(ctx context.Context, limit int) ([]LabelCount, error)
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID    *string `json:"id"`
	Title *string `json:"title"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// LabelCount is the number of annotations carrying a label.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}
