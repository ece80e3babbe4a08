package mock

import (
	"context"

	"github.com/fwojciec/corpusmaker"
)

var _ corpusmaker.ArticleWriter = (*ArticleWriter)(nil)

// ArticleWriter is a mock implementation of corpusmaker.ArticleWriter.
type ArticleWriter struct {
	CreateArticleFn func(ctx context.Context, article *corpusmaker.Article) error
}

func (w *ArticleWriter) CreateArticle(ctx context.Context, article *corpusmaker.Article) error {
	return w.CreateArticleFn(ctx, article)
}
