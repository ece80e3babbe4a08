package mock

import (
	"context"

	"github.com/fwojciec/corpusmaker"
)

var _ corpusmaker.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of corpusmaker.ArticleService.
type ArticleService struct {
	CreateArticleFn   func(ctx context.Context, article *corpusmaker.Article) error
	FindArticleByIDFn func(ctx context.Context, id string) (*corpusmaker.Article, error)
	FindArticlesFn    func(ctx context.Context, filter corpusmaker.ArticleFilter) ([]*corpusmaker.Article, error)
	DeleteArticleFn   func(ctx context.Context, id string) error
	CountLabelsFn     func(ctx context.Context, limit int) ([]corpusmaker.LabelCount, error)
}

func (s *ArticleService) CreateArticle(ctx context.Context, article *corpusmaker.Article) error {
	return s.CreateArticleFn(ctx, article)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*corpusmaker.Article, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter corpusmaker.ArticleFilter) ([]*corpusmaker.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.DeleteArticleFn(ctx, id)
}

func (s *ArticleService) CountLabels(ctx context.Context, limit int) ([]corpusmaker.LabelCount, error) {
	return s.CountLabelsFn(ctx, limit)
}
