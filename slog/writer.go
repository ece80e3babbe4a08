package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/corpusmaker"
)

// Ensure LoggingArticleWriter implements corpusmaker.ArticleWriter.
var _ corpusmaker.ArticleWriter = (*LoggingArticleWriter)(nil)

// LoggingArticleWriter wraps an ArticleWriter with debug logging.
type LoggingArticleWriter struct {
	next   corpusmaker.ArticleWriter
	logger *slog.Logger
}

// NewLoggingArticleWriter creates a new LoggingArticleWriter.
func NewLoggingArticleWriter(next corpusmaker.ArticleWriter, logger *slog.Logger) *LoggingArticleWriter {
	return &LoggingArticleWriter{next: next, logger: logger}
}

// CreateArticle delegates to the wrapped writer and logs the operation.
func (w *LoggingArticleWriter) CreateArticle(ctx context.Context, article *corpusmaker.Article) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("create article",
			"title", article.Title,
			"bytes", len(article.Text),
			"spans", len(article.Annotations),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.CreateArticle(ctx, article)
}
