package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/corpusmaker"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ corpusmaker.ArticleService = (*ArticleService)(nil)
	_ corpusmaker.ArticleWriter  = (*ArticleService)(nil)
)

const articleColumns = "id, title, text, content_hash, split_start, created_at"

// ArticleService implements corpusmaker.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// CreateArticle stores an article and its annotations in one transaction.
// ID, ContentHash and CreatedAt are assigned.
func (s *ArticleService) CreateArticle(ctx context.Context, article *corpusmaker.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	article.ID = uuid.New().String()
	article.CreatedAt = time.Now().UTC().Truncate(time.Second)
	article.ContentHash = hashContent(article.Text)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO articles (id, title, text, content_hash, split_start, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, article.ID, article.Title, article.Text, article.ContentHash, article.SplitStart,
		article.CreatedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	if len(article.Annotations) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO annotations (article_id, position, start_offset, end_offset, label)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, span := range article.Annotations {
			if _, err := stmt.ExecContext(ctx, article.ID, i, span.Start, span.End, span.Label); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// FindArticleByID retrieves an article with its annotations.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*corpusmaker.Article, error) {
	article, err := scanArticle(s.db.QueryRowContext(ctx,
		"SELECT "+articleColumns+" FROM articles WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, corpusmaker.Errorf(corpusmaker.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}

	if article.Annotations, err = s.findAnnotations(ctx, article.ID); err != nil {
		return nil, err
	}
	return article, nil
}

// FindArticles retrieves articles matching the filter ordered by title.
// Annotations are loaded for every returned article.
func (s *ArticleService) FindArticles(ctx context.Context, filter corpusmaker.ArticleFilter) ([]*corpusmaker.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Title != nil {
		query.WriteString(" AND title = ?")
		args = append(args, *filter.Title)
	}

	query.WriteString(" ORDER BY title ASC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*corpusmaker.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// The pool holds a single connection, so annotations are read only
	// after the article rows are released.
	rows.Close()

	for _, article := range articles {
		if article.Annotations, err = s.findAnnotations(ctx, article.ID); err != nil {
			return nil, err
		}
	}
	return articles, nil
}

// DeleteArticle permanently removes an article and its annotations.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return corpusmaker.Errorf(corpusmaker.ENOTFOUND, "article not found")
	}

	return nil
}

// CountLabels returns annotation label frequencies, most frequent first.
// Ties are ordered by label. A limit <= 0 returns every label.
func (s *ArticleService) CountLabels(ctx context.Context, limit int) ([]corpusmaker.LabelCount, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT label, COUNT(*) AS n FROM annotations GROUP BY label ORDER BY n DESC, label ASC")
	appendPagination(&query, &args, limit, 0)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []corpusmaker.LabelCount
	for rows.Next() {
		var c corpusmaker.LabelCount
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (s *ArticleService) findAnnotations(ctx context.Context, articleID string) ([]corpusmaker.AnnotationSpan, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT start_offset, end_offset, label
		FROM annotations
		WHERE article_id = ?
		ORDER BY position ASC
	`, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spans []corpusmaker.AnnotationSpan
	for rows.Next() {
		var span corpusmaker.AnnotationSpan
		if err := rows.Scan(&span.Start, &span.End, &span.Label); err != nil {
			return nil, err
		}
		spans = append(spans, span)
	}
	return spans, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*corpusmaker.Article, error) {
	var article corpusmaker.Article
	var createdAt string

	if err := row.Scan(&article.ID, &article.Title, &article.Text, &article.ContentHash,
		&article.SplitStart, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if article.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &article, nil
}
