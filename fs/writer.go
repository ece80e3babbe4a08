// Package fs provides directory-based storage for rendered corpora.
//
// Every article becomes two files: <path>.txt holding the rendered text and
// <path>.ann holding one "start<TAB>end<TAB>label" line per annotation. An
// index.tsv file at the corpus root maps paths back to titles.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/corpusmaker"
)

// IndexFile is the name of the title index at the corpus root.
const IndexFile = "index.tsv"

// maxNameLen keeps escaped titles well below common file name limits.
const maxNameLen = 200

// TitleToPath converts an article title to a relative path without extension.
// Titles are spread over 256 shard directories by hash.
// Example: "Paris (city)" → 4e/Paris_(city)
func TitleToPath(title string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", corpusmaker.Errorf(corpusmaker.EINVALID, "article title required")
	}

	sum := titleHash(title)
	name := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	if strings.HasPrefix(name, ".") {
		name = "%2E" + name[1:]
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen] + "~" + sum
	}
	return sum[:2] + "/" + name, nil
}

func titleHash(title string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(title))
}

// FormatAnnotations formats spans as tab separated lines. Tabs and line
// breaks inside labels are replaced with spaces.
func FormatAnnotations(spans []corpusmaker.AnnotationSpan) string {
	var b strings.Builder
	for _, span := range spans {
		b.WriteString(strconv.Itoa(span.Start))
		b.WriteByte('\t')
		b.WriteString(strconv.Itoa(span.End))
		b.WriteByte('\t')
		b.WriteString(labelReplacer.Replace(span.Label))
		b.WriteByte('\n')
	}
	return b.String()
}

var labelReplacer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// Ensure Writer implements corpusmaker.ArticleWriter at compile time.
var _ corpusmaker.ArticleWriter = (*Writer)(nil)

// Writer writes articles as text and annotation files to a directory.
// It is safe for concurrent use.
type Writer struct {
	baseDir string
	mu      sync.Mutex
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// CreateArticle writes an article to disk and records it in the index.
// An article with the same title replaces the earlier files.
func (w *Writer) CreateArticle(ctx context.Context, article *corpusmaker.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	relPath, err := TitleToPath(article.Title)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(fullPath+".txt", []byte(article.Text), 0644); err != nil {
		return err
	}
	if err := os.WriteFile(fullPath+".ann", []byte(FormatAnnotations(article.Annotations)), 0644); err != nil {
		return err
	}

	return w.appendIndex(relPath, article.Title)
}

func (w *Writer) appendIndex(relPath, title string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(filepath.Join(w.baseDir, IndexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "%s\t%s\n", relPath, labelReplacer.Replace(title)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
