package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/corpusmaker"
)

// Ensure CorpusStore implements corpusmaker.ArticleWriter at compile time.
var _ corpusmaker.ArticleWriter = (*CorpusStore)(nil)

// CorpusStore writes a corpus with atomic update semantics.
// Articles are saved to a temporary directory, then moved atomically on Commit.
// A temporary directory left behind by an interrupted run is removed before
// the first write.
type CorpusStore struct {
	baseDir string
	name    string
	writer  *Writer

	once     sync.Once
	resetErr error
}

// NewCorpusStore creates a new CorpusStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewCorpusStore(baseDir, name string) *CorpusStore {
	s := &CorpusStore{
		baseDir: baseDir,
		name:    name,
	}
	s.writer = NewWriter(s.tempDir())
	return s
}

func (s *CorpusStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

// Dir returns the directory the corpus appears in after Commit.
func (s *CorpusStore) Dir() string {
	return filepath.Join(s.baseDir, s.name)
}

// reset clears stale files from the temporary directory once per store.
func (s *CorpusStore) reset() error {
	s.once.Do(func() {
		s.resetErr = os.RemoveAll(s.tempDir())
	})
	return s.resetErr
}

// CreateArticle saves an article to the temporary directory.
func (s *CorpusStore) CreateArticle(ctx context.Context, article *corpusmaker.Article) error {
	if err := s.reset(); err != nil {
		return err
	}
	return s.writer.CreateArticle(ctx, article)
}

// Commit replaces the final directory with the saved articles.
func (s *CorpusStore) Commit() error {
	if err := s.reset(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.Dir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.Dir())
}

// Abort discards the saved articles.
func (s *CorpusStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
