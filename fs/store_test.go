package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/corpusmaker"
	"github.com/fwojciec/corpusmaker/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic Corpus Storage
// The store uses a temp directory for atomic updates

func articlePath(t *testing.T, dir, title string) string {
	t.Helper()
	rel, err := fs.TitleToPath(title)
	require.NoError(t, err)
	return filepath.Join(dir, filepath.FromSlash(rel))
}

func TestCorpusStore_CreateArticleWritesToTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a store targeting a directory
	base := t.TempDir()
	store := fs.NewCorpusStore(base, "corpus")

	// When I save an article
	err := store.CreateArticle(context.Background(), &corpusmaker.Article{
		Title: "Seine",
		Text:  "The Seine is a river.",
	})

	// Then no error occurs
	require.NoError(t, err)

	// And the text exists in the temp directory
	_, err = os.Stat(articlePath(t, filepath.Join(base, "corpus.tmp"), "Seine") + ".txt")
	require.NoError(t, err, "file should exist in temp directory")

	// And the final directory does not exist yet
	_, err = os.Stat(store.Dir())
	assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
}

func TestCorpusStore_CommitMovesFromTempToFinal(t *testing.T) {
	t.Parallel()

	// Given a store with a saved article
	base := t.TempDir()
	store := fs.NewCorpusStore(base, "corpus")
	require.NoError(t, store.CreateArticle(context.Background(), &corpusmaker.Article{
		Title:       "Seine",
		Text:        "The Seine",
		Annotations: []corpusmaker.AnnotationSpan{{Start: 4, End: 9, Label: "Seine"}},
	}))

	// When I commit
	err := store.Commit()

	// Then the article is in the final directory
	require.NoError(t, err)
	ann, err := os.ReadFile(articlePath(t, store.Dir(), "Seine") + ".ann")
	require.NoError(t, err)
	assert.Equal(t, "4\t9\tSeine\n", string(ann))

	// And the temp directory is gone
	_, err = os.Stat(filepath.Join(base, "corpus.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after commit")
}

func TestCorpusStore_CommitReplacesPreviousCorpus(t *testing.T) {
	t.Parallel()

	// Given a committed corpus
	base := t.TempDir()
	first := fs.NewCorpusStore(base, "corpus")
	require.NoError(t, first.CreateArticle(context.Background(), &corpusmaker.Article{Title: "Old", Text: "old"}))
	require.NoError(t, first.Commit())

	// When a new corpus is committed in its place
	second := fs.NewCorpusStore(base, "corpus")
	require.NoError(t, second.CreateArticle(context.Background(), &corpusmaker.Article{Title: "New", Text: "new"}))
	require.NoError(t, second.Commit())

	// Then only the new articles remain
	_, err := os.Stat(articlePath(t, second.Dir(), "New") + ".txt")
	require.NoError(t, err)
	_, err = os.Stat(articlePath(t, second.Dir(), "Old") + ".txt")
	assert.True(t, os.IsNotExist(err))
}

func TestCorpusStore_CommitEmptyCorpus(t *testing.T) {
	t.Parallel()

	// Given a store with nothing saved
	store := fs.NewCorpusStore(t.TempDir(), "corpus")

	// When I commit
	err := store.Commit()

	// Then an empty corpus directory exists
	require.NoError(t, err)
	info, err := os.Stat(store.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCorpusStore_AbortCleansUpTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a store with a saved article
	base := t.TempDir()
	store := fs.NewCorpusStore(base, "corpus")
	require.NoError(t, store.CreateArticle(context.Background(), &corpusmaker.Article{Title: "A", Text: "a"}))

	// When I abort
	err := store.Abort()

	// Then the temp directory is cleaned up
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "corpus.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after abort")

	// And the final directory doesn't exist
	_, err = os.Stat(store.Dir())
	assert.True(t, os.IsNotExist(err), "final directory should not exist after abort")
}

func TestCorpusStore_DiscardsStaleTempDirectory(t *testing.T) {
	t.Parallel()

	t.Run("drops articles left by an interrupted run", func(t *testing.T) {
		t.Parallel()

		// Given an interrupted run that saved an article but never committed
		base := t.TempDir()
		interrupted := fs.NewCorpusStore(base, "corpus")
		require.NoError(t, interrupted.CreateArticle(context.Background(), &corpusmaker.Article{Title: "Stale", Text: "old"}))

		// When a new run saves an article and commits
		store := fs.NewCorpusStore(base, "corpus")
		require.NoError(t, store.CreateArticle(context.Background(), &corpusmaker.Article{Title: "Fresh", Text: "new"}))
		require.NoError(t, store.Commit())

		// Then the index lists only the new article
		freshRel, err := fs.TitleToPath("Fresh")
		require.NoError(t, err)
		index, err := os.ReadFile(filepath.Join(store.Dir(), fs.IndexFile))
		require.NoError(t, err)
		assert.Equal(t, freshRel+"\tFresh\n", string(index))

		// And the stale article is gone
		_, err = os.Stat(articlePath(t, store.Dir(), "Stale") + ".txt")
		assert.True(t, os.IsNotExist(err), "stale article should not be committed")

		// And no temp directory remains
		_, err = os.Stat(filepath.Join(base, "corpus.tmp"))
		assert.True(t, os.IsNotExist(err), "temp directory should be moved on commit")
	})

	t.Run("commits an empty corpus over stale files", func(t *testing.T) {
		t.Parallel()

		// Given leftover files in the temp directory
		base := t.TempDir()
		stale := filepath.Join(base, "corpus.tmp")
		require.NoError(t, os.MkdirAll(stale, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(stale, fs.IndexFile), []byte("40/Stale\tStale\n"), 0644))

		// When a store commits without saving anything
		store := fs.NewCorpusStore(base, "corpus")
		require.NoError(t, store.Commit())

		// Then the committed corpus is empty
		entries, err := os.ReadDir(store.Dir())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
