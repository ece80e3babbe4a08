package fs_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/corpusmaker"
	"github.com/fwojciec/corpusmaker/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "simple title",
			title: "Paris",
			want:  "Paris",
		},
		{
			name:  "spaces become underscores",
			title: "New York City",
			want:  "New_York_City",
		},
		{
			name:  "slashes are escaped",
			title: "AC/DC",
			want:  "AC%2FDC",
		},
		{
			name:  "leading dot is escaped",
			title: ".NET",
			want:  "%2ENET",
		},
		{
			name:  "dot dot cannot escape the corpus",
			title: "..",
			want:  "%2E.",
		},
		{
			name:  "non-ASCII is escaped",
			title: "Zürich",
			want:  "Z%C3%BCrich",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.TitleToPath(tt.title)

			require.NoError(t, err)
			dir, name := filepath.Split(filepath.FromSlash(got))
			assert.Equal(t, tt.want, name)
			assert.Len(t, filepath.Clean(dir), 2)
		})
	}

	t.Run("is stable per title", func(t *testing.T) {
		t.Parallel()

		a, err := fs.TitleToPath("Paris")
		require.NoError(t, err)
		b, err := fs.TitleToPath("Paris")
		require.NoError(t, err)

		assert.Equal(t, a, b)
	})

	t.Run("shortens long titles and keeps them distinct", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("a", 300)
		a, err := fs.TitleToPath(long + "1")
		require.NoError(t, err)
		b, err := fs.TitleToPath(long + "2")
		require.NoError(t, err)

		assert.Less(t, len(a), 230)
		assert.NotEqual(t, a, b)
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		t.Parallel()

		_, err := fs.TitleToPath("  ")

		require.Error(t, err)
		assert.Equal(t, corpusmaker.EINVALID, corpusmaker.ErrorCode(err))
	})
}

func TestFormatAnnotations(t *testing.T) {
	t.Parallel()

	got := fs.FormatAnnotations([]corpusmaker.AnnotationSpan{
		{Start: 4, End: 17, Label: "Paris"},
		{Start: 20, End: 25, Label: "Odd\tlabel\n"},
	})

	assert.Equal(t, "4\t17\tParis\n20\t25\tOdd label \n", got)
	assert.Empty(t, fs.FormatAnnotations(nil))
}

func TestWriter_CreateArticle(t *testing.T) {
	t.Parallel()

	t.Run("writes text annotations and index", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)
		article := &corpusmaker.Article{
			Title:       "Paris",
			Text:        "See Paris, France today.",
			Annotations: []corpusmaker.AnnotationSpan{{Start: 4, End: 17, Label: "Paris"}},
		}

		err := w.CreateArticle(context.Background(), article)

		require.NoError(t, err)
		rel, err := fs.TitleToPath("Paris")
		require.NoError(t, err)
		full := filepath.Join(baseDir, filepath.FromSlash(rel))

		text, err := os.ReadFile(full + ".txt")
		require.NoError(t, err)
		assert.Equal(t, "See Paris, France today.", string(text))

		ann, err := os.ReadFile(full + ".ann")
		require.NoError(t, err)
		assert.Equal(t, "4\t17\tParis\n", string(ann))

		index, err := os.ReadFile(filepath.Join(baseDir, fs.IndexFile))
		require.NoError(t, err)
		assert.Equal(t, rel+"\tParis\n", string(index))
	})

	t.Run("indexes every article under concurrent writes", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)

		var wg sync.WaitGroup
		errs := make([]error, 20)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = w.CreateArticle(context.Background(), &corpusmaker.Article{
					Title: fmt.Sprintf("Article %d", i),
					Text:  "text",
				})
			}()
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}
		index, err := os.ReadFile(filepath.Join(baseDir, fs.IndexFile))
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(string(index)), "\n"), 20)
	})

	t.Run("validates article", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		err := w.CreateArticle(context.Background(), &corpusmaker.Article{Text: "untitled"})

		require.Error(t, err)
		assert.Equal(t, corpusmaker.EINVALID, corpusmaker.ErrorCode(err))
	})
}
