package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/corpusmaker"
	"github.com/fwojciec/corpusmaker/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreateArticle measures single article inserts with a realistic
// number of annotations per article.
func BenchmarkCreateArticle(b *testing.B) {
	for _, spans := range []int{0, 20, 200} {
		b.Run(fmt.Sprintf("spans=%d", spans), func(b *testing.B) {
			db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
			require.NoError(b, db.Open())
			defer db.Close()

			svc := sqlite.NewArticleService(db)
			ctx := context.Background()

			annotations := make([]corpusmaker.AnnotationSpan, spans)
			for i := range annotations {
				annotations[i] = corpusmaker.AnnotationSpan{Start: i * 10, End: i*10 + 5, Label: fmt.Sprintf("Label %d", i%17)}
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				article := &corpusmaker.Article{
					Title:       fmt.Sprintf("Article %d", i),
					Text:        "Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
					Annotations: annotations,
				}
				if err := svc.CreateArticle(ctx, article); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
