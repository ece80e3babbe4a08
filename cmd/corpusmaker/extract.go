package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/corpusmaker"
	"github.com/fwojciec/corpusmaker/bloom"
	"github.com/fwojciec/corpusmaker/corpus"
	"github.com/fwojciec/corpusmaker/fs"
	cmslog "github.com/fwojciec/corpusmaker/slog"
	"github.com/fwojciec/corpusmaker/wikitext"
)

// dedupFalsePositiveRate is the chance that a new title is taken for a
// duplicate and dropped.
const dedupFalsePositiveRate = 0.0001

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	cfg, err := c.Config()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", corpusmaker.ErrorMessage(err))
		return err
	}

	var store *fs.CorpusStore
	var articles corpusmaker.ArticleWriter = deps.Articles
	if c.Out != "" {
		store = fs.NewCorpusStore(filepath.Dir(c.Out), filepath.Base(c.Out))
		articles = store
	}
	if articles == nil {
		fmt.Fprintln(deps.Stderr, "error: no article store configured")
		return corpusmaker.Errorf(corpusmaker.EINTERNAL, "no article store configured")
	}
	if deps.Logger != nil {
		articles = cmslog.NewLoggingArticleWriter(articles, deps.Logger)
	}

	b := &corpus.Builder{
		Parser:      deps.Parser,
		Renderer:    deps.Renderer,
		Articles:    articles,
		Config:      cfg,
		Splits:      c.Splits,
		Concurrency: c.Concurrency,
	}
	var filter *bloom.Filter
	if c.Dedup {
		filter = bloom.NewFilter(c.ExpectedArticles, dedupFalsePositiveRate)
		b.Dedup = filter
	}
	if !c.KeepRedirects {
		b.Skip = func(rec *corpusmaker.DumpRecord) bool {
			return wikitext.IsRedirect(rec.Markup)
		}
	}

	progress := func(event corpus.ProgressEvent) {
		switch event.Type {
		case corpus.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Scanning %s in %d splits\n", c.Dump, event.Splits)
		case corpus.ProgressRecords:
			fmt.Fprintf(deps.Stdout, "  %d records (%.0f%%)\n", event.Records, event.Progress*100)
		case corpus.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", corpus.TruncateTitle(event.Title, 60), event.Error)
		}
	}

	result, err := b.Build(deps.Ctx, c.Dump, progress)
	if err != nil {
		if store != nil {
			_ = store.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error extracting: %v\n", err)
		return err
	}
	if store != nil {
		if err := store.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: failed to commit corpus: %v\n", err)
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d of %d records (%d skipped, %d duplicates, %d failed)\n",
		result.Saved, result.Records, result.Skipped, result.Duplicates, result.Failed)
	fmt.Fprintf(deps.Stdout, "  %d annotations, %s of text\n", result.Annotations, corpus.FormatBytes(result.Bytes))
	if filter != nil {
		fmt.Fprintf(deps.Stdout, "  ~%d distinct titles seen\n", filter.EstimatedCount())
	}
	if store != nil {
		fmt.Fprintf(deps.Stdout, "  Corpus written to %s\n", store.Dir())
	} else if deps.DB != nil {
		fmt.Fprintf(deps.Stdout, "  Corpus written to %s\n", deps.DB.Path())
	}
	return nil
}
