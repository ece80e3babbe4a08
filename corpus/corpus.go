// Package corpus builds an annotated corpus from a dump file. The dump is
// divided into byte-range splits that are scanned concurrently; every record
// is parsed, rendered and handed to an ArticleWriter.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fwojciec/corpusmaker"
	"github.com/fwojciec/corpusmaker/dump"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Defaults applied when the corresponding Builder field is zero.
const (
	DefaultConcurrency      = 4
	DefaultProgressInterval = time.Second
)

// Deduplicator reports whether a title was seen before, recording it.
// Implementations must be safe for concurrent use.
type Deduplicator interface {
	Seen(title string) bool
}

// OpenFunc opens a record reader over one split of the dump at path.
type OpenFunc func(path string, rng corpusmaker.ByteRange) (corpusmaker.RecordReader, error)

// Builder orchestrates corpus extraction.
type Builder struct {
	Parser   corpusmaker.MarkupParser
	Renderer corpusmaker.Renderer
	Articles corpusmaker.ArticleWriter
	Config   *corpusmaker.RenderConfig

	// Splits is the number of byte ranges the dump is divided into.
	// Defaults to Concurrency.
	Splits      int
	Concurrency int

	// Dedup, if set, drops records whose title was already seen, guarding
	// against titles repeated in the dump itself. A probabilistic filter may
	// also drop distinct titles at its false positive rate.
	Dedup Deduplicator

	// Skip, if set, drops records before they are parsed.
	Skip func(rec *corpusmaker.DumpRecord) bool

	// Open defaults to dump.Open.
	Open OpenFunc

	ProgressInterval time.Duration
}

// Result holds the outcome of a build.
type Result struct {
	Splits      int
	Records     int
	Saved       int
	Skipped     int
	Duplicates  int
	Failed      int
	Annotations int
	Bytes       int
}

// ProgressEvent reports progress during a build.
type ProgressEvent struct {
	Type     ProgressType
	Splits   int
	Done     int
	Records  int
	Progress float64
	Title    string
	Error    error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressRecords
	ProgressFailed
	ProgressSplitDone
	ProgressFinished
)

// ProgressFunc is a callback for reporting build progress. It is always
// called from the goroutine running Build.
type ProgressFunc func(event ProgressEvent)

type outcome int

const (
	outcomeArticle outcome = iota
	outcomeSkipped
	outcomeDuplicate
	outcomeFailed
	outcomeSplitDone
)

// item is the result of processing one record, sent from a split worker to
// the collector.
type item struct {
	split    int
	outcome  outcome
	title    string
	article  *corpusmaker.Article
	progress float64
	err      error
}

// Build extracts every split of the dump at path and writes the rendered
// articles. Parse and render failures are counted and skipped. A failure to
// read the dump or to write an article aborts the build.
func (b *Builder) Build(ctx context.Context, path string, progress ProgressFunc) (*Result, error) {
	if err := b.Config.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat dump: %w", err)
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	n := b.Splits
	if n <= 0 {
		n = concurrency
	}
	splits, err := PlanSplits(info.Size(), n)
	if err != nil {
		return nil, err
	}

	if progress == nil {
		progress = func(ProgressEvent) {}
	}
	progress(ProgressEvent{Type: ProgressStarted, Splits: len(splits)})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	items := make(chan item, concurrency*4)
	var waitErr error
	go func() {
		for i, rng := range splits {
			g.Go(func() error {
				return b.runSplit(gctx, path, i, rng, items)
			})
		}
		waitErr = g.Wait()
		close(items)
	}()

	interval := b.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	throttle := rate.Sometimes{First: 1, Interval: interval}

	result := &Result{Splits: len(splits)}
	fractions := make([]float64, len(splits))
	done := 0
	var writeErr error
	for it := range items {
		if writeErr != nil {
			continue
		}

		switch it.outcome {
		case outcomeSplitDone:
			done++
			fractions[it.split] = 1
			progress(ProgressEvent{Type: ProgressSplitDone, Splits: len(splits), Done: done, Records: result.Records, Progress: overall(fractions)})
			continue
		case outcomeArticle:
			if err := b.Articles.CreateArticle(ctx, it.article); err != nil {
				writeErr = fmt.Errorf("failed to save article %q: %w", it.title, err)
				cancel()
				continue
			}
			result.Saved++
			result.Annotations += len(it.article.Annotations)
			result.Bytes += len(it.article.Text)
		case outcomeSkipped:
			result.Skipped++
		case outcomeDuplicate:
			result.Duplicates++
		case outcomeFailed:
			result.Failed++
			progress(ProgressEvent{Type: ProgressFailed, Splits: len(splits), Done: done, Records: result.Records, Title: it.title, Error: it.err})
		}

		result.Records++
		fractions[it.split] = min(it.progress, 1)
		throttle.Do(func() {
			progress(ProgressEvent{Type: ProgressRecords, Splits: len(splits), Done: done, Records: result.Records, Progress: overall(fractions)})
		})
	}

	if writeErr != nil {
		return nil, writeErr
	}
	if waitErr != nil {
		return nil, waitErr
	}

	progress(ProgressEvent{Type: ProgressFinished, Splits: len(splits), Done: done, Records: result.Records, Progress: 1})
	return result, nil
}

// runSplit processes every record of one split and reports each outcome.
func (b *Builder) runSplit(ctx context.Context, path string, split int, rng corpusmaker.ByteRange, items chan<- item) error {
	open := b.Open
	if open == nil {
		open = openDump
	}
	r, err := open(path, rng)
	if err != nil {
		return fmt.Errorf("failed to open split %d: %w", split, err)
	}
	defer r.Close()

	send := func(it item) error {
		select {
		case items <- it:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return send(item{split: split, outcome: outcomeSplitDone})
		}
		if err != nil {
			return fmt.Errorf("split %d: %w", split, err)
		}

		it := b.process(rec, rng)
		it.split = split
		it.progress = r.Progress()
		if err := send(it); err != nil {
			return err
		}
	}
}

// process turns one record into an article or a reason it was dropped.
func (b *Builder) process(rec *corpusmaker.DumpRecord, rng corpusmaker.ByteRange) item {
	it := item{title: rec.Title}

	if b.Skip != nil && b.Skip(rec) {
		it.outcome = outcomeSkipped
		return it
	}
	if b.Dedup != nil && b.Dedup.Seen(rec.Title) {
		it.outcome = outcomeDuplicate
		return it
	}

	nodes, err := b.Parser.Parse(rec.Markup)
	if err != nil {
		it.outcome, it.err = outcomeFailed, fmt.Errorf("parse: %w", err)
		return it
	}
	out, err := b.Renderer.Render(nodes, b.Config)
	if err != nil {
		it.outcome, it.err = outcomeFailed, fmt.Errorf("render: %w", err)
		return it
	}

	it.outcome = outcomeArticle
	it.article = &corpusmaker.Article{
		Title:       rec.Title,
		Text:        out.Text,
		Annotations: out.Annotations,
		SplitStart:  rng.Start,
	}
	return it
}

func openDump(path string, rng corpusmaker.ByteRange) (corpusmaker.RecordReader, error) {
	return dump.Open(path, rng)
}

// overall returns the mean completion of all splits.
func overall(fractions []float64) float64 {
	if len(fractions) == 0 {
		return 1
	}
	var sum float64
	for _, f := range fractions {
		sum += f
	}
	return sum / float64(len(fractions))
}
