package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/corpusmaker"
	"github.com/fwojciec/corpusmaker/dump"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	cfg, err := c.Config()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", corpusmaker.ErrorMessage(err))
		return err
	}

	rec, err := findRecord(c.Dump, c.Title)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", corpusmaker.ErrorMessage(err))
		return err
	}

	nodes, err := deps.Parser.Parse(rec.Markup)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to parse %q: %v\n", rec.Title, err)
		return err
	}
	out, err := deps.Renderer.Render(nodes, cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", corpusmaker.ErrorMessage(err))
		return err
	}

	printRendering(deps.Stdout, out)
	return nil
}

// findRecord scans the whole dump for the record titled title.
func findRecord(path, title string) (*corpusmaker.DumpRecord, error) {
	rng, err := dumpRange(path, 0, 0)
	if err != nil {
		return nil, err
	}
	r, err := dump.Open(path, rng)
	if err != nil {
		return nil, err
	}
	for rec, err := range r.All() {
		if err != nil {
			return nil, err
		}
		if rec.Title == title {
			return rec, nil
		}
	}
	return nil, corpusmaker.Errorf(corpusmaker.ENOTFOUND, "article %q not found in %s", title, path)
}

// printRendering writes the text, a separator line and one line per span.
func printRendering(w io.Writer, out *corpusmaker.Rendering) {
	fmt.Fprint(w, out.Text)
	fmt.Fprintln(w, "---")
	for _, span := range out.Annotations {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", span.Start, span.End, span.Label, span.Slice(out.Text))
	}
}
