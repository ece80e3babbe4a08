package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/fwojciec/corpusmaker"
	"github.com/fwojciec/corpusmaker/goquery"
	"github.com/fwojciec/corpusmaker/readability"
)

// Run executes the page command.
func (c *PageCmd) Run(deps *Dependencies) error {
	cfg, err := c.Config()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", corpusmaker.ErrorMessage(err))
		return err
	}

	base, err := url.Parse(c.Base)
	if err != nil || base.Host == "" {
		fmt.Fprintf(deps.Stderr, "error: invalid base URL %q\n", c.Base)
		return corpusmaker.Errorf(corpusmaker.EINVALID, "invalid base URL %q", c.Base)
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	content := string(data)
	title := ""
	opts := []goquery.Option{goquery.WithBaseURL(base)}
	if !c.Raw {
		extractor := deps.Extractor
		if extractor == nil {
			extractor = readability.NewExtractor(
				readability.WithPageURL(base),
				readability.WithTitleSuffix(c.TitleSuffix),
			)
		}
		extracted, err := extractor.Extract(content)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: failed to extract article: %s\n", corpusmaker.ErrorMessage(err))
			return err
		}
		content, title = extracted.ContentHTML, extracted.Title
		opts = append(opts, goquery.WithContentSelectors("body"))
	}

	nodes, err := goquery.NewParser(opts...).Parse(content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to parse page: %v\n", err)
		return err
	}
	out, err := deps.Renderer.Render(nodes, cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", corpusmaker.ErrorMessage(err))
		return err
	}

	if title != "" {
		fmt.Fprintf(deps.Stdout, "# %s\n", title)
	}
	printRendering(deps.Stdout, out)
	return nil
}
