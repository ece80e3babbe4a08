package main

import (
	"fmt"

	"github.com/fwojciec/corpusmaker"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := corpusmaker.ArticleFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Title != "" {
		filter.Title = &c.Title
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", corpusmaker.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'corpusmaker extract' to build a corpus.")
		return nil
	}

	for _, a := range articles {
		fmt.Fprintf(deps.Stdout, "%s  %s  (%d spans)\n", a.ID, a.Title, len(a.Annotations))
	}
	return nil
}
