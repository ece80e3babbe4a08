package main

import (
	"fmt"

	"github.com/fwojciec/corpusmaker"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	article, err := deps.Articles.FindArticleByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", corpusmaker.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "# %s\n", article.Title)
	printRendering(deps.Stdout, &corpusmaker.Rendering{
		Text:        article.Text,
		Annotations: article.Annotations,
	})
	return nil
}
