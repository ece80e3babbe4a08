package main

import (
	"fmt"

	"github.com/fwojciec/corpusmaker"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return corpusmaker.Errorf(corpusmaker.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Articles.DeleteArticle(deps.Ctx, c.ID); err != nil {
		if corpusmaker.ErrorCode(err) == corpusmaker.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'corpusmaker list' to see stored articles.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", corpusmaker.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted article %s\n", c.ID)
	return nil
}
