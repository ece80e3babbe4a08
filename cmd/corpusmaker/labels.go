package main

import (
	"fmt"

	"github.com/fwojciec/corpusmaker"
)

// Run executes the labels command.
func (c *LabelsCmd) Run(deps *Dependencies) error {
	counts, err := deps.Articles.CountLabels(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", corpusmaker.ErrorMessage(err))
		return err
	}

	if len(counts) == 0 {
		fmt.Fprintln(deps.Stdout, "No annotations found. Use 'corpusmaker extract' to build a corpus.")
		return nil
	}

	for _, lc := range counts {
		fmt.Fprintf(deps.Stdout, "%8d  %s\n", lc.Count, lc.Label)
	}
	return nil
}
