package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/corpusmaker"
	"github.com/fwojciec/corpusmaker/dump"
)

// Run executes the records command.
func (c *RecordsCmd) Run(deps *Dependencies) error {
	rng, err := dumpRange(c.Dump, c.Start, c.End)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", corpusmaker.ErrorMessage(err))
		return err
	}

	r, err := dump.Open(c.Dump, rng)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", corpusmaker.ErrorMessage(err))
		return err
	}

	count := 0
	for rec, err := range r.All() {
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s\t%d\n", rec.Title, len(rec.Markup))
		count++
	}

	if count == 0 {
		fmt.Fprintf(deps.Stderr, "No records start in [%d,%d).\n", rng.Start, rng.End)
	}
	return nil
}

// dumpRange returns [start, end) of the dump at path, where an end of zero
// means the end of the file.
func dumpRange(path string, start, end int64) (corpusmaker.ByteRange, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return corpusmaker.ByteRange{}, corpusmaker.Errorf(corpusmaker.ENOTFOUND, "dump %q not found", path)
		}
		return corpusmaker.ByteRange{}, err
	}
	if end == 0 || end > info.Size() {
		end = info.Size()
	}
	rng := corpusmaker.ByteRange{Start: start, End: end}
	return rng, rng.Validate()
}
