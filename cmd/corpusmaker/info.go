package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/corpusmaker"
)

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.Dump)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer f.Close()

	info, err := deps.SiteInfo.ReadSiteInfo(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", corpusmaker.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Site:       %s\n", info.SiteName)
	fmt.Fprintf(deps.Stdout, "Database:   %s\n", info.DBName)
	fmt.Fprintf(deps.Stdout, "Base:       %s\n", info.Base)
	fmt.Fprintf(deps.Stdout, "Generator:  %s\n", info.Generator)
	fmt.Fprintf(deps.Stdout, "Case:       %s\n", info.Case)
	fmt.Fprintf(deps.Stdout, "Namespaces: %s\n", strings.Join(info.NamespaceNames(), ", "))
	return nil
}
