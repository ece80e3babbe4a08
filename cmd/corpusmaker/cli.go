package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/corpusmaker"
	"github.com/fwojciec/corpusmaker/sqlite"
	"github.com/fwojciec/corpusmaker/toml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Articles  corpusmaker.ArticleService
	Parser    corpusmaker.MarkupParser
	Renderer  corpusmaker.Renderer
	SiteInfo  corpusmaker.SiteInfoReader
	Extractor corpusmaker.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every parse, render and write to stderr"`

	Extract ExtractCmd `cmd:"" help:"Build an annotated corpus from a dump"`
	Records RecordsCmd `cmd:"" help:"List the record titles in a byte range of a dump"`
	Render  RenderCmd  `cmd:"" help:"Render one article from a dump"`
	Page    PageCmd    `cmd:"" help:"Render a saved HTML article page"`
	Info    InfoCmd    `cmd:"" help:"Show the siteinfo header of a dump"`
	List    ListCmd    `cmd:"" help:"List stored articles"`
	Show    ShowCmd    `cmd:"" help:"Show a stored article with its annotations"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored article"`
	Labels  LabelsCmd  `cmd:"" help:"Show the most frequent annotation labels"`
}

// ProfileFlags selects the render profile.
type ProfileFlags struct {
	Profile  string `short:"p" default:"clean" help:"Render profile (built-in: clean, full)"`
	Profiles string `type:"path" help:"TOML file defining extra render profiles"`
}

// Config resolves the selected profile.
func (f ProfileFlags) Config() (*corpusmaker.RenderConfig, error) {
	profiles := corpusmaker.BuiltinProfiles()
	if f.Profiles != "" {
		var err error
		if profiles, err = toml.LoadProfiles(f.Profiles); err != nil {
			return nil, err
		}
	}
	cfg, err := profiles.Get(f.Profile)
	if err != nil {
		return nil, corpusmaker.Errorf(corpusmaker.ENOTFOUND, "render profile %q not found; available: %v", f.Profile, profiles.Names())
	}
	return cfg, nil
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	ProfileFlags `embed:""`

	Dump             string `arg:"" help:"Dump file"`
	Out              string `short:"o" type:"path" help:"Write the corpus to this directory instead of the database"`
	Splits           int    `short:"s" help:"Number of byte-range splits (default: concurrency)"`
	Concurrency      int    `short:"c" default:"4" help:"Concurrent split workers"`
	Dedup            bool   `help:"Drop repeated titles with a Bloom filter"`
	ExpectedArticles uint   `default:"1000000" help:"Expected article count used to size the dedup filter"`
	KeepRedirects    bool   `help:"Render redirect pages instead of skipping them"`
}

// RecordsCmd is the "records" subcommand.
type RecordsCmd struct {
	Dump  string `arg:"" help:"Dump file"`
	Start int64  `help:"First byte of the range"`
	End   int64  `help:"End of the range (default: end of file)"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	ProfileFlags `embed:""`

	Dump  string `arg:"" help:"Dump file"`
	Title string `arg:"" help:"Article title"`
}

// PageCmd is the "page" subcommand.
type PageCmd struct {
	ProfileFlags `embed:""`

	File        string `arg:"" help:"Saved HTML page"`
	Base        string `default:"https://en.wikipedia.org/" help:"Address the page was saved from"`
	TitleSuffix string `default:" - Wikipedia" help:"Site suffix stripped from the page title"`
	Raw         bool   `help:"Parse the whole page without readability extraction"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct {
	Dump string `arg:"" help:"Dump file"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Title  string `help:"Only list articles with this exact title"`
	Limit  int    `default:"50" help:"Maximum number of articles"`
	Offset int    `help:"Number of articles to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Article ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Article ID"`
	Force bool   `help:"Confirm deletion"`
}

// LabelsCmd is the "labels" subcommand.
type LabelsCmd struct {
	Limit int `short:"n" default:"20" help:"Number of labels to show"`
}
