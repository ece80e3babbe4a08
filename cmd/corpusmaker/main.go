package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/corpusmaker"
	"github.com/fwojciec/corpusmaker/etree"
	"github.com/fwojciec/corpusmaker/render"
	cmslog "github.com/fwojciec/corpusmaker/slog"
	"github.com/fwojciec/corpusmaker/sqlite"
	"github.com/fwojciec/corpusmaker/wikitext"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ArticleService corpusmaker.ArticleService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		Parser:   wikitext.NewParser(),
		Renderer: render.NewRenderer(),
		SiteInfo: etree.NewSiteInfoReader(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("corpusmaker"),
		kong.Description("Build entity-annotated plain-text corpora from encyclopedia dumps."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'corpusmaker --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		deps.Parser = cmslog.NewLoggingParser(deps.Parser, deps.Logger)
		deps.Renderer = cmslog.NewLoggingRenderer(deps.Renderer, deps.Logger)
	}

	if needsDatabase(cmd, cli) {
		if err := os.MkdirAll(filepath.Dir(m.DBPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set CORPUSMAKER_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.ArticleService = sqlite.NewArticleService(m.DB)
		deps.DB = m.DB
		deps.Articles = m.ArticleService
	}

	return kongCtx.Run(deps)
}

// needsDatabase reports whether cmd reads or writes the article database.
func needsDatabase(cmd string, cli *CLI) bool {
	switch cmd {
	case "extract":
		return cli.Extract.Out == ""
	case "list", "show", "delete", "labels":
		return true
	}
	return false
}

func defaultDBPath() string {
	if path := os.Getenv("CORPUSMAKER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "corpus.db"
	}
	return filepath.Join(home, ".corpusmaker", "corpus.db")
}
