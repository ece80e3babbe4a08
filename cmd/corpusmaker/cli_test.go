package main_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/corpusmaker"
	main "github.com/fwojciec/corpusmaker/cmd/corpusmaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	expectedCommands := []string{"extract", "records", "render", "page", "info", "list", "show", "delete", "labels"}
	for _, cmd := range expectedCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesExtractFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"extract", "dump.xml", "-p", "full", "-s", "8", "-c", "2", "--dedup"})

	require.NoError(t, err)
	assert.Equal(t, "dump.xml", cli.Extract.Dump)
	assert.Equal(t, "full", cli.Extract.Profile)
	assert.Equal(t, 8, cli.Extract.Splits)
	assert.Equal(t, 2, cli.Extract.Concurrency)
	assert.True(t, cli.Extract.Dedup)
	assert.False(t, cli.Extract.KeepRedirects)
}

func TestProfileFlags_Config(t *testing.T) {
	t.Parallel()

	t.Run("resolves a built-in profile", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.ProfileFlags{Profile: corpusmaker.ProfileFull}.Config()

		require.NoError(t, err)
		assert.False(t, cfg.DropListsAndTables)
	})

	t.Run("resolves a profile from a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "profiles.toml")
		require.NoError(t, os.WriteFile(path, []byte("[profiles.deep]\nextends = \"clean\"\nrecursion_limit = 99\n"), 0644))

		cfg, err := main.ProfileFlags{Profile: "deep", Profiles: path}.Config()

		require.NoError(t, err)
		assert.Equal(t, 99, cfg.RecursionLimit)
		assert.True(t, cfg.DropRefTags)
	})

	t.Run("reports unknown profiles with the available names", func(t *testing.T) {
		t.Parallel()

		_, err := main.ProfileFlags{Profile: "missing"}.Config()

		require.Error(t, err)
		assert.Equal(t, corpusmaker.ENOTFOUND, corpusmaker.ErrorCode(err))
		assert.Contains(t, corpusmaker.ErrorMessage(err), "clean")
	})
}
