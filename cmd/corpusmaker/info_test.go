package main_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/fwojciec/corpusmaker"
	main "github.com/fwojciec/corpusmaker/cmd/corpusmaker"
	"github.com/fwojciec/corpusmaker/etree"
	"github.com/fwojciec/corpusmaker/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the siteinfo header", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.SiteInfo = etree.NewSiteInfoReader()

		err := (&main.InfoCmd{Dump: sampleDump(t)}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Site:       Wikipedia\n")
		assert.Contains(t, output, "Database:   enwiki\n")
		assert.Contains(t, output, "Base:       https://en.wikipedia.org/wiki/Main_Page\n")
		assert.Contains(t, output, "Namespaces: Category\n")
	})

	t.Run("returns error when the header is missing", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := newDeps(&bytes.Buffer{}, stderr)
		deps.SiteInfo = &mock.SiteInfoReader{
			ReadSiteInfoFn: func(io.Reader) (*corpusmaker.SiteInfo, error) {
				return nil, corpusmaker.Errorf(corpusmaker.ENOTFOUND, "dump has no siteinfo header")
			},
		}

		err := (&main.InfoCmd{Dump: sampleDump(t)}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, corpusmaker.ENOTFOUND, corpusmaker.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: dump has no siteinfo header")
	})

	t.Run("returns error for a missing dump", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := newDeps(&bytes.Buffer{}, stderr)
		deps.SiteInfo = etree.NewSiteInfoReader()

		err := (&main.InfoCmd{Dump: "/nonexistent/dump.xml"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
