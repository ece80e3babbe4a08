package mock

import (
	"io"

	"github.com/fwojciec/corpusmaker"
)

var _ corpusmaker.SiteInfoReader = (*SiteInfoReader)(nil)

// SiteInfoReader is a mock implementation of corpusmaker.SiteInfoReader.
type SiteInfoReader struct {
	ReadSiteInfoFn func(r io.Reader) (*corpusmaker.SiteInfo, error)
}

func (s *SiteInfoReader) ReadSiteInfo(r io.Reader) (*corpusmaker.SiteInfo, error) {
	return s.ReadSiteInfoFn(r)
}
