// Package etree reads the siteinfo header of encyclopedia XML dumps.
package etree

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/corpusmaker"
)

// Ensure SiteInfoReader implements corpusmaker.SiteInfoReader at compile time.
var _ corpusmaker.SiteInfoReader = (*SiteInfoReader)(nil)

// DefaultMaxHeader is the number of bytes searched for the siteinfo element.
const DefaultMaxHeader = 1 << 20

var (
	openSiteInfo  = []byte("<siteinfo")
	closeSiteInfo = []byte("</siteinfo>")
)

// SiteInfoReader parses the <siteinfo> element at the head of a dump. Only
// the header is read; the rest of the dump is never parsed as XML.
type SiteInfoReader struct {
	maxHeader int64
}

// Option configures a SiteInfoReader.
type Option func(*SiteInfoReader)

// WithMaxHeader sets how many leading bytes are searched for the header.
func WithMaxHeader(n int64) Option {
	return func(s *SiteInfoReader) {
		s.maxHeader = n
	}
}

// NewSiteInfoReader creates a new SiteInfoReader.
func NewSiteInfoReader(opts ...Option) *SiteInfoReader {
	s := &SiteInfoReader{maxHeader: DefaultMaxHeader}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadSiteInfo reads from the beginning of a dump.
// Returns ENOTFOUND if no complete siteinfo element appears in the header.
func (s *SiteInfoReader) ReadSiteInfo(r io.Reader) (*corpusmaker.SiteInfo, error) {
	head, err := io.ReadAll(io.LimitReader(r, s.maxHeader))
	if err != nil {
		return nil, fmt.Errorf("failed to read dump header: %w", err)
	}

	start := bytes.Index(head, openSiteInfo)
	if start < 0 {
		return nil, corpusmaker.Errorf(corpusmaker.ENOTFOUND, "dump has no siteinfo header")
	}
	end := bytes.Index(head[start:], closeSiteInfo)
	if end < 0 {
		return nil, corpusmaker.Errorf(corpusmaker.ENOTFOUND, "siteinfo header not closed within %d bytes", s.maxHeader)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(head[start : start+end+len(closeSiteInfo)]); err != nil {
		return nil, corpusmaker.Errorf(corpusmaker.EINVALID, "malformed siteinfo header: %v", err)
	}
	return parseSiteInfo(doc.Root())
}

func parseSiteInfo(root *etree.Element) (*corpusmaker.SiteInfo, error) {
	info := &corpusmaker.SiteInfo{
		SiteName:  childText(root, "sitename"),
		DBName:    childText(root, "dbname"),
		Base:      childText(root, "base"),
		Generator: childText(root, "generator"),
		Case:      childText(root, "case"),
	}

	namespaces := root.SelectElement("namespaces")
	if namespaces == nil {
		return info, nil
	}
	for _, el := range namespaces.SelectElements("namespace") {
		key, err := strconv.Atoi(el.SelectAttrValue("key", ""))
		if err != nil {
			return nil, corpusmaker.Errorf(corpusmaker.EINVALID, "namespace %q has invalid key", el.Text())
		}
		info.Namespaces = append(info.Namespaces, corpusmaker.Namespace{
			Key:  key,
			Name: strings.TrimSpace(el.Text()),
		})
	}
	return info, nil
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
