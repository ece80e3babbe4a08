package corpusmaker

import "io"

// SiteInfo describes the wiki a dump was exported from.
type SiteInfo struct {
	SiteName   string      `json:"siteName"`
	DBName     string      `json:"dbName"`
	Base       string      `json:"base"`
	Generator  string      `json:"generator"`
	Case       string      `json:"case"`
	Namespaces []Namespace `json:"namespaces"`
}

// Namespace is a page namespace declared in the dump header.
type Namespace struct {
	Key  int    `json:"key"`
	Name string `json:"name"`
}

// NamespaceNames returns the non-empty namespace names.
func (s *SiteInfo) NamespaceNames() []string {
	names := make([]string, 0, len(s.Namespaces))
	for _, ns := range s.Namespaces {
		if ns.Name != "" {
			names = append(names, ns.Name)
		}
	}
	return names
}

// SiteInfoReader reads the siteinfo header at the start of a dump.
type SiteInfoReader interface {
	// ReadSiteInfo reads from the beginning of a dump.
	// Returns ENOTFOUND if the dump has no siteinfo header.
	ReadSiteInfo(r io.Reader) (*SiteInfo, error)
}
