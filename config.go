package corpusmaker

import (
	"regexp"
	"sort"
)

// DefaultRecursionLimit bounds the nesting depth walked by a renderer.
const DefaultRecursionLimit = 32

// DefaultInterwikiPattern matches hrefs pointing at another language edition
// of the encyclopedia.
var DefaultInterwikiPattern = regexp.MustCompile(`^https?://[\w-]+\.wikipedia\.org/wiki/.*$`)

// Tags given special treatment by renderers.
const (
	AnchorTag = "a"
	RefTag    = "ref"
	HrefAttr  = "href"
)

// Built-in render profile names.
const (
	ProfileFull  = "full"
	ProfileClean = "clean"
)

// RenderConfig controls how a markup tree is flattened. A config is read-only
// for the duration of a render and may be shared by concurrent renders.
type RenderConfig struct {
	// NewlinesByTag is the number of newlines appended after an element with
	// the given tag. Tags absent from the map get no separator.
	NewlinesByTag map[string]int

	// DropListsAndTables skips list and table blocks entirely, including any
	// links inside them.
	DropListsAndTables bool

	// DropRefTags skips the content of reference/footnote elements.
	DropRefTags bool

	// InterwikiHostPattern matches anchor hrefs whose content is skipped.
	// A nil pattern matches nothing.
	InterwikiHostPattern *regexp.Regexp

	// RecursionLimit is the maximum nesting depth rendered before the
	// subtree is replaced by an error sentinel.
	RecursionLimit int
}

// Validate returns an error if the config contains invalid fields.
func (c *RenderConfig) Validate() error {
	if c == nil {
		return Errorf(EINVALID, "render config required")
	}
	if c.RecursionLimit <= 0 {
		return Errorf(EINVALID, "recursion limit must be positive")
	}
	for tag, n := range c.NewlinesByTag {
		if n < 0 {
			return Errorf(EINVALID, "newline count for tag %q must not be negative", tag)
		}
	}
	return nil
}

// Newlines returns the number of newlines appended after tag.
func (c *RenderConfig) Newlines(tag string) int {
	return c.NewlinesByTag[tag]
}

// IsInterwiki reports whether href points at another edition of the site.
func (c *RenderConfig) IsInterwiki(href string) bool {
	return href != "" && c.InterwikiHostPattern != nil && c.InterwikiHostPattern.MatchString(href)
}

// Clone returns a deep copy of the config. The compiled pattern is shared.
func (c *RenderConfig) Clone() *RenderConfig {
	cp := *c
	cp.NewlinesByTag = make(map[string]int, len(c.NewlinesByTag))
	for tag, n := range c.NewlinesByTag {
		cp.NewlinesByTag[tag] = n
	}
	return &cp
}

// FullConfig returns the "keep everything" profile: lists, tables and
// references are rendered and paragraphs and divs end with a newline.
func FullConfig() *RenderConfig {
	return &RenderConfig{
		NewlinesByTag: map[string]int{
			"p":   1,
			"div": 1,
		},
		InterwikiHostPattern: DefaultInterwikiPattern,
		RecursionLimit:       DefaultRecursionLimit,
	}
}

// CleanConfig returns the "clean corpus" profile: lists, tables and
// references are dropped, paragraphs end with one newline and headings
// with two.
func CleanConfig() *RenderConfig {
	return &RenderConfig{
		NewlinesByTag: map[string]int{
			"p":  1,
			"h1": 2,
			"h2": 2,
			"h3": 2,
			"h4": 2,
			"h5": 2,
			"h6": 2,
		},
		DropListsAndTables:   true,
		DropRefTags:          true,
		InterwikiHostPattern: DefaultInterwikiPattern,
		RecursionLimit:       DefaultRecursionLimit,
	}
}

// Profiles is a set of named render configs.
type Profiles map[string]*RenderConfig

// BuiltinProfiles returns the full and clean profiles.
func BuiltinProfiles() Profiles {
	return Profiles{
		ProfileFull:  FullConfig(),
		ProfileClean: CleanConfig(),
	}
}

// Get returns the named profile.
// Returns ENOTFOUND if no profile has that name.
func (p Profiles) Get(name string) (*RenderConfig, error) {
	cfg, ok := p[name]
	if !ok {
		return nil, Errorf(ENOTFOUND, "render profile %q not found", name)
	}
	return cfg, nil
}

// Names returns the profile names in sorted order.
func (p Profiles) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
