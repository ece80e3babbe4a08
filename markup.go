package corpusmaker

// Node is one node of a parsed markup tree. The set of node kinds is closed:
// Leaf, Link, Element, ListBlock, TableBlock and Unknown. Parser adapters map
// every upstream construct they do not support onto Unknown.
type Node interface {
	node()
}

// Leaf is a run of plain text.
type Leaf struct {
	Text string
}

// Link is an internal link to another article. Targets containing ':' are
// namespaced (categories, files, other language editions) and are never
// rendered.
type Link struct {
	Target   string
	Children []Node
}

// Element is a generic tag such as p, h2, ref or a.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Image    *Image
	Children []Node
}

// Attr returns the named attribute, or "" when absent.
func (e Element) Attr(name string) string {
	if e.Attrs == nil {
		return ""
	}
	return e.Attrs[name]
}

// Image holds the metadata of an embedded image. The caption is carried as
// the children of the owning Element.
type Image struct {
	Name    string
	Options []string
}

// ListBlock is a bulleted, numbered or definition list.
type ListBlock struct {
	Children []Node
}

// TableBlock is a table.
type TableBlock struct {
	Children []Node
}

// Unknown is an upstream construct the parser adapter does not model.
// Kind names the construct for diagnostics.
type Unknown struct {
	Kind string
}

func (Leaf) node()       {}
func (Link) node()       {}
func (Element) node()    {}
func (ListBlock) node()  {}
func (TableBlock) node() {}
func (Unknown) node()    {}

// MarkupParser turns raw markup into a tree of nodes.
type MarkupParser interface {
	// Parse returns the top-level nodes of the markup.
	Parse(markup string) ([]Node, error)
}
