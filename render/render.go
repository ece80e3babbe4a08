// Package render flattens markup trees into plain text while recording the
// character span and target of every embedded link.
//
// A single engine serves every corpus profile; the differences between a
// "keep everything" rendering and a "clean corpus" rendering live entirely
// in corpusmaker.RenderConfig.
package render

import (
	"io"
	"strings"

	"github.com/fwojciec/corpusmaker"
)

// Sentinel is written in place of a subtree nested deeper than the
// configured recursion limit.
const Sentinel = "Error - recursion limit exceeded rendering markup tree."

// Ensure Renderer implements corpusmaker.Renderer at compile time.
var _ corpusmaker.Renderer = (*Renderer)(nil)

// Renderer renders markup trees into strings. It holds no state and may be
// used concurrently.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render renders nodes into a string and returns it with the link annotations.
func (r *Renderer) Render(nodes []corpusmaker.Node, cfg *corpusmaker.RenderConfig) (*corpusmaker.Rendering, error) {
	var sb strings.Builder
	spans, err := RenderTo(&sb, nodes, cfg)
	if err != nil {
		return nil, err
	}
	return &corpusmaker.Rendering{
		Text:        sb.String(),
		Annotations: spans,
	}, nil
}

// RenderTo writes the plain text of nodes to w and returns the link
// annotations ordered by start offset, outer links before the links nested
// inside them. Offsets are relative to the first character written by this
// call. A write error aborts the render and is returned as is.
func RenderTo(w io.Writer, nodes []corpusmaker.Node, cfg *corpusmaker.RenderConfig) ([]corpusmaker.AnnotationSpan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := corpusmaker.NewCountingWriter(w)
	s := &state{
		out:  out,
		cfg:  cfg,
		base: out.Len(),
	}

	if err := s.renderNodes(nodes); err != nil {
		return nil, err
	}
	return s.spans, nil
}

// state is owned by a single RenderTo call.
type state struct {
	out   *corpusmaker.CountingWriter
	cfg   *corpusmaker.RenderConfig
	base  int
	depth int
	spans []corpusmaker.AnnotationSpan
}

// position returns the number of characters emitted by this render so far.
func (s *state) position() int {
	return s.out.Len() - s.base
}

func (s *state) write(text string) error {
	if text == "" {
		return nil
	}
	_, err := s.out.WriteString(text)
	return err
}

// renderNodes renders one level of the tree. Each level counts against the
// recursion limit.
func (s *state) renderNodes(nodes []corpusmaker.Node) error {
	if len(nodes) == 0 {
		return nil
	}

	s.depth++
	defer func() { s.depth-- }()
	if s.depth > s.cfg.RecursionLimit {
		return s.write(Sentinel)
	}

	for _, node := range nodes {
		if err := s.renderNode(node); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) renderNode(node corpusmaker.Node) error {
	switch n := node.(type) {
	case corpusmaker.Leaf:
		return s.write(n.Text)
	case corpusmaker.Link:
		return s.renderLink(n)
	case corpusmaker.Element:
		return s.renderElement(n)
	case corpusmaker.ListBlock:
		if s.cfg.DropListsAndTables {
			return nil
		}
		return s.renderNodes(n.Children)
	case corpusmaker.TableBlock:
		if s.cfg.DropListsAndTables {
			return nil
		}
		return s.renderNodes(n.Children)
	default:
		// Unknown and foreign node kinds carry no renderable text.
		return nil
	}
}

// renderLink renders the link body and records its span. Namespaced targets
// (categories, files, other language editions) are dropped with their body.
func (s *state) renderLink(n corpusmaker.Link) error {
	if strings.Contains(n.Target, ":") {
		return nil
	}

	// Reserve the slot before rendering children so that spans stay ordered
	// by start with enclosing links first.
	idx := len(s.spans)
	s.spans = append(s.spans, corpusmaker.AnnotationSpan{
		Start: s.position(),
		Label: n.Target,
	})
	if err := s.renderNodes(n.Children); err != nil {
		return err
	}
	s.spans[idx].End = s.position()
	return nil
}

func (s *state) renderElement(n corpusmaker.Element) error {
	var err error
	switch {
	case n.Tag == corpusmaker.AnchorTag && s.cfg.IsInterwiki(n.Attr(corpusmaker.HrefAttr)):
		// Links to other language editions only exist for translation.
	case n.Tag == corpusmaker.RefTag && s.cfg.DropRefTags:
	case n.Image != nil:
		err = s.renderImage(n)
	default:
		err = s.renderNodes(n.Children)
	}
	if err != nil {
		return err
	}

	if count := s.cfg.Newlines(n.Tag); count > 0 {
		return s.write(strings.Repeat("\n", count))
	}
	return nil
}

// renderImage renders an image caption as ordinary content; captions often
// hold well-formed sentences with links.
func (s *state) renderImage(n corpusmaker.Element) error {
	return s.renderNodes(n.Children)
}
