// Package goquery parses rendered encyclopedia article HTML into corpusmaker
// markup trees.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/corpusmaker"
	"golang.org/x/net/html"
)

// Ensure Parser implements corpusmaker.MarkupParser at compile time.
var _ corpusmaker.MarkupParser = (*Parser)(nil)

// DefaultRemoveSelector matches page furniture that never belongs to the
// article text.
const DefaultRemoveSelector = "script, style, noscript, link, meta, .mw-editsection, .mw-jump-link, .noprint, #toc, .toc"

// defaultContentSelectors are tried in order; the first match is the
// article root.
var defaultContentSelectors = []string{".mw-parser-output", "#mw-content-text", "article", "body"}

var whitespace = regexp.MustCompile(`\s+`)

// Parser converts article HTML into markup trees. It may be used
// concurrently.
type Parser struct {
	remove  string
	content []string
	base    *url.URL
}

// Option configures a Parser.
type Option func(*Parser)

// WithRemoveSelector replaces the selector of elements dropped before
// conversion.
func WithRemoveSelector(selector string) Option {
	return func(p *Parser) {
		p.remove = selector
	}
}

// WithContentSelectors sets the candidate article roots, tried in order.
func WithContentSelectors(selectors ...string) Option {
	return func(p *Parser) {
		p.content = selectors
	}
}

// WithBaseURL makes absolute article links on the base host count as
// internal links.
func WithBaseURL(base *url.URL) Option {
	return func(p *Parser) {
		p.base = base
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		remove:  DefaultRemoveSelector,
		content: defaultContentSelectors,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses an HTML document or fragment.
func (p *Parser) Parse(markup string) ([]corpusmaker.Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, corpusmaker.Errorf(corpusmaker.EINVALID, "failed to parse HTML: %v", err)
	}
	if p.remove != "" {
		doc.Find(p.remove).Remove()
	}

	root := p.root(doc)
	if root == nil {
		return nil, nil
	}
	c := &converter{doc: doc, base: p.base}
	return c.children(root), nil
}

func (p *Parser) root(doc *goquery.Document) *html.Node {
	for _, selector := range p.content {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel.Get(0)
		}
	}
	return nil
}

type converter struct {
	doc  *goquery.Document
	base *url.URL
}

func (c *converter) children(n *html.Node) []corpusmaker.Node {
	var nodes []corpusmaker.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if node := c.convert(child); node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func (c *converter) convert(n *html.Node) corpusmaker.Node {
	switch n.Type {
	case html.TextNode:
		return text(n.Data)
	case html.CommentNode:
		return corpusmaker.Unknown{Kind: "comment"}
	case html.ElementNode:
		return c.element(n)
	default:
		return nil
	}
}

// text collapses whitespace the way a browser does. Whitespace-only runs
// that span lines are layout and are dropped.
func text(data string) corpusmaker.Node {
	if strings.TrimSpace(data) == "" && strings.Contains(data, "\n") {
		return nil
	}
	return corpusmaker.Leaf{Text: whitespace.ReplaceAllString(data, " ")}
}

func (c *converter) element(n *html.Node) corpusmaker.Node {
	sel := c.doc.FindNodes(n)

	switch n.Data {
	case "a":
		return c.anchor(n, sel)
	case "ul", "ol", "dl":
		return corpusmaker.ListBlock{Children: c.children(n)}
	case "table":
		return corpusmaker.TableBlock{Children: c.children(n)}
	case "figure":
		return c.image(sel)
	case "div":
		if sel.HasClass("thumb") {
			return c.image(sel)
		}
	case "sup":
		if sel.HasClass("reference") {
			return corpusmaker.Element{Tag: corpusmaker.RefTag, Children: c.children(n)}
		}
	case "br":
		return corpusmaker.Leaf{Text: "\n"}
	case "img", "math", "svg", "video", "audio", "iframe", "object":
		return corpusmaker.Unknown{Kind: n.Data}
	}
	return corpusmaker.Element{Tag: n.Data, Children: c.children(n)}
}

func (c *converter) anchor(n *html.Node, sel *goquery.Selection) corpusmaker.Node {
	href, _ := sel.Attr("href")
	children := c.children(n)

	target, ok := c.wikiTarget(href, sel)
	if !ok {
		var attrs map[string]string
		if href != "" {
			attrs = map[string]string{corpusmaker.HrefAttr: href}
		}
		return corpusmaker.Element{Tag: corpusmaker.AnchorTag, Attrs: attrs, Children: children}
	}
	if target == "" {
		return corpusmaker.Element{Tag: "span", Children: children}
	}
	return corpusmaker.Link{Target: target, Children: children}
}

// wikiTarget resolves the article an anchor links to. Missing articles are
// linked through the edit URL and carry the title in its query.
func (c *converter) wikiTarget(href string, sel *goquery.Selection) (string, bool) {
	u, err := url.Parse(href)
	if err != nil || href == "" {
		return "", false
	}
	if u.IsAbs() && (c.base == nil || !strings.EqualFold(u.Host, c.base.Host)) {
		return "", false
	}

	rel, _ := sel.Attr("rel")
	switch {
	case strings.HasPrefix(u.Path, "/wiki/"):
		return cleanTarget(strings.TrimPrefix(u.Path, "/wiki/")), true
	case rel == "mw:WikiLink" && strings.HasPrefix(u.Path, "./"):
		return cleanTarget(strings.TrimPrefix(u.Path, "./")), true
	case sel.HasClass("new") && u.Query().Get("title") != "":
		return cleanTarget(u.Query().Get("title")), true
	}
	return "", false
}

// image converts a figure or thumbnail frame. The caption becomes the
// element's children.
func (c *converter) image(sel *goquery.Selection) corpusmaker.Node {
	img := &corpusmaker.Image{}
	if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
		if target, ok := c.wikiTarget(href, sel.Find("a[href]").First()); ok {
			img.Name = target
		}
	}
	if img.Name == "" {
		img.Name, _ = sel.Find("img").First().Attr("alt")
	}
	if sel.HasClass("tright") || sel.HasClass("mw-halign-right") {
		img.Options = append(img.Options, "right")
	}
	if sel.HasClass("tleft") || sel.HasClass("mw-halign-left") {
		img.Options = append(img.Options, "left")
	}

	var children []corpusmaker.Node
	if caption := sel.Find("figcaption, .thumbcaption").First(); caption.Length() > 0 {
		caption.Find(".magnify").Remove()
		children = c.children(caption.Get(0))
	}
	return corpusmaker.Element{Tag: "image", Image: img, Children: children}
}

// cleanTarget turns a decoded page path into a title.
func cleanTarget(path string) string {
	return strings.TrimSpace(strings.ReplaceAll(path, "_", " "))
}
