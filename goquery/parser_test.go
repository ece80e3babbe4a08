package goquery_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/corpusmaker"
	"github.com/fwojciec/corpusmaker/goquery"
	"github.com/fwojciec/corpusmaker/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(text string) corpusmaker.Leaf {
	return corpusmaker.Leaf{Text: text}
}

func link(target string, children ...corpusmaker.Node) corpusmaker.Link {
	return corpusmaker.Link{Target: target, Children: children}
}

func el(tag string, children ...corpusmaker.Node) corpusmaker.Element {
	return corpusmaker.Element{Tag: tag, Children: children}
}

func anchor(href string, children ...corpusmaker.Node) corpusmaker.Element {
	return corpusmaker.Element{Tag: "a", Attrs: map[string]string{"href": href}, Children: children}
}

func parse(t *testing.T, p *goquery.Parser, html string) []corpusmaker.Node {
	t.Helper()
	nodes, err := p.Parse(html)
	require.NoError(t, err)
	return nodes
}

func TestParser_Links(t *testing.T) {
	t.Parallel()

	t.Run("converts article links", func(t *testing.T) {
		t.Parallel()

		nodes := parse(t, goquery.NewParser(),
			`<p>In <a href="/wiki/Paris_(city)#History" title="Paris">Paris</a>, <b>France</b>.</p>`)

		assert.Equal(t, []corpusmaker.Node{el("p",
			leaf("In "),
			link("Paris (city)", leaf("Paris")),
			leaf(", "),
			el("b", leaf("France")),
			leaf("."),
		)}, nodes)
	})

	t.Run("decodes escaped titles", func(t *testing.T) {
		t.Parallel()

		nodes := parse(t, goquery.NewParser(), `<p><a href="/wiki/Caf%C3%A9">café</a></p>`)

		assert.Equal(t, []corpusmaker.Node{el("p", link("Café", leaf("café")))}, nodes)
	})

	t.Run("keeps other anchors as elements", func(t *testing.T) {
		t.Parallel()

		nodes := parse(t, goquery.NewParser(),
			`<p><a href="https://fr.wikipedia.org/wiki/Paris">fr</a><a href="http://example.com/">ex</a><a>bare</a></p>`)

		assert.Equal(t, []corpusmaker.Node{el("p",
			anchor("https://fr.wikipedia.org/wiki/Paris", leaf("fr")),
			anchor("http://example.com/", leaf("ex")),
			el("a", leaf("bare")),
		)}, nodes)
	})

	t.Run("treats absolute links on the base host as article links", func(t *testing.T) {
		t.Parallel()

		base, err := url.Parse("https://en.wikipedia.org/")
		require.NoError(t, err)

		nodes := parse(t, goquery.NewParser(goquery.WithBaseURL(base)),
			`<p><a href="https://en.wikipedia.org/wiki/Berlin">Berlin</a><a href="https://de.wikipedia.org/wiki/Berlin">de</a></p>`)

		assert.Equal(t, []corpusmaker.Node{el("p",
			link("Berlin", leaf("Berlin")),
			anchor("https://de.wikipedia.org/wiki/Berlin", leaf("de")),
		)}, nodes)
	})

	t.Run("converts links to missing articles", func(t *testing.T) {
		t.Parallel()

		nodes := parse(t, goquery.NewParser(),
			`<p><a href="/w/index.php?title=Foo_Bar&amp;action=edit&amp;redlink=1" class="new">Foo</a></p>`)

		assert.Equal(t, []corpusmaker.Node{el("p", link("Foo Bar", leaf("Foo")))}, nodes)
	})

	t.Run("converts parsoid links", func(t *testing.T) {
		t.Parallel()

		nodes := parse(t, goquery.NewParser(), `<p><a rel="mw:WikiLink" href="./Rome">Rome</a></p>`)

		assert.Equal(t, []corpusmaker.Node{el("p", link("Rome", leaf("Rome")))}, nodes)
	})
}

func TestParser_Structure(t *testing.T) {
	t.Parallel()

	t.Run("uses the article root and drops page furniture", func(t *testing.T) {
		t.Parallel()

		nodes := parse(t, goquery.NewParser(), `<html><body>`+
			`<div id="nav">Navigation</div>`+
			`<div class="mw-parser-output"><h2>History<span class="mw-editsection">[edit]</span></h2><script>x()</script><p>Text</p></div>`+
			`</body></html>`)

		assert.Equal(t, []corpusmaker.Node{
			el("h2", leaf("History")),
			el("p", leaf("Text")),
		}, nodes)
	})

	t.Run("honours custom selectors", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewParser(
			goquery.WithContentSelectors("#main"),
			goquery.WithRemoveSelector(".skip"),
		)

		nodes := parse(t, p, `<div id="main"><p>keep<span class="skip">drop</span></p></div><p>outside</p>`)

		assert.Equal(t, []corpusmaker.Node{el("p", leaf("keep"))}, nodes)
	})

	t.Run("returns nothing without a matching root", func(t *testing.T) {
		t.Parallel()

		nodes := parse(t, goquery.NewParser(goquery.WithContentSelectors("#missing")), `<p>x</p>`)

		assert.Empty(t, nodes)
	})

	t.Run("converts lists and tables", func(t *testing.T) {
		t.Parallel()

		nodes := parse(t, goquery.NewParser(),
			`<ul><li><a href="/wiki/Lyon">Lyon</a></li></ul><table><tr><td>x</td></tr></table>`)

		assert.Equal(t, []corpusmaker.Node{
			corpusmaker.ListBlock{Children: []corpusmaker.Node{el("li", link("Lyon", leaf("Lyon")))}},
			corpusmaker.TableBlock{Children: []corpusmaker.Node{
				el("tbody", el("tr", el("td", leaf("x")))),
			}},
		}, nodes)
	})

	t.Run("converts figures with captions", func(t *testing.T) {
		t.Parallel()

		nodes := parse(t, goquery.NewParser(), `<figure class="mw-halign-right" typeof="mw:File/Thumb">`+
			`<a href="/wiki/File:Eiffel.jpg" class="mw-file-description"><img src="x.jpg" alt="Eiffel"></a>`+
			`<figcaption>The <a href="/wiki/Eiffel_Tower">tower</a></figcaption></figure>`)

		assert.Equal(t, []corpusmaker.Node{corpusmaker.Element{
			Tag:      "image",
			Image:    &corpusmaker.Image{Name: "File:Eiffel.jpg", Options: []string{"right"}},
			Children: []corpusmaker.Node{leaf("The "), link("Eiffel Tower", leaf("tower"))},
		}}, nodes)
	})

	t.Run("converts legacy thumbnails", func(t *testing.T) {
		t.Parallel()

		nodes := parse(t, goquery.NewParser(), `<div class="thumb tleft"><div class="thumbinner">`+
			`<img src="map.png" alt="Map">`+
			`<div class="thumbcaption"><div class="magnify"><a href="#">m</a></div>A map</div></div></div>`)

		assert.Equal(t, []corpusmaker.Node{corpusmaker.Element{
			Tag:      "image",
			Image:    &corpusmaker.Image{Name: "Map", Options: []string{"left"}},
			Children: []corpusmaker.Node{leaf("A map")},
		}}, nodes)
	})

	t.Run("converts reference markers", func(t *testing.T) {
		t.Parallel()

		nodes := parse(t, goquery.NewParser(),
			`<p>Claim<sup class="reference"><a href="#cite_note-1">[1]</a></sup>.</p>`)

		assert.Equal(t, []corpusmaker.Node{el("p",
			leaf("Claim"),
			el("ref", anchor("#cite_note-1", leaf("[1]"))),
			leaf("."),
		)}, nodes)
	})

	t.Run("maps comments and media to unknown nodes", func(t *testing.T) {
		t.Parallel()

		nodes := parse(t, goquery.NewParser(), "<p>a <!-- c --> b<br>c<img src=\"x.png\"></p>\n<p>d</p>")

		assert.Equal(t, []corpusmaker.Node{
			el("p",
				leaf("a "),
				corpusmaker.Unknown{Kind: "comment"},
				leaf(" b"),
				leaf("\n"),
				leaf("c"),
				corpusmaker.Unknown{Kind: "img"},
			),
			el("p", leaf("d")),
		}, nodes)
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		t.Parallel()

		nodes := parse(t, goquery.NewParser(), "<p>a\n   b\t c</p>")

		assert.Equal(t, []corpusmaker.Node{el("p", leaf("a b c"))}, nodes)
	})
}

func TestParser_RenderClean(t *testing.T) {
	t.Parallel()

	nodes := parse(t, goquery.NewParser(), `<div class="mw-parser-output">`+
		`<p>The <a href="/wiki/Seine">Seine</a> river.</p>`+
		`<ul><li><a href="/wiki/Lyon">Lyon</a></li></ul>`+
		`</div>`)

	out, err := render.NewRenderer().Render(nodes, corpusmaker.CleanConfig())

	require.NoError(t, err)
	assert.Equal(t, "The Seine river.\n", out.Text)
	assert.Equal(t, []corpusmaker.AnnotationSpan{{Start: 4, End: 9, Label: "Seine"}}, out.Annotations)
}
