package wikitext

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/corpusmaker"
)

var headingPattern = regexp.MustCompile(`^(={1,6})\s*(.+?)\s*(={1,6})$`)

const listMarkers = "*#:;"

// blockParser splits lines into paragraphs, headings, lists and tables.
type blockParser struct {
	lines []string
	i     int
	para  []string
	nodes []corpusmaker.Node
}

func parseBlocks(lines []string) []corpusmaker.Node {
	b := &blockParser{lines: lines}
	b.parse()
	return b.nodes
}

func (b *blockParser) parse() {
	for b.i < len(b.lines) {
		line := b.lines[b.i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			b.flush()
			b.i++
		case strings.HasPrefix(trimmed, "{|"):
			b.flush()
			b.nodes = append(b.nodes, b.table())
		case strings.HasPrefix(trimmed, "----"):
			b.flush()
			b.i++
		case strings.IndexByte(listMarkers, line[0]) >= 0:
			b.flush()
			b.nodes = append(b.nodes, b.list())
		default:
			if m := headingPattern.FindStringSubmatch(trimmed); m != nil {
				b.flush()
				b.nodes = append(b.nodes, heading(m))
				b.i++
				continue
			}
			b.para = append(b.para, trimmed)
			b.i++
		}
	}
	b.flush()
}

// flush emits the pending paragraph. Lines of a paragraph are joined with a
// space.
func (b *blockParser) flush() {
	if len(b.para) == 0 {
		return
	}
	children := parseInline(strings.Join(b.para, " "))
	b.para = b.para[:0]
	if len(children) == 0 {
		return
	}
	b.nodes = append(b.nodes, corpusmaker.Element{Tag: "p", Children: children})
}

func heading(m []string) corpusmaker.Node {
	level := min(len(m[1]), len(m[3]))
	return corpusmaker.Element{
		Tag:      "h" + strconv.Itoa(level),
		Children: parseInline(m[2]),
	}
}

// list consumes consecutive list lines. Nesting levels are flattened into a
// single list of items.
func (b *blockParser) list() corpusmaker.Node {
	var items []corpusmaker.Node
	for ; b.i < len(b.lines); b.i++ {
		line := b.lines[b.i]
		if line == "" || strings.IndexByte(listMarkers, line[0]) < 0 {
			break
		}
		body := strings.TrimSpace(strings.TrimLeft(line, listMarkers))
		items = append(items, corpusmaker.Element{Tag: "li", Children: parseInline(body)})
	}
	return corpusmaker.ListBlock{Children: items}
}

// table consumes a table from its opening line through the matching close.
// An unterminated table runs to the end of the text.
func (b *blockParser) table() corpusmaker.Node {
	b.i++
	t := &tableBuilder{}
	for b.i < len(b.lines) {
		trimmed := strings.TrimSpace(b.lines[b.i])

		switch {
		case strings.HasPrefix(trimmed, "|}"):
			b.i++
			return t.finish()
		case strings.HasPrefix(trimmed, "{|"):
			t.addLines(b.nestedTable()...)
			continue
		case strings.HasPrefix(trimmed, "|-"):
			t.endRow()
		case strings.HasPrefix(trimmed, "|+"):
			t.startCell("caption", trimmed[2:])
		case strings.HasPrefix(trimmed, "|"):
			for _, cell := range splitCells(trimmed[1:], "||") {
				t.startCell("td", cell)
			}
		case strings.HasPrefix(trimmed, "!"):
			for _, cell := range splitCells(strings.ReplaceAll(trimmed[1:], "!!", "||"), "||") {
				t.startCell("th", cell)
			}
		default:
			t.addLines(b.lines[b.i])
		}
		b.i++
	}
	return t.finish()
}

// nestedTable returns the raw lines of the table starting at the current
// line so they can be parsed as cell content.
func (b *blockParser) nestedTable() []string {
	start := b.i
	depth := 0
	for ; b.i < len(b.lines); b.i++ {
		trimmed := strings.TrimSpace(b.lines[b.i])
		if strings.HasPrefix(trimmed, "{|") {
			depth++
		} else if strings.HasPrefix(trimmed, "|}") {
			depth--
			if depth == 0 {
				b.i++
				break
			}
		}
	}
	return b.lines[start:b.i]
}

// tableBuilder collects rows of cells. Cell content may span several lines
// and is parsed as blocks once the cell ends.
type tableBuilder struct {
	children []corpusmaker.Node
	cells    []corpusmaker.Node
	tag      string
	lines    []string
	open     bool
}

func (t *tableBuilder) startCell(tag, content string) {
	t.closeCell()
	t.tag = tag
	t.lines = []string{cellContent(content)}
	t.open = true
}

// addLines appends content to the open cell. Content outside any cell is
// ignored.
func (t *tableBuilder) addLines(lines ...string) {
	if t.open {
		t.lines = append(t.lines, lines...)
	}
}

func (t *tableBuilder) closeCell() {
	if !t.open {
		return
	}
	t.open = false
	cell := corpusmaker.Element{Tag: t.tag, Children: parseBlocks(t.lines)}
	if t.tag == "caption" {
		t.children = append(t.children, cell)
		return
	}
	t.cells = append(t.cells, cell)
}

func (t *tableBuilder) endRow() {
	t.closeCell()
	if len(t.cells) == 0 {
		return
	}
	t.children = append(t.children, corpusmaker.Element{Tag: "tr", Children: t.cells})
	t.cells = nil
}

func (t *tableBuilder) finish() corpusmaker.Node {
	t.endRow()
	return corpusmaker.TableBlock{Children: t.children}
}

// splitCells splits a table line on sep outside of links.
func splitCells(s, sep string) []string {
	var cells []string
	for {
		i := indexOutsideLinks(s, sep)
		if i < 0 {
			return append(cells, s)
		}
		cells = append(cells, s[:i])
		s = s[i+len(sep):]
	}
}

// cellContent drops the attribute prefix of a cell ("style=... | text").
func cellContent(s string) string {
	i := indexOutsideLinks(s, "|")
	if i >= 0 && strings.Contains(s[:i], "=") {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}
