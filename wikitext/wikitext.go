// Package wikitext parses raw wiki markup, as stored in dump records, into
// corpusmaker markup trees.
//
// The parser covers the constructs that matter for link-annotated corpora:
// paragraphs, headings, lists, tables, internal links, image captions,
// external links and references. Templates, comments and magic words are
// removed before parsing; content-free extensions such as math and gallery
// become Unknown nodes.
package wikitext

import (
	"regexp"
	"strings"

	"github.com/fwojciec/corpusmaker"
)

// Ensure Parser implements corpusmaker.MarkupParser at compile time.
var _ corpusmaker.MarkupParser = (*Parser)(nil)

// Parser parses wiki markup. It holds no state and may be used concurrently.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses markup into a list of block-level nodes.
func (p *Parser) Parse(markup string) ([]corpusmaker.Node, error) {
	text := strings.ReplaceAll(markup, "\r\n", "\n")
	text = stripComments(text)
	text = collapseExtensions(text)
	text = stripTemplates(text)
	text = magicWordPattern.ReplaceAllString(text, "")

	return parseBlocks(strings.Split(text, "\n")), nil
}

// IsRedirect reports whether markup is a redirect page.
func IsRedirect(markup string) bool {
	const directive = "#redirect"
	s := strings.TrimLeft(markup, " \t\r\n")
	return len(s) >= len(directive) && strings.EqualFold(s[:len(directive)], directive)
}

var magicWordPattern = regexp.MustCompile(`__[A-Z]+__`)

// stripComments removes <!-- --> comments. An unterminated comment runs to
// the end of the text.
func stripComments(s string) string {
	var sb strings.Builder
	for {
		start := strings.Index(s, "<!--")
		if start < 0 {
			sb.WriteString(s)
			return sb.String()
		}
		sb.WriteString(s[:start])
		end := strings.Index(s[start+4:], "-->")
		if end < 0 {
			return sb.String()
		}
		s = s[start+4+end+3:]
	}
}

// stripTemplates removes {{...}} transclusions, including nested ones.
// Unbalanced braces are kept as text.
func stripTemplates(s string) string {
	if !strings.Contains(s, "{{") {
		return s
	}

	var sb strings.Builder
	i := 0
	for i < len(s) {
		if !strings.HasPrefix(s[i:], "{{") {
			sb.WriteByte(s[i])
			i++
			continue
		}

		depth := 0
		j := i
		for j < len(s) {
			switch {
			case strings.HasPrefix(s[j:], "{{"):
				depth++
				j += 2
			case strings.HasPrefix(s[j:], "}}"):
				depth--
				j += 2
			default:
				j++
			}
			if depth == 0 {
				break
			}
		}
		if depth > 0 {
			sb.WriteString("{{")
			i += 2
			continue
		}
		i = j
	}
	return sb.String()
}
