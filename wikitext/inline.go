package wikitext

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/corpusmaker"
	"golang.org/x/net/html"
)

var urlSchemes = []string{"http://", "https://", "ftp://", "//", "mailto:"}

var sizeOption = regexp.MustCompile(`^\d*x?\d+\s*px$`)

var imageOptions = map[string]bool{
	"thumb": true, "thumbnail": true, "frame": true, "framed": true,
	"frameless": true, "border": true, "left": true, "right": true,
	"center": true, "centre": true, "none": true, "upright": true,
	"baseline": true, "sub": true, "super": true, "top": true,
	"text-top": true, "middle": true, "bottom": true, "text-bottom": true,
}

var imageOptionPrefixes = []string{"upright", "alt=", "link=", "page=", "class=", "lang=", "thumb=", "thumbnail="}

// inlineParser turns a run of text into leaves, links and inline elements.
type inlineParser struct {
	s     string
	i     int
	text  strings.Builder
	nodes []corpusmaker.Node
}

func parseInline(s string) []corpusmaker.Node {
	if s == "" {
		return nil
	}
	p := &inlineParser{s: s}
	p.parse()
	return p.nodes
}

func (p *inlineParser) parse() {
	for p.i < len(p.s) {
		rest := p.s[p.i:]
		switch {
		case strings.HasPrefix(rest, "[["):
			if p.wikiLink() {
				continue
			}
		case rest[0] == '[':
			if p.externalLink() {
				continue
			}
		case strings.HasPrefix(rest, "''"):
			// Bold and italic quote runs carry no text.
			p.i += len(rest) - len(strings.TrimLeft(rest, "'"))
			continue
		case rest[0] == '<':
			if p.tag() {
				continue
			}
		}
		p.text.WriteByte(rest[0])
		p.i++
	}
	p.flush()
}

// flush emits the pending text as a leaf with entities decoded.
func (p *inlineParser) flush() {
	if p.text.Len() == 0 {
		return
	}
	p.nodes = append(p.nodes, corpusmaker.Leaf{Text: html.UnescapeString(p.text.String())})
	p.text.Reset()
}

func (p *inlineParser) emit(nodes ...corpusmaker.Node) {
	p.flush()
	p.nodes = append(p.nodes, nodes...)
}

// wikiLink parses [[target|label]]trail at the current position.
func (p *inlineParser) wikiLink() bool {
	end := matchLink(p.s[p.i:])
	if end < 0 {
		return false
	}
	inner := p.s[p.i+2 : p.i+end-2]
	p.i += end

	target, label, piped := cutOutsideLinks(inner, "|")
	target = strings.TrimSpace(target)
	if isFileTarget(target) {
		p.emit(image(target, inner))
		return true
	}

	switch {
	case !piped:
		label = target
	case strings.TrimSpace(label) == "":
		label = pipeTrick(target)
	}
	// Letters directly after the link belong to its label: [[bus]]es.
	trail := trailingLetters(p.s[p.i:])
	p.i += len(trail)
	label += trail

	children := parseInline(label)
	target = cleanTarget(target)
	if target == "" {
		p.emit(children...)
		return true
	}
	p.emit(corpusmaker.Link{Target: target, Children: children})
	return true
}

// externalLink parses [url label] at the current position.
func (p *inlineParser) externalLink() bool {
	rest := p.s[p.i+1:]
	if !hasURLScheme(rest) {
		return false
	}
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return false
	}
	inner := rest[:end]
	p.i += end + 2

	href, label, _ := strings.Cut(inner, " ")
	p.emit(corpusmaker.Element{
		Tag:      corpusmaker.AnchorTag,
		Attrs:    map[string]string{corpusmaker.HrefAttr: html.UnescapeString(href)},
		Children: parseInline(strings.TrimSpace(label)),
	})
	return true
}

// tag handles an HTML-style tag at the current position. Formatting tags are
// dropped while their content is kept.
func (p *inlineParser) tag() bool {
	t, ok := readTag(p.s[p.i:])
	if !ok {
		return false
	}
	p.i += t.size

	switch {
	case t.closing:
	case t.name == "br":
		p.text.WriteByte('\n')
	case t.name == corpusmaker.RefTag:
		ref := corpusmaker.Element{Tag: corpusmaker.RefTag, Attrs: parseAttrs(t.attrs)}
		if !t.selfClose {
			body, size := findClose(p.s[p.i:], t.name)
			p.i += size
			ref.Children = parseInline(strings.TrimSpace(body))
		}
		p.emit(ref)
	case extensionTags[t.name]:
		if !t.selfClose {
			_, size := findClose(p.s[p.i:], t.name)
			p.i += size
		}
		p.emit(corpusmaker.Unknown{Kind: t.name})
	}
	return true
}

// image builds an image element from the parts of a file link. The caption
// is the last part that is not a display option.
func image(target, inner string) corpusmaker.Node {
	parts := splitCells(inner, "|")
	img := &corpusmaker.Image{Name: cleanTarget(target)}

	var caption string
	if n := len(parts); n > 1 && !isImageOption(parts[n-1]) {
		caption = strings.TrimSpace(parts[n-1])
		parts = parts[:n-1]
	}
	for _, part := range parts[1:] {
		img.Options = append(img.Options, strings.TrimSpace(part))
	}

	return corpusmaker.Element{
		Tag:      "image",
		Image:    img,
		Children: parseInline(caption),
	}
}

func isImageOption(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if imageOptions[s] || sizeOption.MatchString(s) {
		return true
	}
	for _, prefix := range imageOptionPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func isFileTarget(target string) bool {
	prefix, _, ok := strings.Cut(target, ":")
	if !ok {
		return false
	}
	prefix = strings.TrimSpace(prefix)
	return strings.EqualFold(prefix, "file") || strings.EqualFold(prefix, "image")
}

func hasURLScheme(s string) bool {
	for _, scheme := range urlSchemes {
		if len(s) >= len(scheme) && strings.EqualFold(s[:len(scheme)], scheme) {
			return true
		}
	}
	return false
}

// cleanTarget normalises a link target: entities decoded, a leading colon
// and the section fragment removed, underscores turned into spaces.
func cleanTarget(target string) string {
	target = html.UnescapeString(strings.TrimSpace(target))
	target = strings.TrimPrefix(target, ":")
	target, _, _ = strings.Cut(target, "#")
	target = strings.ReplaceAll(target, "_", " ")
	return strings.TrimSpace(target)
}

// pipeTrick derives the label of [[Target (qualifier)|]]: the target without
// its namespace and trailing parenthetical.
func pipeTrick(target string) string {
	if _, rest, ok := strings.Cut(target, ":"); ok {
		target = rest
	}
	if i := strings.LastIndex(target, " ("); i > 0 && strings.HasSuffix(target, ")") {
		target = target[:i]
	}
	return strings.TrimSpace(target)
}

func trailingLetters(s string) string {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !unicode.IsLetter(r) {
			break
		}
		n += size
	}
	return s[:n]
}

// matchLink returns the length of the balanced [[...]] at the start of s, or
// -1 when it is not closed.
func matchLink(s string) int {
	depth := 0
	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], "[["):
			depth++
			i += 2
		case strings.HasPrefix(s[i:], "]]"):
			depth--
			i += 2
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return -1
}

// indexOutsideLinks returns the index of the first sep in s that is not
// inside a [[...]] link, or -1.
func indexOutsideLinks(s, sep string) int {
	depth := 0
	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], "[["):
			depth++
			i += 2
		case strings.HasPrefix(s[i:], "]]") && depth > 0:
			depth--
			i += 2
		case depth == 0 && strings.HasPrefix(s[i:], sep):
			return i
		default:
			i++
		}
	}
	return -1
}

func cutOutsideLinks(s, sep string) (before, after string, found bool) {
	i := indexOutsideLinks(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}
