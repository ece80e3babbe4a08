package wikitext

import (
	"regexp"
	"strings"
)

// extensionTags hold content that is not prose. Each occurrence is parsed as
// an Unknown node named after the tag.
var extensionTags = map[string]bool{
	"math":            true,
	"chem":            true,
	"ce":              true,
	"gallery":         true,
	"timeline":        true,
	"score":           true,
	"syntaxhighlight": true,
	"source":          true,
	"graph":           true,
	"mapframe":        true,
	"maplink":         true,
	"imagemap":        true,
	"templatedata":    true,
	"hiero":           true,
	"inputbox":        true,
	"categorytree":    true,
}

var (
	tagPattern  = regexp.MustCompile(`^<(/?)([a-zA-Z][a-zA-Z0-9]*)((?:\s[^<>]*?)?)(/?)>`)
	attrPattern = regexp.MustCompile(`([\w-]+)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>/]+))`)
)

// nowikiEscapes neutralises the characters that open markup constructs.
// The entities are decoded again when leaf text is emitted.
var nowikiEscapes = strings.NewReplacer(
	"[", "&#91;",
	"]", "&#93;",
	"{", "&#123;",
	"}", "&#125;",
	"'", "&#39;",
	"<", "&lt;",
	"|", "&#124;",
)

// tag is a parsed opening, closing or self-closing tag.
type tag struct {
	name      string
	attrs     string
	closing   bool
	selfClose bool
	size      int
}

// readTag parses the tag at the start of s.
func readTag(s string) (tag, bool) {
	m := tagPattern.FindStringSubmatch(s)
	if m == nil {
		return tag{}, false
	}
	return tag{
		name:      strings.ToLower(m[2]),
		attrs:     m[3],
		closing:   m[1] != "",
		selfClose: m[4] != "",
		size:      len(m[0]),
	}, true
}

// parseAttrs parses tag attributes. Returns nil when there are none.
func parseAttrs(s string) map[string]string {
	matches := attrPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(matches))
	for _, m := range matches {
		attrs[strings.ToLower(m[1])] = m[2] + m[3] + m[4]
	}
	return attrs
}

// findClose returns the body of the element whose content starts at s and
// the length consumed through its closing tag. Without a closing tag the
// element runs to the end of s.
func findClose(s, name string) (body string, size int) {
	for i := 0; i < len(s); {
		j := strings.Index(s[i:], "</")
		if j < 0 {
			break
		}
		j += i
		k := j + 2 + len(name)
		if k <= len(s) && strings.EqualFold(s[j+2:k], name) {
			if end := strings.IndexByte(s[k:], '>'); end >= 0 {
				return s[:j], k + end + 1
			}
		}
		i = j + 2
	}
	return s, len(s)
}

// collapseExtensions replaces every extension element with a self-closing tag
// so that its content cannot leak into the block structure, and escapes the
// content of nowiki elements.
func collapseExtensions(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '<' {
			sb.WriteByte(s[i])
			i++
			continue
		}

		t, ok := readTag(s[i:])
		if !ok || t.closing || t.selfClose || (t.name != "nowiki" && !extensionTags[t.name]) {
			sb.WriteByte(s[i])
			i++
			continue
		}

		body, size := findClose(s[i+t.size:], t.name)
		if t.name == "nowiki" {
			sb.WriteString(nowikiEscapes.Replace(body))
		} else {
			sb.WriteString("<" + t.name + "/>")
		}
		i += t.size + size
	}
	return sb.String()
}
