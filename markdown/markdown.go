// Package markdown renders post bodies from Markdown to HTML as a templ component.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var (
	reHeading     = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	reOrderedItem = regexp.MustCompile(`^\d+\.\s+`)
	reBold        = regexp.MustCompile(`\*\*(.+?)\*\*|__(.+?)__`)
	reItalic      = regexp.MustCompile(`\*([^*]+)\*|\b_([^_]+)_\b`)
	reInlineCode  = regexp.MustCompile("`([^`]+)`")
	reImage       = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]*)\)`)
	reLink        = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]*)\)`)
)

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		Render(&buf, md)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

type block int

const (
	blockNone block = iota
	blockPara
	blockList
	blockOrdered
	blockQuote
	blockCode
)

var closers = map[block]string{
	blockPara:    "</p>",
	blockList:    "</ul>",
	blockOrdered: "</ol>",
	blockQuote:   "</blockquote>",
	blockCode:    "</code></pre></div>",
}

type renderer struct {
	buf     *bytes.Buffer
	current block
	ids     map[string]int
}

func (r *renderer) close() {
	if r.current != blockNone {
		r.buf.WriteString(closers[r.current])
		r.current = blockNone
	}
}

// enter closes any other open block and opens b with tag.
// It reports whether b was already open.
func (r *renderer) enter(b block, tag string) bool {
	if r.current == b {
		return true
	}
	r.close()
	r.buf.WriteString(tag)
	r.current = b
	return false
}

// headingID returns a unique anchor id for heading text.
func (r *renderer) headingID(text string) string {
	id := Slug(text)
	if id == "" {
		id = "section"
	}
	n := r.ids[id]
	r.ids[id] = n + 1
	if n > 0 {
		id += "-" + strconv.Itoa(n)
	}
	return id
}

// Render writes the HTML representation of md to buf.
func Render(buf *bytes.Buffer, md string) {
	r := &renderer{buf: buf, ids: make(map[string]int)}
	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, "\r")

		if strings.HasPrefix(line, "```") {
			if r.current == blockCode {
				r.close()
				continue
			}
			lang := html.EscapeString(strings.TrimSpace(line[3:]))
			if lang == "" {
				lang = "text"
			}
			r.enter(blockCode, `<div class="code-highlight" data-language="`+lang+`"><pre class="language-`+lang+`"><code class="language-`+lang+`">`)
			continue
		}
		if r.current == blockCode {
			buf.WriteString(html.EscapeString(line))
			buf.WriteByte('\n')
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			r.close()
		case trimmed == "---" || trimmed == "***":
			r.close()
			buf.WriteString("<hr/>")
		case reHeading.MatchString(trimmed):
			r.close()
			m := reHeading.FindStringSubmatch(trimmed)
			level := strconv.Itoa(len(m[1]))
			id := r.headingID(m[2])
			buf.WriteString(`<h` + level + ` id="` + id + `"><a href="#` + id + `" aria-label="` + id + ` permalink" class="anchor"></a>`)
			buf.WriteString(FormatInline(m[2]))
			buf.WriteString(`</h` + level + `>`)
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			r.enter(blockList, "<ul>")
			buf.WriteString("<li>" + FormatInline(strings.TrimSpace(trimmed[2:])) + "</li>")
		case reOrderedItem.MatchString(trimmed):
			r.enter(blockOrdered, "<ol>")
			buf.WriteString("<li>" + FormatInline(reOrderedItem.ReplaceAllString(trimmed, "")) + "</li>")
		case strings.HasPrefix(trimmed, ">"):
			if r.enter(blockQuote, "<blockquote>") {
				buf.WriteString(" ")
			}
			buf.WriteString(FormatInline(strings.TrimSpace(strings.TrimPrefix(trimmed, ">"))))
		default:
			if r.enter(blockPara, "<p>") {
				buf.WriteString("\n")
			}
			buf.WriteString(FormatInline(trimmed))
		}
	}
	r.close()
}

// FormatInline escapes s and applies inline code, images, links, bold and italic.
func FormatInline(s string) string {
	out := html.EscapeString(s)

	// Code spans are swapped for placeholders so nothing inside them is formatted.
	var spans []string
	out = reInlineCode.ReplaceAllStringFunc(out, func(m string) string {
		spans = append(spans, "<code>"+reInlineCode.FindStringSubmatch(m)[1]+"</code>")
		return "\x00" + strconv.Itoa(len(spans)-1) + "\x00"
	})

	out = reImage.ReplaceAllStringFunc(out, func(m string) string {
		match := reImage.FindStringSubmatch(m)
		src := SafeURL(match[2])
		if src == "" {
			return match[1]
		}
		return `<img src="` + src + `" alt="` + match[1] + `" loading="lazy"/>`
	})
	out = reLink.ReplaceAllStringFunc(out, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := SafeURL(match[2])
		if href == "" {
			return match[1]
		}
		attrs := ""
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			attrs = ` target="_blank" rel="noopener noreferrer"`
		}
		return `<a href="` + href + `"` + attrs + `>` + match[1] + `</a>`
	})

	out = outsideTags(out, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1$2</strong>")
		return reItalic.ReplaceAllString(seg, "<em>$1$2</em>")
	})

	for i, code := range spans {
		out = strings.Replace(out, "\x00"+strconv.Itoa(i)+"\x00", code, 1)
	}
	return out
}

// outsideTags applies fn to the text between HTML tags only.
func outsideTags(s string, fn func(string) string) string {
	var b strings.Builder
	for s != "" {
		lt := strings.IndexByte(s, '<')
		if lt < 0 {
			b.WriteString(fn(s))
			break
		}
		b.WriteString(fn(s[:lt]))
		gt := strings.IndexByte(s[lt:], '>')
		if gt < 0 {
			b.WriteString(s[lt:])
			break
		}
		b.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return b.String()
}

// SafeURL returns raw escaped for an attribute when it is a relative
// reference or uses an allowed scheme, and "" otherwise. Protocol-relative
// "//host" references are rejected.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" || strings.HasPrefix(val, "//") || strings.HasPrefix(val, `/\`) || strings.HasPrefix(val, `\`) {
		return ""
	}
	u, err := url.Parse(val)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "":
		if u.Host != "" {
			return ""
		}
	case "http", "https", "mailto":
	default:
		return ""
	}
	return html.EscapeString(val)
}

// Slug turns heading text into an anchor id.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
