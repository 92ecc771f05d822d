package views

import (
	"context"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Decl is a single CSS declaration.
type Decl struct {
	Property string
	Value    string
}

// Rule is a selector with its declarations, rendered in order.
type Rule struct {
	Selector string
	Decls    []Decl
}

// Typography is a vertical-rhythm type scale plus style rules layered on top.
type Typography struct {
	BaseFontSize   float64 // px
	BaseLineHeight float64 // unitless, also one rhythm unit in rem
	ScaleRatio     float64
	FontFamily     []string
	Base           []Rule
	Overrides      []Rule
}

var systemFonts = []string{
	"-apple-system", "BlinkMacSystemFont", "Segoe UI", "Helvetica", "Arial",
	"sans-serif", "Apple Color Emoji", "Segoe UI Emoji", "Segoe UI Symbol",
}

// GitHubTheme returns the GitHub-flavoured type scale with the blog's
// overrides for paragraphs, links, headings and lists.
func GitHubTheme() Typography {
	t := Typography{
		BaseFontSize:   16,
		BaseLineHeight: 1.625,
		ScaleRatio:     2,
		FontFamily:     systemFonts,
	}
	h1 := t.Scale(1)
	h2 := t.Scale(0.6)
	t.Base = []Rule{
		{"html", []Decl{
			{"font", "100%/" + formatFloat(t.BaseLineHeight) + " " + fontStack(t.FontFamily)},
			{"box-sizing", "border-box"},
			{"overflow-y", "scroll"},
		}},
		{"body", []Decl{{"color", "hsla(0,0%,0%,0.8)"}, {"font-weight", "normal"}, {"word-wrap", "break-word"}}},
		{"h1,h2,h3,h4,h5,h6", []Decl{{"margin-top", "0"}, {"margin-bottom", t.Rhythm(1)}, {"font-weight", "600"}}},
		{"h1", []Decl{{"font-size", h1.FontSize}, {"line-height", h1.LineHeight}, {"border-bottom", "1px solid hsla(0,0%,0%,0.07)"}}},
		{"h2", []Decl{{"font-size", h2.FontSize}, {"line-height", h2.LineHeight}, {"border-bottom", "1px solid hsla(0,0%,0%,0.07)"}}},
		{"p,ul,ol,blockquote,pre,table", []Decl{{"margin", "0 0 " + t.Rhythm(1) + " 0"}}},
		{"code", []Decl{{"font-size", "85%"}, {"background", "hsla(0,0%,0%,0.04)"}, {"border-radius", "3px"}}},
		{"a", []Decl{{"color", "#4078c0"}, {"text-decoration", "none"}}},
	}
	t.Overrides = []Rule{
		{"p", []Decl{
			{"font-size", "calc(16px + .2vw)"},
			{"line-height", "1.6"},
			{"font-weight", "200"},
			{"padding", ".7rem 0"},
		}},
		{"a", []Decl{
			{"box-shadow", "none"},
			{"text-decoration", "none"},
			{"color", "#0687f0"},
		}},
		{"a.gatsby-resp-image-link", []Decl{
			{"box-shadow", "none"},
			{"text-decoration", "none"},
		}},
		{"a:hover", []Decl{
			{"text-decoration", "none"},
		}},
		{"h1", []Decl{
			{"font-size", "calc(16px + 1vw)"},
			{"font-weight", "800"},
			{"line-height", "calc(35px + 1.85vw)"},
			{"font-family", "Catamaran"},
		}},
		{"h2", []Decl{
			{"font-weight", "700"},
			{"line-height", "1.2"},
			{"margin-top", "56px"},
			{"margin-bottom", "20px"},
			{"font-family", "Catamaran"},
		}},
		{"ul", []Decl{{"margin-bottom", "6px"}}},
		{"li", []Decl{{"margin-bottom", "2px"}}},
	}
	return t
}

// Rhythm returns lines vertical-rhythm units as a rem length.
func (t Typography) Rhythm(lines float64) string {
	return formatFloat(lines*t.BaseLineHeight) + "rem"
}

// ScaledSize is a font size on the modular scale and the line height that
// keeps it on the rhythm grid.
type ScaledSize struct {
	FontSize   string
	LineHeight string
}

// Scale returns the font size ScaleRatio^step rem, with a unitless line
// height rounded up to whole rhythm units.
func (t Typography) Scale(step float64) ScaledSize {
	size := math.Pow(t.ScaleRatio, step)
	lines := math.Ceil(size / t.BaseLineHeight)
	return ScaledSize{
		FontSize:   formatFloat(size) + "rem",
		LineHeight: formatFloat(lines * t.BaseLineHeight / size),
	}
}

// CSS renders the base rules followed by the overrides.
func (t Typography) CSS() string {
	var b strings.Builder
	for _, rules := range [][]Rule{t.Base, t.Overrides} {
		for _, r := range rules {
			b.WriteString(r.Selector)
			b.WriteString("{")
			for i, d := range r.Decls {
				if i > 0 {
					b.WriteString(";")
				}
				b.WriteString(d.Property)
				b.WriteString(":")
				b.WriteString(d.Value)
			}
			b.WriteString("}\n")
		}
	}
	return b.String()
}

// TypographyStyle inlines t as a <style> element.
func TypographyStyle(t Typography) templ.Component {
	css := t.CSS()
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<style id=\"typography.js\">"+css+"</style>")
		return err
	})
}

func fontStack(fonts []string) string {
	quoted := make([]string, len(fonts))
	for i, f := range fonts {
		if strings.Contains(f, " ") {
			f = "'" + f + "'"
		}
		quoted[i] = f
	}
	return strings.Join(quoted, ",")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(math.Round(f*10000)/10000, 'f', -1, 64)
}
