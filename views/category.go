package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// CategoryStyles maps a category title to the CSS class that colors its tab.
type CategoryStyles map[string]string

// DefaultCategoryStyles are the tab colors the theme ships with.
var DefaultCategoryStyles = CategoryStyles{
	"React":      "color-react",
	"JavaScript": "color-javascript",
}

// Class returns the style class for title, or "" when it has none.
func (s CategoryStyles) Class(title string) string {
	return s[title]
}

// CategoryItem renders one tab of the category filter. The tab is selected
// when title equals the selected category; activating it navigates to the
// listing filtered by title.
func CategoryItem(title, selected string, styles CategoryStyles) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		writeCategoryItem(h, title, selected, styles)
		return h.err
	})
}

func writeCategoryItem(h *htmlWriter, title, selected string, styles CategoryStyles) {
	ariaSelected := "false"
	if title == selected {
		ariaSelected = "true"
	}
	h.raw(`<li class="item" role="tab" aria-selected="`, ariaSelected, `"><a href="`)
	h.attr(CategoryURL(title))
	h.raw(`"`)
	if class := styles.Class(title); class != "" {
		h.raw(` class="`)
		h.attr(class)
		h.raw(`"`)
	}
	h.raw(`>`)
	h.text(title)
	h.raw(`</a></li>`)
}

// Category renders the tab list: "All" followed by every category.
// An empty selection selects "All".
func Category(categories []string, selected string, styles CategoryStyles) templ.Component {
	if selected == "" {
		selected = AllCategory
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<ul class="category-container" role="tablist" id="category">`)
		writeCategoryItem(h, AllCategory, selected, styles)
		for _, c := range categories {
			writeCategoryItem(h, c, selected, styles)
		}
		h.raw(`</ul>`)
		return h.err
	})
}
