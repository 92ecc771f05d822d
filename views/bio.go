package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Bio renders the "Written by @author" block linking to the about page,
// followed by the author's introduction exactly as configured.
func Bio(author, introduction string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="bio"><div class="author"><div class="author-description"><div class="author-name">`)
		h.raw(`<span class="author-name-prefix">Written by</span>`)
		h.raw(`<a href="/about" class="author-name-content"><span>@`)
		h.text(author)
		h.raw(`</span></a><div class="author-introduction">`)
		h.text(introduction)
		h.raw(`</div></div></div></div></div>`)
		return h.err
	})
}

// BioSource answers the author bio query. sitemeta.Metadata,
// *sitemeta.Provider and Theme all implement it.
type BioSource interface {
	Bio() (author, introduction string)
}

// SiteBio renders Bio with the author fields src reports.
func SiteBio(src BioSource) templ.Component {
	return Bio(src.Bio())
}
