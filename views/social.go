package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/papabearcodes/bee/sitemeta"
)

// SocialLinks renders a link per configured social account. Accounts with
// an empty handle produce nothing.
func SocialLinks(s sitemeta.Social) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		links := s.Links()
		if len(links) == 0 {
			return nil
		}
		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="social-share">`)
		for _, l := range links {
			h.raw(`<a class="social-`, l.Platform, `" href="`)
			h.attr(l.URL)
			h.raw(`" target="_blank" rel="noopener noreferrer">`)
			h.text(l.Platform)
			h.raw(`</a>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}
