package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/papabearcodes/bee/sitemeta"
)

// Theme bundles what every page template reads: the site metadata, the
// category tab colors and the type scale.
type Theme struct {
	Meta       sitemeta.Metadata
	Styles     CategoryStyles
	Typography Typography
}

// NewTheme builds the default theme around the provider's metadata.
func NewTheme(p *sitemeta.Provider) Theme {
	return Theme{
		Meta:       p.Metadata(),
		Styles:     DefaultCategoryStyles,
		Typography: GitHubTheme(),
	}
}

// Bio returns the author fields for the bio block.
func (t Theme) Bio() (author, introduction string) {
	return t.Meta.Bio()
}

// Layout wraps body in the full HTML document.
func Layout(theme Theme, page PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		meta := theme.Meta
		title := meta.Title
		if page.Title != "" && page.Title != meta.Title {
			title = page.Title + " | " + meta.Title
		}
		description := page.Description
		if description == "" {
			description = meta.Description
		}
		ogType := page.OGType
		if ogType == "" {
			ogType = "website"
		}
		jsonLD := page.JSONLD
		if jsonLD == "" {
			jsonLD = WebsiteJSONLD(meta)
		}

		h := newHTMLWriter(ctx, w)
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title>`)
		metaTag(h, "name", "description", description)
		metaTag(h, "name", "author", meta.Author)
		metaTag(h, "name", "keywords", strings.Join(meta.Keywords, ", "))
		metaTag(h, "property", "og:title", title)
		metaTag(h, "property", "og:description", description)
		metaTag(h, "property", "og:type", ogType)
		metaTag(h, "property", "og:site_name", meta.Title)
		if page.URL != "" {
			metaTag(h, "property", "og:url", page.URL)
			h.raw(`<link rel="canonical" href="`)
			h.attr(page.URL)
			h.raw(`"/>`)
		}
		if meta.Share.FacebookEnabled() {
			metaTag(h, "property", "fb:app_id", meta.Share.FacebookAppID)
		}
		metaTag(h, "name", "twitter:card", "summary")
		if meta.Social.Twitter != "" {
			metaTag(h, "name", "twitter:creator", "@"+meta.Social.Twitter)
		}
		h.raw(`<link rel="manifest" href="/manifest.webmanifest"/>`)
		h.raw(`<link rel="icon" type="image/png" href="/icons/icon-48x48.png"/>`)
		h.raw(`<link rel="alternate" type="application/rss+xml" title="RSS" href="/rss.xml"/>`)
		h.raw(`<link rel="stylesheet" href="/public/bee.css"/>`)
		h.render(TypographyStyle(theme.Typography))
		h.raw(`<script type="application/ld+json">`, jsonLD, `</script>`)
		h.raw(`</head><body><div class="top"><header class="top-header"><a class="link" href="/">`)
		h.text(meta.Title)
		h.raw(`</a>`)
		h.render(SocialLinks(meta.Social))
		h.raw(`</header></div><main class="content">`)
		h.render(body)
		h.raw(`</main>`)
		h.render(Footer(meta.Author))
		h.raw(`</body></html>`)
		return h.err
	})
}

// metaTag writes a <meta> element, skipping empty content.
func metaTag(h *htmlWriter, key, name, content string) {
	if content == "" {
		return
	}
	h.raw(`<meta `, key, `="`)
	h.attr(name)
	h.raw(`" content="`)
	h.attr(content)
	h.raw(`"/>`)
}
