package bee

import "github.com/papabearcodes/bee/views"

// Post is the core content type stored in SQLite and rendered by templates.
type Post = views.Post

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta = views.PageMeta
